package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/expense_portal/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// expenseColumns is the select list shared by every expense query.
// The users join is a LEFT JOIN so legacy rows without a user survive.
const expenseColumns = `
	e.id::text, e.user_id::text, e.merchant, e.category, e.amount, e.currency,
	e.status, e.status_reason, e.receipt_date, e.receipt_number, e.description,
	e.image_url, e.created_at, u.first_name, u.last_name`

// queryExpenses runs an expense query and scans every row.
func (r *BaseRepository) queryExpenses(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	modelExpenses := []models.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		modelExpenses = append(modelExpenses, m)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}

	return modelExpenses, nil
}

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.UserID,
		&m.Merchant,
		&m.Category,
		&m.Amount,
		&m.Currency,
		&m.Status,
		&m.StatusReason,
		&m.ReceiptDate,
		&m.ReceiptNumber,
		&m.Description,
		&m.ImageURL,
		&m.CreatedAt,
		&m.SubmitterFirstName,
		&m.SubmitterLastName,
	)
	if err != nil {
		return models.Expense{}, fmt.Errorf("failed to scan expense row: %w", err)
	}
	return m, nil
}
