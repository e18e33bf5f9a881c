package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/expense_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_portal/internal/core/ports/repositories"
	"github.com/SscSPs/expense_portal/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func (r *PgxExpenseRepository) ListExpensesByUser(ctx context.Context, userID string) ([]domain.Expense, error) {
	query := `SELECT` + expenseColumns + `
		FROM expenses e
		LEFT JOIN users u ON u.id = e.user_id
		WHERE e.user_id::text = $1
		ORDER BY e.created_at DESC;
	`
	rows, err := r.queryExpenses(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for user %s: %w", userID, err)
	}
	return mapping.ToDomainExpenseSlice(rows), nil
}

func (r *PgxExpenseRepository) ListAllExpenses(ctx context.Context) ([]domain.Expense, error) {
	query := `SELECT` + expenseColumns + `
		FROM expenses e
		LEFT JOIN users u ON u.id = e.user_id
		ORDER BY e.created_at DESC;
	`
	rows, err := r.queryExpenses(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all expenses: %w", err)
	}
	return mapping.ToDomainExpenseSlice(rows), nil
}

func (r *PgxExpenseRepository) ListExpensesByStatus(ctx context.Context, status domain.ExpenseStatus) ([]domain.Expense, error) {
	query := `SELECT` + expenseColumns + `
		FROM expenses e
		LEFT JOIN users u ON u.id = e.user_id
		WHERE e.status = $1
		ORDER BY e.created_at DESC;
	`
	rows, err := r.queryExpenses(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses with status %q: %w", status, err)
	}
	return mapping.ToDomainExpenseSlice(rows), nil
}
