package repositories

import (
	"context"

	"github.com/SscSPs/expense_portal/internal/core/domain"
)

// ExpenseReader defines read operations for expense rows.
// All lists are ordered by creation time, newest first.
type ExpenseReader interface {
	// ListExpensesByUser returns the rows referencing the given user.
	ListExpensesByUser(ctx context.Context, userID string) ([]domain.Expense, error)

	// ListAllExpenses returns every row, including rows without a user reference.
	ListAllExpenses(ctx context.Context) ([]domain.Expense, error)

	// ListExpensesByStatus returns rows with the given status, joined with the
	// submitter's display name.
	ListExpensesByStatus(ctx context.Context, status domain.ExpenseStatus) ([]domain.Expense, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
}
