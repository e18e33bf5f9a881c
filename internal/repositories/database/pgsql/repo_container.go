package pgsql

import (
	portsrepo "github.com/SscSPs/expense_portal/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:    userRepo,
		ExpenseRepo: expenseRepo,
	}
}
