package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_portal/internal/core/ports/services"
)

type historyService struct {
	BaseService
	expenseRepo portsrepo.ExpenseReader
	fallbackAll bool
	now         func() time.Time
}

// NewHistoryService creates the history reader. With fallbackAll set, a user
// without rows of their own sees every row, as early deployments stored
// submissions without a user reference.
func NewHistoryService(expenseRepo portsrepo.ExpenseReader, fallbackAll bool) portssvc.HistorySvcFacade {
	return &historyService{expenseRepo: expenseRepo, fallbackAll: fallbackAll, now: time.Now}
}

func (s *historyService) LoadHistory(ctx context.Context, user domain.User) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpensesByUser(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for user %s: %w", user.UserID, err)
	}
	if len(expenses) > 0 || !s.fallbackAll {
		return expenses, nil
	}

	s.LogInfo(ctx, "No expenses for user, falling back to all rows", slog.String("user_id", user.UserID))
	expenses, err = s.expenseRepo.ListAllExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load fallback history: %w", err)
	}
	return expenses, nil
}

// ReloadSession replaces the session's history snapshot. A failed load
// leaves an empty snapshot rather than stale rows.
func (s *historyService) ReloadSession(ctx context.Context, session *domain.Session) error {
	expenses, err := s.LoadHistory(ctx, session.User)
	if err != nil {
		s.LogError(ctx, err, "History reload failed", slog.String("session_id", session.ID))
		session.SetHistory(nil, s.now())
		return err
	}
	session.SetHistory(expenses, s.now())
	return nil
}
