package services

import (
	"context"

	"github.com/SscSPs/expense_portal/internal/core/domain"
)

// HistoryReaderSvc fetches a user's expense history.
type HistoryReaderSvc interface {
	// LoadHistory returns the user's rows, newest first. When the user has
	// none and the legacy fallback is enabled, every row is returned.
	LoadHistory(ctx context.Context, user domain.User) ([]domain.Expense, error)
}

// HistorySvcFacade combines all history service interfaces
type HistorySvcFacade interface {
	HistoryReaderSvc

	// ReloadSession fetches the history and replaces the session snapshot.
	ReloadSession(ctx context.Context, session *domain.Session) error
}
