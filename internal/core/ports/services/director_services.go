package services

import (
	"context"

	"github.com/SscSPs/expense_portal/internal/core/domain"
)

// DirectorReaderSvc reads the global view.
type DirectorReaderSvc interface {
	GetStats(ctx context.Context) (domain.DirectorStats, error)
	ListPending(ctx context.Context) ([]domain.Expense, error)
}

// DirectorDecisionSvc posts approve/reject decisions.
type DirectorDecisionSvc interface {
	// Decide posts the decision. On {success:true} the item is dismissed from
	// the session and the stats are refreshed. A reject without a reason is
	// a cancelled action and returns an apperrors.ValidationError without
	// calling the webhook.
	Decide(ctx context.Context, session *domain.Session, decision domain.Decision) (*domain.DecisionResult, error)
}

// DirectorSvcFacade combines all director service interfaces
type DirectorSvcFacade interface {
	DirectorReaderSvc
	DirectorDecisionSvc

	// ReloadSession replaces the session's stats and pending list.
	ReloadSession(ctx context.Context, session *domain.Session) error
}
