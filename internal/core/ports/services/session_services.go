package services

import (
	"context"
	"time"

	"github.com/SscSPs/expense_portal/internal/core/domain"
)

// SessionLifecycleSvc owns login and logout.
type SessionLifecycleSvc interface {
	// Login verifies the identity, creates a session, loads its first
	// snapshot and starts the periodic refresher.
	Login(ctx context.Context, identity domain.Identity) (*domain.Session, error)

	// Logout stops the refresher and forgets the session. Unknown IDs are ignored.
	Logout(ctx context.Context, sessionID string)
}

// SessionLookupSvc resolves live sessions.
type SessionLookupSvc interface {
	// GetSession returns the session or apperrors.ErrUnauthorized.
	GetSession(sessionID string) (*domain.Session, error)
}

// SessionRefreshSvc re-runs the fetch cycle for a session.
type SessionRefreshSvc interface {
	// Refresh reloads the history and, for directors, the director view.
	Refresh(ctx context.Context, session *domain.Session) error

	// ScheduleRefresh runs Refresh once after the delay, detached from any request.
	ScheduleRefresh(session *domain.Session, delay time.Duration)
}

// SessionSvcFacade combines all session service interfaces
type SessionSvcFacade interface {
	SessionLifecycleSvc
	SessionLookupSvc
	SessionRefreshSvc

	// Shutdown stops every refresher.
	Shutdown()
}
