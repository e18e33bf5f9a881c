package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/expense_portal/internal/apperrors"
	"github.com/SscSPs/expense_portal/internal/core/domain"
	portssvc "github.com/SscSPs/expense_portal/internal/core/ports/services"
	"github.com/SscSPs/expense_portal/internal/middleware"
	"github.com/google/uuid"
)

// SessionOptions tunes the session registry.
type SessionOptions struct {
	// RefreshInterval is the period of each session's background refresh.
	RefreshInterval time.Duration
	// Expiry bounds a session's life; expired sessions are reaped by their
	// own refresher.
	Expiry time.Duration
	// Logger is used by background work that has no request context.
	Logger *slog.Logger
}

// ErrRegistryClosed is returned by Login once Shutdown has begun.
var ErrRegistryClosed = errors.New("session registry is shut down")

type sessionEntry struct {
	session   *domain.Session
	expiresAt time.Time
	cancel    context.CancelFunc
}

// sessionService is the SessionRegistry: it owns every live session and its
// refresher goroutine.
type sessionService struct {
	BaseService
	auth     portssvc.AuthSvcFacade
	history  portssvc.HistorySvcFacade
	director portssvc.DirectorSvcFacade
	opts     SessionOptions
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	// closed is set by Shutdown; wg.Add is only called under mu while it is false.
	closed bool

	rootCtx    context.Context
	rootCancel context.CancelFunc
	wg         sync.WaitGroup
}

func NewSessionService(
	auth portssvc.AuthSvcFacade,
	history portssvc.HistorySvcFacade,
	director portssvc.DirectorSvcFacade,
	opts SessionOptions,
) portssvc.SessionSvcFacade {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 30 * time.Second
	}
	if opts.Expiry <= 0 {
		opts.Expiry = 12 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	rootCtx, rootCancel := context.WithCancel(middleware.WithLogger(context.Background(), opts.Logger))
	return &sessionService{
		auth:       auth,
		history:    history,
		director:   director,
		opts:       opts,
		now:        time.Now,
		sessions:   make(map[string]*sessionEntry),
		rootCtx:    rootCtx,
		rootCancel: rootCancel,
	}
}

func (s *sessionService) Login(ctx context.Context, identity domain.Identity) (*domain.Session, error) {
	user, err := s.auth.VerifyIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := domain.NewSession(uuid.NewString(), *user, s.auth.IsDirector(*user), now)

	// The first snapshot is loaded inline so the dashboard renders with data;
	// a failure here is shown as an empty history, not a failed login.
	if err := s.Refresh(ctx, session); err != nil {
		session.AddFlash(domain.OutcomeError, domain.MsgLoadFailed)
	}

	refreshCtx, cancel := context.WithCancel(s.rootCtx)
	entry := &sessionEntry{session: session, expiresAt: now.Add(s.opts.Expiry), cancel: cancel}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		return nil, ErrRegistryClosed
	}
	s.sessions[session.ID] = entry
	s.wg.Add(1)
	s.mu.Unlock()

	go s.runRefresher(refreshCtx, entry)

	s.LogInfo(ctx, "Session started",
		slog.String("session_id", session.ID),
		slog.String("user_id", user.UserID),
		slog.Bool("director", session.IsDirector),
	)
	return session, nil
}

func (s *sessionService) Logout(ctx context.Context, sessionID string) {
	if entry := s.remove(sessionID); entry != nil {
		s.LogInfo(ctx, "Session ended", slog.String("session_id", sessionID))
	}
}

func (s *sessionService) GetSession(sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrUnauthorized)
	}
	if s.now().After(entry.expiresAt) {
		s.remove(sessionID)
		return nil, fmt.Errorf("session %s expired: %w", sessionID, apperrors.ErrUnauthorized)
	}
	return entry.session, nil
}

// Refresh runs the fetch cycle. Overlapping refreshes of one session are not
// serialised; the last one to finish wins.
func (s *sessionService) Refresh(ctx context.Context, session *domain.Session) error {
	var errs []error
	if err := s.history.ReloadSession(ctx, session); err != nil {
		errs = append(errs, err)
	}
	if session.IsDirector {
		if err := s.director.ReloadSession(ctx, session); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *sessionService) ScheduleRefresh(session *domain.Session, delay time.Duration) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-s.rootCtx.Done():
			return
		case <-timer.C:
		}
		if !s.isLive(session.ID) {
			return
		}
		ctx := s.sessionCtx(session)
		if err := s.Refresh(ctx, session); err != nil {
			s.LogError(ctx, err, "Scheduled refresh failed")
		}
	}()
}

func (s *sessionService) Shutdown() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.rootCancel()
	s.wg.Wait()

	s.mu.Lock()
	clear(s.sessions)
	s.mu.Unlock()
}

func (s *sessionService) runRefresher(ctx context.Context, entry *sessionEntry) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.opts.RefreshInterval)
	defer ticker.Stop()

	logCtx := s.sessionCtx(entry.session)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.now().After(entry.expiresAt) {
				s.remove(entry.session.ID)
				s.LogInfo(logCtx, "Session expired")
				return
			}
			if err := s.Refresh(middleware.WithLogger(ctx, s.GetLogger(logCtx)), entry.session); err != nil {
				s.LogDebug(logCtx, "Periodic refresh failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (s *sessionService) sessionCtx(session *domain.Session) context.Context {
	logger := s.opts.Logger.With(
		slog.String("session_id", session.ID),
		slog.String("user_id", session.User.UserID),
	)
	return middleware.WithLogger(s.rootCtx, logger)
}

func (s *sessionService) isLive(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[sessionID]
	return ok
}

func (s *sessionService) remove(sessionID string) *sessionEntry {
	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()
	if !ok {
		return nil
	}
	entry.cancel()
	return entry
}
