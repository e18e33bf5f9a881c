package domain

import (
	"slices"
	"sync"
	"time"
)

// Flash is a one-shot notice shown on the next page render.
type Flash struct {
	Kind    OutcomeKind
	Message string
}

// Session is the application state of one logged-in user: who they are,
// the last fetched history and director snapshot, and the chat transcript.
// It lives from login to logout and is safe for concurrent use; the
// periodic refresher and request handlers write to it independently.
type Session struct {
	ID         string
	User       User
	IsDirector bool
	CreatedAt  time.Time

	mu              sync.RWMutex
	expenses        []Expense
	summary         Summary
	historyLoadedAt time.Time
	stats           DirectorStats
	pending         []Expense
	dismissed       map[string]struct{}
	transcript      []ChatMessage
	flashes         []Flash
}

// NewSession creates an empty session for the user.
func NewSession(id string, user User, isDirector bool, now time.Time) *Session {
	return &Session{
		ID:         id,
		User:       user,
		IsDirector: isDirector,
		CreatedAt:  now,
		summary:    Summarize(nil),
		dismissed:  make(map[string]struct{}),
	}
}

// SetHistory replaces the expense snapshot and its summary wholesale.
func (s *Session) SetHistory(expenses []Expense, at time.Time) {
	summary := Summarize(expenses)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = slices.Clone(expenses)
	s.summary = summary
	s.historyLoadedAt = at
}

// History returns a copy of the expense snapshot, its summary and load time.
func (s *Session) History() ([]Expense, Summary, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.expenses), s.summary, s.historyLoadedAt
}

// FindExpense looks up an expense in the current snapshot.
func (s *Session) FindExpense(expenseID string) (Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := FindExpense(s.expenses, expenseID); ok {
		return e, true
	}
	return FindExpense(s.pending, expenseID)
}

// SetDirectorView replaces the director statistics and pending list.
func (s *Session) SetDirectorView(stats DirectorStats, pending []Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
	s.pending = slices.Clone(pending)
}

// DirectorView returns the stats and the pending items not yet dismissed.
func (s *Session) DirectorView() (DirectorStats, []Expense) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	visible := make([]Expense, 0, len(s.pending))
	for _, e := range s.pending {
		if _, gone := s.dismissed[e.ExpenseID]; !gone {
			visible = append(visible, e)
		}
	}
	return s.stats, visible
}

// Dismiss removes a decided item from the pending list. It stays hidden
// even if a later fetch still reports it pending, since the workflow
// applies decisions asynchronously.
func (s *Session) Dismiss(expenseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed[expenseID] = struct{}{}
}

// AppendChat adds a message to the transcript.
func (s *Session) AppendChat(msg ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, msg)
}

// Transcript returns a copy of the chat transcript.
func (s *Session) Transcript() []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.transcript)
}

// AddFlash queues a notice for the next render.
func (s *Session) AddFlash(kind OutcomeKind, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes = append(s.flashes, Flash{Kind: kind, Message: message})
}

// PopFlashes returns and clears the queued notices.
func (s *Session) PopFlashes() []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.flashes
	s.flashes = nil
	return out
}
