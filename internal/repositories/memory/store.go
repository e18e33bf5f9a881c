// Package memory is the demo-mode store: users and expenses held in memory,
// seeded from a YAML fixture.
package memory

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/expense_portal/internal/apperrors"
	"github.com/SscSPs/expense_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_portal/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Fixture is the on-disk shape of a demo data file.
type Fixture struct {
	Users    []FixtureUser    `yaml:"users"`
	Expenses []FixtureExpense `yaml:"expenses"`
}

type FixtureUser struct {
	ID         string    `yaml:"id"`
	FirstName  string    `yaml:"first_name"`
	LastName   string    `yaml:"last_name"`
	EmployeeID string    `yaml:"employee_id"`
	IsAdmin    bool      `yaml:"is_admin"`
	CreatedAt  time.Time `yaml:"created_at"`
}

type FixtureExpense struct {
	ID            string     `yaml:"id"`
	UserID        string     `yaml:"user_id"`
	Merchant      string     `yaml:"merchant"`
	Category      string     `yaml:"category"`
	Amount        string     `yaml:"amount"`
	Currency      string     `yaml:"currency"`
	Status        string     `yaml:"status"`
	StatusReason  string     `yaml:"status_reason"`
	ReceiptDate   *time.Time `yaml:"receipt_date"`
	ReceiptNumber string     `yaml:"receipt_number"`
	Description   string     `yaml:"description"`
	ImageURL      string     `yaml:"image_url"`
	CreatedAt     time.Time  `yaml:"created_at"`
}

// Store implements the repository ports over in-memory slices.
type Store struct {
	mu       sync.RWMutex
	users    []domain.User
	expenses []domain.Expense
}

var (
	_ portsrepo.UserRepositoryFacade    = (*Store)(nil)
	_ portsrepo.ExpenseRepositoryFacade = (*Store)(nil)
)

// NewStore returns a store holding the given records. Expenses are kept
// newest first.
func NewStore(users []domain.User, expenses []domain.Expense) *Store {
	s := &Store{users: slices.Clone(users), expenses: slices.Clone(expenses)}
	slices.SortStableFunc(s.expenses, func(a, b domain.Expense) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return s
}

// LoadFixtureFile reads and parses a YAML fixture from disk.
func LoadFixtureFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read demo data file %s: %w", path, err)
	}
	return ParseFixture(data)
}

// ParseFixture builds a store from YAML fixture bytes.
func ParseFixture(data []byte) (*Store, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse demo data: %w", err)
	}

	users := make([]domain.User, 0, len(fx.Users))
	names := make(map[string]string, len(fx.Users))
	for _, u := range fx.Users {
		if u.ID == "" {
			return nil, fmt.Errorf("demo user %s %s has no id", u.FirstName, u.LastName)
		}
		users = append(users, domain.User{
			UserID:     u.ID,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			EmployeeID: u.EmployeeID,
			IsAdmin:    u.IsAdmin,
			CreatedAt:  u.CreatedAt,
		})
		names[u.ID] = domain.User{FirstName: u.FirstName, LastName: u.LastName}.DisplayName()
	}

	expenses := make([]domain.Expense, 0, len(fx.Expenses))
	for _, e := range fx.Expenses {
		amount := decimal.Zero
		if e.Amount != "" {
			var err error
			amount, err = decimal.NewFromString(e.Amount)
			if err != nil {
				return nil, fmt.Errorf("demo expense %s has invalid amount %q: %w", e.ID, e.Amount, err)
			}
		}
		exp := domain.Expense{
			ExpenseID:     e.ID,
			Merchant:      e.Merchant,
			Category:      e.Category,
			Amount:        amount,
			Currency:      e.Currency,
			Status:        domain.ExpenseStatus(e.Status),
			StatusReason:  e.StatusReason,
			ReceiptDate:   e.ReceiptDate,
			ReceiptNumber: e.ReceiptNumber,
			Description:   e.Description,
			ImageURL:      e.ImageURL,
			CreatedAt:     e.CreatedAt,
		}
		if e.UserID != "" {
			uid := e.UserID
			exp.UserID = &uid
			exp.SubmitterName = names[uid]
		}
		expenses = append(expenses, exp)
	}

	return NewStore(users, expenses), nil
}

func (s *Store) FindUserByIdentity(_ context.Context, identity domain.Identity) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *domain.User
	for i := range s.users {
		if identity.Matches(s.users[i]) {
			if found != nil {
				return nil, fmt.Errorf("identity matches more than one user: %w", apperrors.ErrNotFound)
			}
			u := s.users[i]
			found = &u
		}
	}
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (s *Store) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.UserID == userID {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) ListExpensesByUser(_ context.Context, userID string) ([]domain.Expense, error) {
	return s.filter(func(e domain.Expense) bool {
		return e.UserID != nil && *e.UserID == userID
	}), nil
}

func (s *Store) ListAllExpenses(_ context.Context) ([]domain.Expense, error) {
	return s.filter(func(domain.Expense) bool { return true }), nil
}

func (s *Store) ListExpensesByStatus(_ context.Context, status domain.ExpenseStatus) ([]domain.Expense, error) {
	return s.filter(func(e domain.Expense) bool { return e.Status == status }), nil
}

func (s *Store) filter(keep func(domain.Expense) bool) []domain.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Expense{}
	for _, e := range s.expenses {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Provider exposes the store through the repository provider used by the
// service container.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{UserRepo: s, ExpenseRepo: s}
}
