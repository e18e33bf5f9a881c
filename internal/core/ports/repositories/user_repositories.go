package repositories

import (
	"context"

	"github.com/SscSPs/expense_portal/internal/core/domain"
)

// UserReader defines read operations for user data.
// The store owns user records; this service never writes them.
type UserReader interface {
	// FindUserByIdentity returns the single user matching all three fields
	// exactly, or apperrors.ErrNotFound.
	FindUserByIdentity(ctx context.Context, identity domain.Identity) (*domain.User, error)

	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
}
