package services

import (
	"context"

	"github.com/SscSPs/expense_portal/internal/core/domain"
)

// IdentityVerifierSvc checks an asserted identity against the store.
type IdentityVerifierSvc interface {
	// VerifyIdentity returns the user matching the trimmed triple exactly.
	// Empty fields fail validation before the store is queried; a miss
	// returns apperrors.ErrNotFound.
	VerifyIdentity(ctx context.Context, identity domain.Identity) (*domain.User, error)
}

// RoleResolverSvc decides which view a user gets.
type RoleResolverSvc interface {
	IsDirector(user domain.User) bool
}

// AuthSvcFacade combines the identity-related service interfaces
type AuthSvcFacade interface {
	IdentityVerifierSvc
	RoleResolverSvc
}
