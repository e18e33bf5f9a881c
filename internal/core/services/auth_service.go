package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/expense_portal/internal/apperrors"
	"github.com/SscSPs/expense_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_portal/internal/core/ports/services"
	"github.com/go-playground/validator/v10"
)

type authService struct {
	BaseService
	userRepo       portsrepo.UserReader
	directorPrefix string
	validate       *validator.Validate
}

// NewAuthService creates the identity verifier. directorPrefix is the
// employee ID prefix reserved for directors.
func NewAuthService(userRepo portsrepo.UserReader, directorPrefix string) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:       userRepo,
		directorPrefix: directorPrefix,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *authService) VerifyIdentity(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	identity = identity.Trimmed()
	if err := s.validate.Struct(identity); err != nil {
		return nil, apperrors.NewValidationError("identity", domain.MsgFillAllFields)
	}

	user, err := s.userRepo.FindUserByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Identity not found", slog.String("employee_id", identity.EmployeeID))
			return nil, fmt.Errorf("identity %s: %w", identity.EmployeeID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Identity lookup failed", slog.String("employee_id", identity.EmployeeID))
		return nil, fmt.Errorf("failed to verify identity: %w", err)
	}

	s.LogInfo(ctx, "Identity verified", slog.String("user_id", user.UserID))
	return user, nil
}

func (s *authService) IsDirector(user domain.User) bool {
	return user.IsDirector(s.directorPrefix)
}
