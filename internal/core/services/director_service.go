package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/expense_portal/internal/apperrors"
	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/SscSPs/expense_portal/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/expense_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_portal/internal/core/ports/services"
)

type directorService struct {
	BaseService
	expenseRepo portsrepo.ExpenseReader
	decisions   gateways.DecisionGateway
}

func NewDirectorService(expenseRepo portsrepo.ExpenseReader, decisions gateways.DecisionGateway) portssvc.DirectorSvcFacade {
	return &directorService{expenseRepo: expenseRepo, decisions: decisions}
}

func (s *directorService) GetStats(ctx context.Context) (domain.DirectorStats, error) {
	all, err := s.expenseRepo.ListAllExpenses(ctx)
	if err != nil {
		return domain.DirectorStats{}, fmt.Errorf("failed to load director stats: %w", err)
	}
	return domain.ComputeDirectorStats(all), nil
}

func (s *directorService) ListPending(ctx context.Context) ([]domain.Expense, error) {
	pending, err := s.expenseRepo.ListExpensesByStatus(ctx, domain.StatusManualReview)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending expenses: %w", err)
	}
	return pending, nil
}

func (s *directorService) ReloadSession(ctx context.Context, session *domain.Session) error {
	stats, err := s.GetStats(ctx)
	if err != nil {
		s.LogError(ctx, err, "Director stats reload failed", slog.String("session_id", session.ID))
		return err
	}
	pending, err := s.ListPending(ctx)
	if err != nil {
		s.LogError(ctx, err, "Pending list reload failed", slog.String("session_id", session.ID))
		return err
	}
	session.SetDirectorView(stats, pending)
	return nil
}

func (s *directorService) Decide(ctx context.Context, session *domain.Session, decision domain.Decision) (*domain.DecisionResult, error) {
	decision.ExpenseID = strings.TrimSpace(decision.ExpenseID)
	decision.Reason = strings.TrimSpace(decision.Reason)

	if decision.ExpenseID == "" {
		return nil, apperrors.NewValidationError("expenseId", domain.MsgDecisionFailed)
	}
	switch decision.Action {
	case domain.ActionApprove:
	case domain.ActionReject:
		if decision.Reason == "" {
			// The director dismissed the reason prompt.
			return nil, apperrors.NewValidationError("reason", domain.MsgDecisionCancelled)
		}
	default:
		return nil, apperrors.NewValidationError("action", domain.MsgDecisionFailed)
	}

	logger := s.GetLogger(ctx).With(
		slog.String("expense_id", decision.ExpenseID),
		slog.String("action", string(decision.Action)),
	)

	result, err := s.decisions.PostDecision(ctx, decision)
	if err != nil {
		logger.Error("Decision webhook failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to post decision: %w", err)
	}

	if !result.Success {
		logger.Warn("Decision refused by workflow", slog.String("message", result.Message))
		if result.Message == "" {
			result.Message = domain.MsgDecisionFailed
		}
		return result, nil
	}

	logger.Info("Decision accepted")
	session.Dismiss(decision.ExpenseID)
	if result.Message == "" {
		result.Message = domain.MsgDecisionApproved
		if decision.Action == domain.ActionReject {
			result.Message = domain.MsgDecisionRejected
		}
	}

	if err := s.ReloadSession(ctx, session); err != nil {
		logger.Warn("Stats refresh after decision failed", slog.String("error", err.Error()))
	}
	return result, nil
}
