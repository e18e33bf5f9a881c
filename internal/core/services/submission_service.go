package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_portal/internal/apperrors"
	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/SscSPs/expense_portal/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/expense_portal/internal/core/ports/services"
	"github.com/SscSPs/expense_portal/internal/platform/config"
	"github.com/SscSPs/expense_portal/internal/utils"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

// manualDateLayout is what an HTML date input submits.
const manualDateLayout = "2006-01-02"

// manualFieldMessages maps ManualEntry fields to the message shown when the
// field is missing.
var manualFieldMessages = map[string]string{
	"Merchant":    domain.MsgMerchantRequired,
	"Date":        domain.MsgDateRequired,
	"Amount":      domain.MsgInvalidAmount,
	"Category":    domain.MsgCategoryRequired,
	"Description": domain.MsgDescriptionNeeded,
}

type submissionService struct {
	BaseService
	gateway         gateways.SubmissionGateway
	defaultCurrency string
	validate        *validator.Validate
}

func NewSubmissionService(gateway gateways.SubmissionGateway, defaultCurrency string) portssvc.SubmissionSvcFacade {
	if defaultCurrency == "" {
		defaultCurrency = config.DefaultCurrency
	}
	return &submissionService{
		gateway:         gateway,
		defaultCurrency: defaultCurrency,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *submissionService) ValidateDraft(draft domain.SubmissionDraft) error {
	draft = normalizeDraft(draft)

	switch draft.Mode {
	case domain.ModeManual:
		if err := s.validateManual(draft.Manual); err != nil {
			return err
		}
	default:
		if !draft.HasFile() && draft.Comment == "" {
			return apperrors.NewValidationError("receipt", domain.MsgFileOrComment)
		}
	}

	if draft.HasFile() {
		return validateReceiptFile(draft.File)
	}
	return nil
}

func (s *submissionService) validateManual(m domain.ManualEntry) error {
	if err := s.validate.Struct(m); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			field := fieldErrs[0].Field()
			return apperrors.NewValidationError(strings.ToLower(field[:1])+field[1:], manualFieldMessages[field])
		}
		return apperrors.NewValidationError("", domain.MsgFillAllFields)
	}

	if _, err := time.Parse(manualDateLayout, m.Date); err != nil {
		return apperrors.NewValidationError("date", domain.MsgDateRequired)
	}

	amount, err := utils.ParseAmount(m.Amount)
	if err != nil || !amount.IsPositive() {
		return apperrors.NewValidationError("amount", domain.MsgInvalidAmount)
	}

	if _, ok := config.CategoryLabel(m.Category); !ok {
		return apperrors.NewValidationError("category", domain.MsgCategoryRequired)
	}
	return nil
}

// validateReceiptFile checks both the declared and the sniffed type, so a
// renamed PDF does not pass as a JPEG.
func validateReceiptFile(file *domain.ReceiptFile) error {
	declared := strings.ToLower(strings.TrimSpace(file.ContentType))
	if declared != "" {
		if i := strings.Index(declared, ";"); i >= 0 {
			declared = strings.TrimSpace(declared[:i])
		}
		if !config.IsAllowedFileType(declared) {
			return apperrors.NewValidationError("receipt", domain.MsgInvalidFileType)
		}
	}

	if !config.IsAllowedFileType(mimetype.Detect(file.Data).String()) {
		return apperrors.NewValidationError("receipt", domain.MsgInvalidFileType)
	}

	if file.Size() > config.MaxUploadSize {
		return apperrors.NewValidationError("receipt", domain.MsgFileTooLarge)
	}
	return nil
}

func normalizeDraft(draft domain.SubmissionDraft) domain.SubmissionDraft {
	draft.Comment = strings.TrimSpace(draft.Comment)
	m := &draft.Manual
	m.Merchant = strings.TrimSpace(m.Merchant)
	m.ReceiptNumber = strings.TrimSpace(m.ReceiptNumber)
	m.Date = strings.TrimSpace(m.Date)
	m.Amount = strings.TrimSpace(m.Amount)
	m.Currency = strings.ToUpper(strings.TrimSpace(m.Currency))
	m.Category = strings.TrimSpace(m.Category)
	m.Description = strings.TrimSpace(m.Description)
	if draft.File != nil && len(draft.File.Data) == 0 {
		draft.File = nil
	}
	return draft
}

func (s *submissionService) Submit(ctx context.Context, user domain.User, draft domain.SubmissionDraft) (*domain.SubmissionOutcome, error) {
	if err := s.ValidateDraft(draft); err != nil {
		return nil, err
	}

	draft = normalizeDraft(draft)
	if draft.Mode == domain.ModeManual {
		if draft.Manual.Currency == "" {
			draft.Manual.Currency = s.defaultCurrency
		}
		// The workflow expects a dot decimal separator.
		if amount, err := utils.ParseAmount(draft.Manual.Amount); err == nil {
			draft.Manual.Amount = amount.String()
		}
	}

	logger := s.GetLogger(ctx).With(
		slog.String("user_id", user.UserID),
		slog.String("input_mode", string(draft.Mode)),
		slog.Bool("has_file", draft.HasFile()),
	)

	raw, err := s.gateway.SubmitExpense(ctx, gateways.SubmissionRequest{User: user, Draft: draft})
	if err != nil {
		if errors.Is(err, apperrors.ErrDemoMode) {
			logger.Info("Submission skipped, webhook not configured")
		} else {
			logger.Error("Submission webhook failed", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to submit expense: %w", err)
	}

	outcome := ClassifyResponse(raw)
	logger.Info("Submission classified",
		slog.String("kind", string(outcome.Kind)),
		slog.Bool("accepted", outcome.Accepted),
	)
	return &outcome, nil
}
