package services

import (
	"context"

	"github.com/SscSPs/expense_portal/internal/core/domain"
)

// DraftValidatorSvc checks a draft locally.
type DraftValidatorSvc interface {
	// ValidateDraft returns an apperrors.ValidationError for the first problem
	// found. It never touches the network.
	ValidateDraft(draft domain.SubmissionDraft) error
}

// SubmitterSvc sends drafts to the workflow.
type SubmitterSvc interface {
	// Submit validates, posts and classifies. A returned outcome may still be
	// a business failure (outcome.Failed()); transport failures are errors.
	Submit(ctx context.Context, user domain.User, draft domain.SubmissionDraft) (*domain.SubmissionOutcome, error)
}

// SubmissionSvcFacade combines all submission service interfaces
type SubmissionSvcFacade interface {
	DraftValidatorSvc
	SubmitterSvc
}
