package gateways

import (
	"context"
	"encoding/json"

	"github.com/SscSPs/expense_portal/internal/core/domain"
)

// SubmissionRequest is everything the submission webhook receives.
type SubmissionRequest struct {
	User  domain.User
	Draft domain.SubmissionDraft
}

// SubmissionGateway posts expense drafts to the external workflow.
type SubmissionGateway interface {
	// SubmitExpense sends the draft as one multipart request and returns the
	// raw JSON body. Transport failures wrap apperrors.ErrUpstream.
	SubmitExpense(ctx context.Context, req SubmissionRequest) (json.RawMessage, error)
}

// DecisionGateway posts approve/reject decisions.
type DecisionGateway interface {
	PostDecision(ctx context.Context, decision domain.Decision) (*domain.DecisionResult, error)
}

// ChatGateway relays a director's message to the assistant.
type ChatGateway interface {
	// SendChat returns the raw JSON reply; its shape is not fixed.
	SendChat(ctx context.Context, req domain.ChatRequest) (json.RawMessage, error)
}

// WorkflowGateways groups the external workflow endpoints.
type WorkflowGateways struct {
	Submission SubmissionGateway
	Decision   DecisionGateway
	Chat       ChatGateway
}
