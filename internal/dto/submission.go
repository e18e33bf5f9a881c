package dto

import "github.com/SscSPs/expense_portal/internal/core/domain"

// SubmissionResponse is the classified reply of the submission workflow.
type SubmissionResponse struct {
	Outcome domain.SubmissionOutcome `json:"outcome"`
}
