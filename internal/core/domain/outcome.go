package domain

// OutcomeKind classifies how a submission should be presented.
type OutcomeKind string

const (
	OutcomeSuccess OutcomeKind = "success"
	OutcomeWarning OutcomeKind = "warning"
	OutcomeError   OutcomeKind = "error"
)

// EmbeddedExpense is the expense echoed back by the workflow, when present.
type EmbeddedExpense struct {
	Status       ExpenseStatus `json:"status"`
	StatusReason string        `json:"statusReason,omitempty"`
	Merchant     string        `json:"merchant,omitempty"`
	Amount       string        `json:"amount,omitempty"`
}

// SubmissionOutcome is the result of classifying a workflow response.
type SubmissionOutcome struct {
	Kind        OutcomeKind      `json:"kind"`
	Accepted    bool             `json:"accepted"` // the workflow took the submission
	Message     string           `json:"message,omitempty"`
	Details     string           `json:"details,omitempty"`
	Reason      string           `json:"reason,omitempty"`
	Suggestions []string         `json:"suggestions,omitempty"`
	Expense     *EmbeddedExpense `json:"expense,omitempty"`
}

// Failed reports whether the workflow refused the submission.
func (o SubmissionOutcome) Failed() bool {
	return !o.Accepted
}
