package domain

// DecisionAction is the director's verdict on a pending expense.
type DecisionAction string

const (
	ActionApprove DecisionAction = "approve"
	ActionReject  DecisionAction = "reject"
)

// Decision is posted to the approval webhook.
type Decision struct {
	Action    DecisionAction `json:"action"`
	ExpenseID string         `json:"expenseId"`
	Reason    string         `json:"reason"`
}

// DecisionResult is the approval webhook's reply.
type DecisionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
