package dto

import "github.com/SscSPs/expense_portal/internal/core/domain"

// PendingResponse lists the expenses awaiting a decision.
type PendingResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// DecisionRequest is a director's verdict on a pending expense.
type DecisionRequest struct {
	Action    string `json:"action" binding:"required,oneof=approve reject"`
	ExpenseID string `json:"expenseId" binding:"required"`
	Reason    string `json:"reason"`
}

// Decision converts the request into the domain decision.
func (r DecisionRequest) Decision() domain.Decision {
	return domain.Decision{
		Action:    domain.DecisionAction(r.Action),
		ExpenseID: r.ExpenseID,
		Reason:    r.Reason,
	}
}

// DecisionResponse reports the workflow's reply to a decision.
type DecisionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
