package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the workflow status stored on an expense row.
type ExpenseStatus string

const (
	StatusApproved     ExpenseStatus = "Approved"
	StatusRejected     ExpenseStatus = "Rejected"
	StatusManualReview ExpenseStatus = "Manual Review"
)

// KnownStatuses lists the statuses in display order.
var KnownStatuses = []ExpenseStatus{StatusApproved, StatusManualReview, StatusRejected}

// NormalizeStatus maps a raw status onto one of the known values.
// Anything unrecognised presents as pending (Manual Review).
func NormalizeStatus(raw ExpenseStatus) ExpenseStatus {
	switch raw {
	case StatusApproved, StatusRejected, StatusManualReview:
		return raw
	default:
		return StatusManualReview
	}
}

// DefaultCategory is used for expenses stored without a category.
const DefaultCategory = "other"

// Expense is a read-only view of an expense row. Rows are created and
// transitioned by the external workflow; this service never writes them.
type Expense struct {
	ExpenseID     string          `json:"id"`
	UserID        *string         `json:"userId,omitempty"` // nil for legacy rows
	SubmitterName string          `json:"submitterName,omitempty"`
	Merchant      string          `json:"merchant"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        ExpenseStatus   `json:"status"`
	StatusReason  string          `json:"statusReason,omitempty"`
	ReceiptDate   *time.Time      `json:"receiptDate,omitempty"`
	ReceiptNumber string          `json:"receiptNumber,omitempty"`
	Description   string          `json:"description,omitempty"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// DisplayStatus is the status used for presentation and aggregation.
func (e Expense) DisplayStatus() ExpenseStatus {
	return NormalizeStatus(e.Status)
}

// DisplayDate prefers the receipt date and falls back to the creation time.
func (e Expense) DisplayDate() time.Time {
	if e.ReceiptDate != nil && !e.ReceiptDate.IsZero() {
		return *e.ReceiptDate
	}
	return e.CreatedAt
}

// CategoryOrDefault returns the category code, or "other" when empty.
func (e Expense) CategoryOrDefault() string {
	if e.Category == "" {
		return DefaultCategory
	}
	return e.Category
}

// FindExpense returns the expense with the given ID from a list.
func FindExpense(expenses []Expense, expenseID string) (Expense, bool) {
	for _, e := range expenses {
		if e.ExpenseID == expenseID {
			return e, true
		}
	}
	return Expense{}, false
}
