package dto

import (
	"time"

	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/SscSPs/expense_portal/internal/utils"
	"github.com/shopspring/decimal"
)

// ExpenseResponse is an expense with its presentation fields resolved.
type ExpenseResponse struct {
	ExpenseID       string          `json:"id"`
	Merchant        string          `json:"merchant"`
	Category        string          `json:"category"`
	CategoryLabel   string          `json:"categoryLabel"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	FormattedAmount string          `json:"formattedAmount"`
	Status          string          `json:"status"`
	StatusLabel     string          `json:"statusLabel"`
	StatusReason    string          `json:"statusReason,omitempty"`
	Date            string          `json:"date"`
	ReceiptNumber   string          `json:"receiptNumber,omitempty"`
	Description     string          `json:"description,omitempty"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	SubmitterName   string          `json:"submitterName,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToExpenseResponse resolves labels and formatting for one expense.
func ToExpenseResponse(e domain.Expense) ExpenseResponse {
	status := e.DisplayStatus()
	return ExpenseResponse{
		ExpenseID:       e.ExpenseID,
		Merchant:        utils.MerchantOrUnknown(e.Merchant),
		Category:        e.CategoryOrDefault(),
		CategoryLabel:   utils.CategoryLabel(e.Category),
		Amount:          e.Amount,
		Currency:        e.Currency,
		FormattedAmount: utils.FormatCurrency(e.Amount, e.Currency),
		Status:          string(status),
		StatusLabel:     utils.StatusBadge(status).Text,
		StatusReason:    e.StatusReason,
		Date:            utils.FormatDate(e.DisplayDate()),
		ReceiptNumber:   e.ReceiptNumber,
		Description:     e.Description,
		ImageURL:        e.ImageURL,
		SubmitterName:   e.SubmitterName,
		CreatedAt:       e.CreatedAt,
	}
}

// ToExpenseResponses maps a list, keeping its order.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, ToExpenseResponse(e))
	}
	return out
}

// HistoryResponse is the user's expense history and its summary.
type HistoryResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Summary  domain.Summary    `json:"summary"`
	LoadedAt *time.Time        `json:"loadedAt,omitempty"`
}

// ToHistoryResponse builds the response from a session snapshot.
func ToHistoryResponse(expenses []domain.Expense, summary domain.Summary, loadedAt time.Time) HistoryResponse {
	resp := HistoryResponse{Expenses: ToExpenseResponses(expenses), Summary: summary}
	if !loadedAt.IsZero() {
		resp.LoadedAt = &loadedAt
	}
	return resp
}
