package mapping

import (
	"strings"

	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/SscSPs/expense_portal/internal/models"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToDomainExpense converts a model Expense to a domain Expense.
// The raw status is kept; presentation normalises it.
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:     m.ExpenseID,
		UserID:        m.UserID,
		SubmitterName: strings.TrimSpace(deref(m.SubmitterFirstName) + " " + deref(m.SubmitterLastName)),
		Merchant:      deref(m.Merchant),
		Category:      deref(m.Category),
		Amount:        m.Amount,
		Currency:      deref(m.Currency),
		Status:        domain.ExpenseStatus(deref(m.Status)),
		StatusReason:  deref(m.StatusReason),
		ReceiptDate:   m.ReceiptDate,
		ReceiptNumber: deref(m.ReceiptNumber),
		Description:   deref(m.Description),
		ImageURL:      deref(m.ImageURL),
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to a slice of domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
