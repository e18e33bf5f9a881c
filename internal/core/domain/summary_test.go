package domain_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func randomExpenses(r *rand.Rand, n int) []domain.Expense {
	statuses := []domain.ExpenseStatus{domain.StatusApproved, domain.StatusRejected, domain.StatusManualReview, "Escalated", ""}
	categories := []string{"food", "transport", "", "parking", "other"}
	out := make([]domain.Expense, n)
	for i := range out {
		out[i] = domain.Expense{
			ExpenseID: string(rune('a' + i%26)),
			Amount:    decimal.New(r.Int64N(100000), -2),
			Status:    statuses[r.IntN(len(statuses))],
			Category:  categories[r.IntN(len(categories))],
		}
	}
	return out
}

func TestSummarize_StatusTotalsAddUp(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		expenses := randomExpenses(r, r.IntN(40))
		s := domain.Summarize(expenses)

		sum := s.Totals.Approved.Add(s.Totals.Pending).Add(s.Totals.Rejected)
		assert.True(t, sum.Equal(s.Totals.Total), "approved+pending+rejected=%s total=%s", sum, s.Totals.Total)
		assert.Equal(t, len(expenses), s.Count)
	}
}

func TestSummarize_CategoryTotalsAddUp(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 200; i++ {
		s := domain.Summarize(randomExpenses(r, r.IntN(40)))

		sum := decimal.Zero
		for _, c := range s.Categories {
			sum = sum.Add(c.Amount)
			assert.NotEmpty(t, c.Category)
		}
		assert.True(t, sum.Equal(s.Totals.Total))
	}
}

func TestSummarize_UnknownStatusIsPending(t *testing.T) {
	s := domain.Summarize([]domain.Expense{
		{Amount: decimal.NewFromInt(10), Status: "Escalated"},
		{Amount: decimal.NewFromInt(5), Status: domain.StatusApproved},
	})

	assert.Equal(t, "10", s.Totals.Pending.String())
	assert.Equal(t, "5", s.Totals.Approved.String())
	assert.Equal(t, "15", s.Totals.Total.String())
}

func TestSummarize_CategoriesInFirstAppearanceOrder(t *testing.T) {
	s := domain.Summarize([]domain.Expense{
		{Amount: decimal.NewFromInt(1), Category: "transport"},
		{Amount: decimal.NewFromInt(2), Category: ""},
		{Amount: decimal.NewFromInt(3), Category: "transport"},
	})

	if assert.Len(t, s.Categories, 2) {
		assert.Equal(t, "transport", s.Categories[0].Category)
		assert.Equal(t, "4", s.Categories[0].Amount.String())
		assert.Equal(t, domain.DefaultCategory, s.Categories[1].Category)
		assert.Equal(t, "2", s.Categories[1].Amount.String())
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := domain.Summarize(nil)

	assert.True(t, s.Totals.Total.IsZero())
	assert.Empty(t, s.Categories)
	assert.Equal(t, 0, s.Count)
}

func TestComputeDirectorStats(t *testing.T) {
	stats := domain.ComputeDirectorStats([]domain.Expense{
		{Amount: decimal.NewFromInt(10), Status: domain.StatusApproved},
		{Amount: decimal.NewFromInt(20), Status: domain.StatusRejected},
		{Amount: decimal.NewFromInt(30), Status: domain.StatusManualReview},
		{Amount: decimal.NewFromInt(40), Status: "Escalated"},
	})

	assert.Equal(t, 4, stats.TotalCount)
	assert.Equal(t, 1, stats.ApprovedCount)
	assert.Equal(t, 1, stats.RejectedCount)
	assert.Equal(t, 2, stats.PendingCount)
	assert.Equal(t, "100", stats.TotalAmount.String())
}

func TestSession_DismissHidesPendingItem(t *testing.T) {
	s := domain.NewSession("s-1", domain.User{UserID: "u-1"}, true, fixedNow)
	s.SetDirectorView(domain.DirectorStats{}, []domain.Expense{{ExpenseID: "e-1"}, {ExpenseID: "e-2"}})

	s.Dismiss("e-1")
	_, pending := s.DirectorView()
	assert.Equal(t, []domain.Expense{{ExpenseID: "e-2"}}, pending)

	// A later reload still reporting e-1 keeps it hidden.
	s.SetDirectorView(domain.DirectorStats{}, []domain.Expense{{ExpenseID: "e-1"}, {ExpenseID: "e-2"}})
	_, pending = s.DirectorView()
	assert.Len(t, pending, 1)
}

func TestSession_PopFlashesClears(t *testing.T) {
	s := domain.NewSession("s-1", domain.User{}, false, fixedNow)
	s.AddFlash(domain.OutcomeSuccess, "ok")

	assert.Len(t, s.PopFlashes(), 1)
	assert.Empty(t, s.PopFlashes())
}
