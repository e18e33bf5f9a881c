package domain

import "github.com/shopspring/decimal"

// Totals holds running sums grouped by status.
type Totals struct {
	Total    decimal.Decimal `json:"total"`
	Approved decimal.Decimal `json:"approved"`
	Pending  decimal.Decimal `json:"pending"`
	Rejected decimal.Decimal `json:"rejected"`
}

// CategoryTotal is the sum for one category code.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Summary is the aggregate rendered above the history table.
type Summary struct {
	Totals     Totals          `json:"totals"`
	Categories []CategoryTotal `json:"categories"`
	Count      int             `json:"count"`
}

// Summarize aggregates expenses by status and by category.
// Statuses other than Approved and Rejected count as pending, and
// categories keep the order in which they first appear.
func Summarize(expenses []Expense) Summary {
	s := Summary{
		Totals: Totals{
			Total:    decimal.Zero,
			Approved: decimal.Zero,
			Pending:  decimal.Zero,
			Rejected: decimal.Zero,
		},
		Categories: []CategoryTotal{},
		Count:      len(expenses),
	}

	index := make(map[string]int)
	for _, e := range expenses {
		amount := e.Amount
		s.Totals.Total = s.Totals.Total.Add(amount)

		switch e.Status {
		case StatusApproved:
			s.Totals.Approved = s.Totals.Approved.Add(amount)
		case StatusRejected:
			s.Totals.Rejected = s.Totals.Rejected.Add(amount)
		default:
			s.Totals.Pending = s.Totals.Pending.Add(amount)
		}

		category := e.CategoryOrDefault()
		i, ok := index[category]
		if !ok {
			index[category] = len(s.Categories)
			s.Categories = append(s.Categories, CategoryTotal{Category: category, Amount: amount})
			continue
		}
		s.Categories[i].Amount = s.Categories[i].Amount.Add(amount)
	}

	return s
}

// DirectorStats are the global counters shown on the director view.
type DirectorStats struct {
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalCount    int             `json:"totalCount"`
	ApprovedCount int             `json:"approvedCount"`
	PendingCount  int             `json:"pendingCount"`
	RejectedCount int             `json:"rejectedCount"`
}

// ComputeDirectorStats counts every expense once, by its display status.
func ComputeDirectorStats(expenses []Expense) DirectorStats {
	stats := DirectorStats{TotalAmount: decimal.Zero}
	for _, e := range expenses {
		stats.TotalAmount = stats.TotalAmount.Add(e.Amount)
		stats.TotalCount++
		switch e.DisplayStatus() {
		case StatusApproved:
			stats.ApprovedCount++
		case StatusRejected:
			stats.RejectedCount++
		default:
			stats.PendingCount++
		}
	}
	return stats
}
