package payroll

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
)

// WorkerPayTotals aggregates a worker's pay across assignments
type WorkerPayTotals struct {
	WorkerID     string          `json:"workerId"`
	Assignments  int             `json:"assignments"`
	PendingTotal decimal.Decimal `json:"pendingTotal"`
	PaidTotal    decimal.Decimal `json:"paidTotal"`
}

// PaymentSummary is the pending/paid split across a set of assignments
type PaymentSummary struct {
	Workers      []WorkerPayTotals `json:"workers"`
	PendingTotal decimal.Decimal   `json:"pendingTotal"`
	PaidTotal    decimal.Decimal   `json:"paidTotal"`
}

// SummarizePayments totals TotalPay by payment status, per worker and overall.
// Workers are sorted by ID.
func SummarizePayments(assignments []model.Assignment) PaymentSummary {
	byWorker := make(map[string]*WorkerPayTotals)
	summary := PaymentSummary{
		PendingTotal: decimal.Zero,
		PaidTotal:    decimal.Zero,
	}

	// Accumulate per worker and overall
	for _, a := range assignments {
		totals, ok := byWorker[a.WorkerID]
		if !ok {
			totals = &WorkerPayTotals{
				WorkerID:     a.WorkerID,
				PendingTotal: decimal.Zero,
				PaidTotal:    decimal.Zero,
			}
			byWorker[a.WorkerID] = totals
		}
		totals.Assignments++

		if a.IsPaid() {
			totals.PaidTotal = totals.PaidTotal.Add(a.TotalPay)
			summary.PaidTotal = summary.PaidTotal.Add(a.TotalPay)
		} else {
			totals.PendingTotal = totals.PendingTotal.Add(a.TotalPay)
			summary.PendingTotal = summary.PendingTotal.Add(a.TotalPay)
		}
	}

	// Flatten and sort for stable output
	summary.Workers = make([]WorkerPayTotals, 0, len(byWorker))
	for _, totals := range byWorker {
		summary.Workers = append(summary.Workers, *totals)
	}
	sort.Slice(summary.Workers, func(i, j int) bool {
		return summary.Workers[i].WorkerID < summary.Workers[j].WorkerID
	})

	return summary
}
