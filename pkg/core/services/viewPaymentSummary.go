package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/payroll"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

// PaymentSummaryStore is the storage needed to summarise payments
type PaymentSummaryStore interface {
	db.EventStore
	db.AssignmentStore
}

// PaymentFilter narrows a payment summary. Empty fields match everything;
// From and To are inclusive "YYYY-MM-DD" event dates.
type PaymentFilter struct {
	WorkerID string
	From     string
	To       string
}

func (f PaymentFilter) matches(a model.Assignment, event model.Event, found bool) bool {
	if f.WorkerID != "" && a.WorkerID != f.WorkerID {
		return false
	}
	if f.From == "" && f.To == "" {
		return true
	}
	// A date filter cannot match an orphaned assignment
	if !found {
		return false
	}
	if f.From != "" && event.Date < f.From {
		return false
	}
	if f.To != "" && event.Date > f.To {
		return false
	}
	return true
}

// ViewPaymentSummary totals pending and paid pay per worker for the assignments matching filter
func ViewPaymentSummary(ctx context.Context, store PaymentSummaryStore, logger *zap.Logger, filter PaymentFilter) (payroll.PaymentSummary, error) {
	// Step 1: DB query - Fetch assignments and events
	assignments, err := store.GetAssignments(ctx)
	if err != nil {
		return payroll.PaymentSummary{}, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	events, err := store.GetEvents(ctx)
	if err != nil {
		return payroll.PaymentSummary{}, fmt.Errorf("failed to fetch events: %w", err)
	}
	eventsByID := indexEvents(events)

	// Step 2: Apply the filter
	selected := make([]model.Assignment, 0, len(assignments))
	for _, a := range assignments {
		event, found := eventsByID[a.EventID]
		if filter.matches(a, event, found) {
			selected = append(selected, a)
		}
	}

	// Step 3: Total per worker
	summary := payroll.SummarizePayments(selected)
	logger.Debug("Summarised payments",
		zap.Int("assignments", len(selected)),
		zap.String("pending_total", summary.PendingTotal.StringFixed(2)),
		zap.String("paid_total", summary.PaidTotal.StringFixed(2)))

	return summary, nil
}
