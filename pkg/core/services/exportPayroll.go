package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/clients/sheetsclient"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

// ExportPayrollStore is the storage needed to export payroll
type ExportPayrollStore interface {
	db.EventStore
	db.WorkerStore
	db.AssignmentStore
}

// ExportPayroll writes every pending assignment to a "Payroll <today>" tab of
// the payroll spreadsheet, ordered by event date and start time. It returns
// the tab title and the number of rows written.
func ExportPayroll(
	ctx context.Context,
	store ExportPayrollStore,
	publisher PayrollPublisher,
	spreadsheetID string,
	today string,
	logger *zap.Logger,
) (string, int, error) {
	if spreadsheetID == "" {
		return "", 0, fmt.Errorf("%w: payrollSheetID is not configured", ErrInvalidInput)
	}

	// Step 1: DB query - Fetch assignments, events and workers
	assignments, err := store.GetAssignments(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	events, err := store.GetEvents(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to fetch events: %w", err)
	}
	workers, err := store.GetWorkers(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to fetch workers: %w", err)
	}
	eventsByID := indexEvents(events)
	workersByID := indexWorkers(workers)

	// Step 2: Build a row per pending assignment
	type line struct {
		event model.Event
		row   sheetsclient.PayrollRow
	}
	var lines []line
	for _, a := range assignments {
		if a.IsPaid() {
			continue
		}
		event := eventsByID[a.EventID]
		worker := workersByID[a.WorkerID]

		miles := ""
		if a.Miles != nil {
			miles = a.Miles.Round(2).String()
		}
		lines = append(lines, line{
			event: event,
			row: sheetsclient.PayrollRow{
				Date:       event.Date,
				EventName:  event.Name,
				WorkerName: worker.FullName(),
				Email:      worker.Email,
				Position:   a.Position,
				Hours:      a.Hours.Round(2).String(),
				Miles:      miles,
				BasePay:    a.BasePay.StringFixed(2),
				TravelPay:  a.TravelPay.StringFixed(2),
				Bonus:      a.LakeGenevaBonus.StringFixed(2),
				Multiplier: a.HolidayMultiplier.StringFixed(2),
				TotalPay:   a.TotalPay.StringFixed(2),
			},
		})
	}
	// Step 3: Order by event date and start time
	sort.SliceStable(lines, func(i, j int) bool {
		return eventBefore(lines[i].event, lines[j].event)
	})

	rows := make([]sheetsclient.PayrollRow, len(lines))
	for i, l := range lines {
		rows[i] = l.row
	}

	// Step 4: Sheets write - Publish to a new tab
	title := "Payroll " + today
	logger.Debug("Publishing payroll", zap.String("tab", title), zap.Int("rows", len(rows)))
	if err := publisher.PublishPayroll(spreadsheetID, title, rows); err != nil {
		return "", 0, fmt.Errorf("failed to publish payroll: %w", err)
	}

	logger.Info("Payroll exported", zap.String("tab", title), zap.Int("rows", len(rows)))
	return title, len(rows), nil
}
