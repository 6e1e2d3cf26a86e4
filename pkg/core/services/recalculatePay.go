package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/payroll"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/metrics"
)

// RecalculatePayStore is the storage needed to reprice an assignment
type RecalculatePayStore interface {
	db.AssignmentStore
	db.SettingsStore
}

// RecalculatePayRequest reprices an assignment. Nil fields keep the stored value.
type RecalculatePayRequest struct {
	AssignmentID string
	Hours        *decimal.Decimal
	Miles        *decimal.Decimal
}

// RecalculatePay recomputes an assignment's pay with the current settings,
// typically after mileage is entered by hand following a failed lookup.
// Paid assignments are not repriced.
func RecalculatePay(ctx context.Context, store RecalculatePayStore, logger *zap.Logger, req RecalculatePayRequest) (*model.Assignment, payroll.PayBreakdown, error) {
	// Step 1: Validate input
	if err := checkID("assignment", req.AssignmentID); err != nil {
		return nil, payroll.PayBreakdown{}, err
	}
	if req.Hours != nil && !req.Hours.IsPositive() {
		return nil, payroll.PayBreakdown{}, fmt.Errorf("%w: hours must be greater than zero", ErrInvalidInput)
	}
	if req.Miles != nil && req.Miles.IsNegative() {
		return nil, payroll.PayBreakdown{}, fmt.Errorf("%w: miles must not be negative", ErrInvalidInput)
	}

	// Step 2: DB query - Fetch the assignment and current settings
	a, err := store.GetAssignment(ctx, req.AssignmentID)
	if err != nil {
		return nil, payroll.PayBreakdown{}, fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if a.IsPaid() {
		return nil, payroll.PayBreakdown{}, fmt.Errorf("%w: assignment %s has already been paid", ErrInvalidInput, a.ID)
	}

	settings, err := store.GetPaySettings(ctx)
	if err != nil {
		return nil, payroll.PayBreakdown{}, fmt.Errorf("failed to fetch pay settings: %w", err)
	}

	// Step 3: Apply corrections
	if req.Hours != nil {
		a.Hours = *req.Hours
	}
	if req.Miles != nil {
		miles := *req.Miles
		a.Miles = &miles
	}

	// Step 4: Reprice with the event flags captured at assignment time
	input := payroll.PayInput{
		Position:     a.Position,
		Hours:        a.Hours,
		Miles:        decimal.Zero,
		IsLakeGeneva: a.IsLakeGeneva,
		IsHoliday:    a.IsHoliday,
	}
	if a.Miles != nil {
		input.Miles = *a.Miles
	}

	previous := a.TotalPay
	breakdown := payroll.Calculate(input, settings)
	metrics.RecordPayCalculation(breakdown.Degraded())
	applyBreakdown(a, breakdown)

	// Step 5: DB write - Save the new breakdown
	if err := store.UpdateAssignmentPay(ctx, a); err != nil {
		return nil, payroll.PayBreakdown{}, fmt.Errorf("failed to update assignment pay: %w", err)
	}

	logger.Info("Assignment repriced",
		zap.String("assignment_id", a.ID),
		zap.String("previous_total", previous.StringFixed(2)),
		zap.String("total_pay", a.TotalPay.StringFixed(2)),
		zap.Strings("warnings", warningStrings(breakdown.Warnings)))

	return a, breakdown, nil
}
