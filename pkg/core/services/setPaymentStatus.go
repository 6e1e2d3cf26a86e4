package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

// SetPaymentStatus marks assignments paid or pending. Paid assignments are
// stamped with now; pending ones have the stamp cleared. It returns how many
// assignments were updated, and db.ErrNotFound when none were.
func SetPaymentStatus(
	ctx context.Context,
	store db.AssignmentStore,
	logger *zap.Logger,
	ids []string,
	status model.PaymentStatus,
	now time.Time,
) (int, error) {
	// Step 1: Validate input
	if !status.IsValid() {
		return 0, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, status)
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no assignment IDs given", ErrInvalidInput)
	}
	for _, id := range ids {
		if err := checkID("assignment", id); err != nil {
			return 0, err
		}
	}

	// Paid assignments are stamped; pending ones are cleared
	var paidAt *time.Time
	if status == model.PaymentPaid {
		stamp := now.UTC()
		paidAt = &stamp
	}

	// Step 2: DB write - Update all IDs in one statement
	updated, err := store.SetPaymentStatus(ctx, ids, status, paidAt)
	if err != nil {
		return 0, fmt.Errorf("failed to update payment status: %w", err)
	}
	if updated == 0 {
		return 0, fmt.Errorf("no matching assignments: %w", db.ErrNotFound)
	}
	// Partial matches still succeed
	if updated < len(ids) {
		logger.Warn("Some assignments were not found",
			zap.Int("requested", len(ids)),
			zap.Int("updated", updated))
	}

	logger.Info("Payment status updated",
		zap.String("status", string(status)),
		zap.Int("count", updated))

	return updated, nil
}
