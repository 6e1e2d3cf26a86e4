package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

// UnassignWorker deletes an assignment and returns what was removed
func UnassignWorker(ctx context.Context, store db.AssignmentStore, logger *zap.Logger, assignmentID string) (*model.Assignment, error) {
	if err := checkID("assignment", assignmentID); err != nil {
		return nil, err
	}

	// Fetch first so the caller can report what was removed
	a, err := store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if a.IsPaid() {
		logger.Warn("Removing an assignment that has already been paid",
			zap.String("assignment_id", a.ID),
			zap.String("total_pay", a.TotalPay.StringFixed(2)))
	}

	// DB write - Delete the assignment
	if err := store.DeleteAssignment(ctx, assignmentID); err != nil {
		return nil, fmt.Errorf("failed to delete assignment: %w", err)
	}

	logger.Info("Worker unassigned",
		zap.String("assignment_id", a.ID),
		zap.String("event_id", a.EventID),
		zap.String("worker_id", a.WorkerID),
		zap.String("position", a.Position))

	return a, nil
}
