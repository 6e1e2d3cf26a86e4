package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/assignment"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
)

// StaffedWorker is a worker holding a position at an event
type StaffedWorker struct {
	AssignmentID  string              `json:"assignmentId"`
	WorkerID      string              `json:"workerId"`
	Name          string              `json:"name"`
	PaymentStatus model.PaymentStatus `json:"paymentStatus"`
}

// PositionStaffing is the fill state of one position
type PositionStaffing struct {
	Name     string          `json:"name"`
	Needed   int             `json:"needed"`
	Filled   int             `json:"filled"`
	IsFilled bool            `json:"isFilled"`
	Workers  []StaffedWorker `json:"workers"`
}

// EventStaffing is the fill state of every position at an event
type EventStaffing struct {
	Event        model.Event        `json:"event"`
	Positions    []PositionStaffing `json:"positions"`
	FullyStaffed bool               `json:"fullyStaffed"`
}

// ViewEventStaffing reports filled/needed counts and the assigned workers per position
func ViewEventStaffing(ctx context.Context, store WorkerGigsStore, logger *zap.Logger, eventID string) (*EventStaffing, error) {
	if err := checkID("event", eventID); err != nil {
		return nil, err
	}

	// Step 1: DB query - Fetch the event, assignments and roster
	event, err := store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}
	assignments, err := store.GetAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	workers, err := store.GetWorkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workers: %w", err)
	}
	workersByID := indexWorkers(workers)

	// Step 2: Group assignments under each position
	result := &EventStaffing{Event: *event, FullyStaffed: true}
	for _, p := range event.Positions {
		ps := PositionStaffing{
			Name:    p.Name,
			Needed:  p.CountNeeded,
			Workers: []StaffedWorker{},
		}
		for _, a := range assignments {
			if a.EventID != event.ID || a.Position != p.Name {
				continue
			}
			// Unknown workers are shown by ID
			name := a.WorkerID
			if w, ok := workersByID[a.WorkerID]; ok {
				name = w.FullName()
			}
			ps.Workers = append(ps.Workers, StaffedWorker{
				AssignmentID:  a.ID,
				WorkerID:      a.WorkerID,
				Name:          name,
				PaymentStatus: a.PaymentStatus,
			})
		}
		ps.Filled = assignment.CountFilled(event.ID, p.Name, assignments)
		ps.IsFilled = assignment.IsPositionFilled(*event, p.Name, assignments)
		if !ps.IsFilled {
			result.FullyStaffed = false
		}
		result.Positions = append(result.Positions, ps)
	}

	logger.Debug("Viewed event staffing",
		zap.String("event_id", eventID),
		zap.Bool("fully_staffed", result.FullyStaffed))

	return result, nil
}
