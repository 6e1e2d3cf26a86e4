package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/assignment"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
)

// EligibleWorker is an active, skill-qualified worker for a position
type EligibleWorker struct {
	Worker model.Worker `json:"worker"`
	// Conflict is set when the worker is booked at an overlapping event
	Conflict *assignment.Conflict `json:"conflict,omitempty"`
	// CurrentPosition is the position the worker already holds at this event, if any
	CurrentPosition string `json:"currentPosition,omitempty"`
}

// Available reports whether assigning the worker would pass the conflict check
func (e EligibleWorker) Available() bool {
	return e.Conflict == nil
}

// EligibleWorkers lists active workers qualified for position at the event,
// sorted by name and annotated with conflicts and current positions
func EligibleWorkers(ctx context.Context, store WorkerGigsStore, logger *zap.Logger, eventID, position string) ([]EligibleWorker, error) {
	if position == "" {
		return nil, fmt.Errorf("%w: position is required", ErrInvalidInput)
	}

	// Step 1: DB query - Fetch events and resolve the target event
	events, err := store.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	event, ok := indexEvents(events)[eventID]
	if !ok {
		return nil, fmt.Errorf("failed to fetch event: %w", errEventNotFound(eventID))
	}
	// Only positions the event lists can be staffed
	if _, known := event.Requirement(position); !known {
		return nil, fmt.Errorf("%w: event %q does not need a %q", ErrInvalidInput, event.Name, position)
	}

	// Step 2: DB query - Fetch roster and assignments
	workers, err := store.GetWorkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workers: %w", err)
	}
	assignments, err := store.GetAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	// Step 3: Filter to active, skill-qualified workers
	candidates := filterActiveWorkers(workers)
	sortWorkersByName(candidates)

	eligible := make([]EligibleWorker, 0, len(candidates))
	for _, w := range candidates {
		if !assignment.Qualifies(position, w.Skills) {
			continue
		}
		ew := EligibleWorker{Worker: w}
		// Busy workers are listed with their conflict
		if result := assignment.CheckConflict(w.ID, event, assignments, events); result.HasConflict {
			ew.Conflict = result.Conflict
		}
		// Note a position already held here; assigning would move them
		for _, a := range assignments {
			if a.EventID == event.ID && a.WorkerID == w.ID {
				ew.CurrentPosition = a.Position
				break
			}
		}
		eligible = append(eligible, ew)
	}

	logger.Debug("Listed eligible workers",
		zap.String("event_id", eventID),
		zap.String("position", position),
		zap.Int("eligible", len(eligible)),
		zap.Int("active", len(candidates)))

	return eligible, nil
}
