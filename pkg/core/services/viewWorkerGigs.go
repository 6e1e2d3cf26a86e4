package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

// WorkerGigsStore is the storage needed to list a worker's gigs
type WorkerGigsStore interface {
	db.EventStore
	db.WorkerStore
	db.AssignmentStore
}

// Gig is one of a worker's assignments together with its event
type Gig struct {
	Assignment model.Assignment `json:"assignment"`
	Event      model.Event      `json:"event"`
}

// WorkerGigs splits a worker's gigs around a reference date
type WorkerGigs struct {
	Worker   model.Worker `json:"worker"`
	Upcoming []Gig        `json:"upcoming"`
	Past     []Gig        `json:"past"`
}

// ViewWorkerGigs lists a worker's assignments. Gigs dated today or later are
// upcoming, soonest first; earlier gigs are past, most recent first.
// today is "YYYY-MM-DD".
func ViewWorkerGigs(ctx context.Context, store WorkerGigsStore, logger *zap.Logger, workerID, today string) (*WorkerGigs, error) {
	// Step 1: DB query - Fetch worker, events and assignments
	worker, err := store.GetWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worker: %w", err)
	}

	events, err := store.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	assignments, err := store.GetAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	// Step 2: Split gigs around today
	eventsByID := indexEvents(events)
	result := &WorkerGigs{Worker: *worker, Upcoming: []Gig{}, Past: []Gig{}}
	for _, a := range assignments {
		if a.WorkerID != workerID {
			continue
		}
		event, ok := eventsByID[a.EventID]
		if !ok {
			logger.Warn("Assignment references unknown event",
				zap.String("assignment_id", a.ID),
				zap.String("event_id", a.EventID))
			continue
		}
		gig := Gig{Assignment: a, Event: event}
		if event.Date >= today {
			result.Upcoming = append(result.Upcoming, gig)
		} else {
			result.Past = append(result.Past, gig)
		}
	}

	// Step 3: Soonest upcoming first, most recent past first
	sort.SliceStable(result.Upcoming, func(i, j int) bool {
		return eventBefore(result.Upcoming[i].Event, result.Upcoming[j].Event)
	})
	sort.SliceStable(result.Past, func(i, j int) bool {
		return eventBefore(result.Past[j].Event, result.Past[i].Event)
	})

	logger.Debug("Listed worker gigs",
		zap.String("worker_id", workerID),
		zap.Int("upcoming", len(result.Upcoming)),
		zap.Int("past", len(result.Past)))

	return result, nil
}
