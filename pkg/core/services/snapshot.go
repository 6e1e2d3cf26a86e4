package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/payroll"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

// SnapshotStore is the read side needed to validate and price an assignment
type SnapshotStore interface {
	db.EventStore
	db.AssignmentStore
	db.SettingsStore
}

// snapshot is a consistent read of everything a decision depends on
type snapshot struct {
	events      []model.Event
	assignments []model.Assignment
	settings    payroll.PaySettings
}

// loadSnapshot reads events, assignments and pay settings concurrently.
// It returns only after every read has completed.
func loadSnapshot(ctx context.Context, store SnapshotStore) (*snapshot, error) {
	var s snapshot
	g, gctx := errgroup.WithContext(ctx)

	// Step 1: DB query - Fetch events
	g.Go(func() error {
		events, err := store.GetEvents(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch events: %w", err)
		}
		s.events = events
		return nil
	})
	// Step 2: DB query - Fetch assignments
	g.Go(func() error {
		assignments, err := store.GetAssignments(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch assignments: %w", err)
		}
		s.assignments = assignments
		return nil
	})
	// Step 3: DB query - Fetch pay settings
	g.Go(func() error {
		settings, err := store.GetPaySettings(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch pay settings: %w", err)
		}
		s.settings = settings
		return nil
	})

	// Decisions wait for every read
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *snapshot) event(id string) (*model.Event, error) {
	for i := range s.events {
		if s.events[i].ID == id {
			return &s.events[i], nil
		}
	}
	return nil, errEventNotFound(id)
}
