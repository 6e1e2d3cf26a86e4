package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/assignment"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

func errEventNotFound(id string) error {
	return fmt.Errorf("event %s: %w", id, db.ErrNotFound)
}

// checkID rejects a missing or malformed record ID before it reaches storage,
// where event and assignment IDs are UUIDs
func checkID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s ID is required", ErrInvalidInput, kind)
	}
	// Catch bad IDs here instead of as a driver error
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: invalid %s ID %q", ErrInvalidInput, kind, id)
	}
	return nil
}

// indexEvents maps events by ID
func indexEvents(events []model.Event) map[string]model.Event {
	byID := make(map[string]model.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}
	return byID
}

// indexWorkers maps workers by ID
func indexWorkers(workers []model.Worker) map[string]model.Worker {
	byID := make(map[string]model.Worker, len(workers))
	for _, w := range workers {
		byID[w.ID] = w
	}
	return byID
}

// filterActiveWorkers returns workers whose status counts as active
func filterActiveWorkers(workers []model.Worker) []model.Worker {
	active := make([]model.Worker, 0, len(workers))
	for _, w := range workers {
		if w.Status.IsActive() {
			active = append(active, w)
		}
	}
	return active
}

// eventBefore orders events by date, then start time (minutes since midnight), then name.
// Unparseable start times sort after parseable ones on the same date.
func eventBefore(a, b model.Event) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	// Same date, compare start times
	am, aErr := assignment.ParseClock(a.StartTime)
	bm, bErr := assignment.ParseClock(b.StartTime)
	switch {
	case aErr == nil && bErr == nil && am != bm:
		return am < bm
	case aErr == nil && bErr != nil:
		return true
	case aErr != nil && bErr == nil:
		return false
	}
	// Tie-break on name
	return a.Name < b.Name
}

// sortWorkersByName sorts by last name, then first name, case-insensitively
func sortWorkersByName(workers []model.Worker) {
	sort.SliceStable(workers, func(i, j int) bool {
		li, lj := strings.ToLower(workers[i].LastName), strings.ToLower(workers[j].LastName)
		// Last name first, then first name
		if li != lj {
			return li < lj
		}
		return strings.ToLower(workers[i].FirstName) < strings.ToLower(workers[j].FirstName)
	})
}
