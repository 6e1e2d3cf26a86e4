package assignment

import (
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
)

// Conflict describes the existing assignment that blocks a new one
type Conflict struct {
	EventID   string `json:"eventId"`
	EventName string `json:"eventName"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Position  string `json:"position"`
}

// ConflictResult is the outcome of a conflict check
type ConflictResult struct {
	HasConflict bool      `json:"hasConflict"`
	Conflict    *Conflict `json:"conflict,omitempty"`
}

// CheckConflict reports whether assigning workerID to the candidate event would
// overlap one of the worker's assignments at another event on the same date.
//
// Dates are compared as strings. Times are compared as minutes since midnight
// using half-open intervals, so an event ending at 17:00 does not conflict with
// one starting at 17:00. A pairing is skipped when either event has no end time
// or an unparseable time. The first overlap found, in assignment order, is returned.
func CheckConflict(workerID string, candidate model.Event, assignments []model.Assignment, events []model.Event) ConflictResult {
	if !candidate.HasEndTime() {
		return ConflictResult{}
	}
	candStart, candEnd, ok := eventWindow(candidate)
	if !ok {
		return ConflictResult{}
	}

	// Index events by ID
	eventsByID := make(map[string]model.Event, len(events))
	for _, e := range events {
		eventsByID[e.ID] = e
	}

	for _, a := range assignments {
		// Same-event moves are handled by capacity, not here
		if a.WorkerID != workerID || a.EventID == candidate.ID {
			continue
		}

		other, found := eventsByID[a.EventID]
		if !found || other.Date != candidate.Date {
			continue
		}
		if !other.HasEndTime() {
			continue
		}

		otherStart, otherEnd, ok := eventWindow(other)
		if !ok {
			continue
		}

		// Half-open overlap
		if candStart < otherEnd && candEnd > otherStart {
			return ConflictResult{
				HasConflict: true,
				Conflict: &Conflict{
					EventID:   other.ID,
					EventName: other.Name,
					Date:      other.Date,
					StartTime: other.StartTime,
					EndTime:   other.EndTime,
					Position:  a.Position,
				},
			}
		}
	}

	return ConflictResult{}
}

// eventWindow returns the event's start and end in minutes since midnight
func eventWindow(e model.Event) (int, int, bool) {
	start, err := ParseClock(e.StartTime)
	if err != nil {
		return 0, 0, false
	}
	end, err := ParseClock(e.EndTime)
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}
