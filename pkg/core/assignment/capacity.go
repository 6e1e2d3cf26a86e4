package assignment

import (
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
)

// CapacityResult is the outcome of checking a position's headcount for one worker
type CapacityResult struct {
	Position string `json:"position"`
	Needed   int    `json:"needed"`
	Filled   int    `json:"filled"`
	IsFilled bool   `json:"isFilled"`

	// UnknownPosition is set when the event does not list the position
	UnknownPosition bool `json:"unknownPosition,omitempty"`

	// AlreadyAssigned is the worker's existing assignment to the same position, if any
	AlreadyAssigned *model.Assignment `json:"-"`

	// MovedFrom is the worker's assignment to a different position in the same
	// event. It is removed before the new one is written.
	MovedFrom *model.Assignment `json:"-"`
}

// CountFilled returns the number of assignments for the event and position
func CountFilled(eventID, position string, assignments []model.Assignment) int {
	filled := 0
	for _, a := range assignments {
		if a.EventID == eventID && a.Position == position {
			filled++
		}
	}
	return filled
}

// IsPositionFilled reports whether the event already has as many assignments
// for the position as it needs. A position the event does not list needs 0
// and is therefore always filled.
func IsPositionFilled(event model.Event, position string, assignments []model.Assignment) bool {
	needed := 0
	if req, ok := event.Requirement(position); ok {
		needed = req.CountNeeded
	}
	return CountFilled(event.ID, position, assignments) >= needed
}

// CheckCapacity evaluates assigning workerID to position at event.
//
// If the worker already holds a different position at the same event the
// request is a move: that assignment is excluded before counting and returned
// in MovedFrom. If the worker already holds the same position it is returned
// in AlreadyAssigned.
func CheckCapacity(workerID string, event model.Event, position string, assignments []model.Assignment) CapacityResult {
	result := CapacityResult{Position: position}

	req, ok := event.Requirement(position)
	if !ok {
		result.UnknownPosition = true
		result.IsFilled = true
		return result
	}
	result.Needed = req.CountNeeded

	// Drop the worker's other position at this event; a move frees it
	remaining := make([]model.Assignment, 0, len(assignments))
	for i := range assignments {
		a := assignments[i]
		if a.EventID == event.ID && a.WorkerID == workerID {
			if a.Position == position {
				if result.AlreadyAssigned == nil {
					result.AlreadyAssigned = &assignments[i]
				}
			} else if result.MovedFrom == nil {
				result.MovedFrom = &assignments[i]
				continue
			}
		}
		remaining = append(remaining, a)
	}

	// Count what's left
	result.Filled = CountFilled(event.ID, position, remaining)
	result.IsFilled = result.Filled >= result.Needed

	return result
}
