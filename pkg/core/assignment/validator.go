package assignment

import (
	"fmt"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
)

// RefusalKind identifies why an assignment was refused
type RefusalKind string

const (
	RefusalUnknownPosition RefusalKind = "unknown_position"
	RefusalAlreadyAssigned RefusalKind = "already_assigned"
	RefusalPositionFilled  RefusalKind = "position_filled"
	RefusalConflict        RefusalKind = "schedule_conflict"
)

// Refusal is a structured rejection of an assignment. Callers surface it to
// the admin and must not persist the assignment; a refusal is never retried.
type Refusal struct {
	Kind     RefusalKind     `json:"kind"`
	Message  string          `json:"message"`
	Capacity *CapacityResult `json:"capacity,omitempty"`
	Conflict *Conflict       `json:"conflict,omitempty"`
}

func (r *Refusal) Error() string {
	return r.Message
}

// Candidate is a proposed worker-to-position match
type Candidate struct {
	WorkerID string
	Event    model.Event
	Position string
}

// Snapshot is the state a candidate is checked against. It must be read in
// full before validation and before anything is written.
type Snapshot struct {
	Events      []model.Event
	Assignments []model.Assignment
}

// Decision is the outcome of validating a candidate
type Decision struct {
	Refusal  *Refusal
	Capacity CapacityResult
}

// Approved reports whether the candidate may be persisted
func (d Decision) Approved() bool {
	return d.Refusal == nil
}

// Check vetoes a candidate by returning a refusal, or returns nil to allow it
type Check func(c Candidate, s Snapshot, capacity CapacityResult) *Refusal

// DefaultChecks run in order; the first refusal wins
var DefaultChecks = []Check{
	CheckPositionCapacity,
	CheckScheduleConflict,
}

// Validate runs the checks against the snapshot. Capacity is always evaluated
// (with move semantics) so the caller knows which assignment a move replaces.
func Validate(c Candidate, s Snapshot, checks ...Check) Decision {
	if len(checks) == 0 {
		checks = DefaultChecks
	}

	// Capacity first; every check sees it
	capacity := CheckCapacity(c.WorkerID, c.Event, c.Position, s.Assignments)
	decision := Decision{Capacity: capacity}

	for _, check := range checks {
		if refusal := check(c, s, capacity); refusal != nil {
			decision.Refusal = refusal
			return decision
		}
	}
	return decision
}

// CheckPositionCapacity refuses unknown positions, duplicates and filled positions
func CheckPositionCapacity(c Candidate, _ Snapshot, capacity CapacityResult) *Refusal {
	switch {
	// Order matters: unknown beats duplicate beats full
	case capacity.UnknownPosition:
		return &Refusal{
			Kind:     RefusalUnknownPosition,
			Message:  fmt.Sprintf("event %q does not need a %q", c.Event.Name, c.Position),
			Capacity: &capacity,
		}
	case capacity.AlreadyAssigned != nil:
		return &Refusal{
			Kind:     RefusalAlreadyAssigned,
			Message:  fmt.Sprintf("worker is already assigned as %q at %q", c.Position, c.Event.Name),
			Capacity: &capacity,
		}
	case capacity.IsFilled:
		return &Refusal{
			Kind:     RefusalPositionFilled,
			Message:  fmt.Sprintf("%q at %q is already filled (%d of %d)", c.Position, c.Event.Name, capacity.Filled, capacity.Needed),
			Capacity: &capacity,
		}
	}
	return nil
}

// CheckScheduleConflict refuses a worker already booked at an overlapping event
func CheckScheduleConflict(c Candidate, s Snapshot, _ CapacityResult) *Refusal {
	result := CheckConflict(c.WorkerID, c.Event, s.Assignments, s.Events)
	if !result.HasConflict {
		return nil
	}
	// Name the blocking gig so the admin can fix it
	conflict := result.Conflict
	return &Refusal{
		Kind: RefusalConflict,
		Message: fmt.Sprintf("worker is already working as %q at %q on %s from %s to %s",
			conflict.Position, conflict.EventName, conflict.Date, conflict.StartTime, conflict.EndTime),
		Conflict: conflict,
	}
}
