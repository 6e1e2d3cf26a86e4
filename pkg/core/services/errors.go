package services

import (
	"errors"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/assignment"
)

var (
	// ErrInvalidInput wraps request validation failures
	ErrInvalidInput = errors.New("invalid input")

	// ErrAssignmentRefused wraps an *assignment.Refusal. The assignment was not written.
	ErrAssignmentRefused = errors.New("assignment refused")
)

// RefusalFrom extracts the structured refusal from an error returned by AssignWorker
func RefusalFrom(err error) (*assignment.Refusal, bool) {
	var refusal *assignment.Refusal
	if errors.As(err, &refusal) {
		return refusal, true
	}
	return nil, false
}
