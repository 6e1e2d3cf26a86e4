package db

import (
	"context"
	"errors"
	"time"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/payroll"
)

// ErrNotFound is returned when a record looked up by ID does not exist
var ErrNotFound = errors.New("record not found")

// EventStore defines the interface for event database operations
type EventStore interface {
	GetEvents(ctx context.Context) ([]model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	InsertEvents(ctx context.Context, events []model.Event) error
}

// WorkerStore defines the interface for worker roster operations
type WorkerStore interface {
	GetWorkers(ctx context.Context) ([]model.Worker, error)
	GetWorker(ctx context.Context, id string) (*model.Worker, error)
	UpsertWorkers(ctx context.Context, workers []model.Worker) error
}

// AssignmentStore defines the interface for assignment database operations
type AssignmentStore interface {
	GetAssignments(ctx context.Context) ([]model.Assignment, error)
	GetAssignment(ctx context.Context, id string) (*model.Assignment, error)
	// InsertAssignment writes a new assignment. If replaceID is non-empty the
	// assignment with that ID is deleted in the same transaction (a move).
	InsertAssignment(ctx context.Context, assignment *model.Assignment, replaceID string) error
	DeleteAssignment(ctx context.Context, id string) error
	UpdateAssignmentPay(ctx context.Context, assignment *model.Assignment) error
	SetPaymentStatus(ctx context.Context, ids []string, status model.PaymentStatus, paidAt *time.Time) (int, error)
}

// SettingsStore defines the interface for pay settings operations
type SettingsStore interface {
	GetPaySettings(ctx context.Context) (payroll.PaySettings, error)
	SavePaySettings(ctx context.Context, settings payroll.PaySettings) error
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	EventStore
	WorkerStore
	AssignmentStore
	SettingsStore
}
