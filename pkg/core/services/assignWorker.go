package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/assignment"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/payroll"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/metrics"
)

// Where an assignment's mileage came from
const (
	MilesFromInput  = "input"
	MilesFromLookup = "lookup"
	MilesUnset      = "unset"
)

// AssignWorkerStore is the storage needed to assign a worker
type AssignWorkerStore interface {
	SnapshotStore
	db.WorkerStore
}

// AssignCollaborators are the optional external services used while assigning.
// Either may be nil.
type AssignCollaborators struct {
	Distance DistanceClient
	Notifier Notifier
}

// AssignWorkerRequest proposes a worker for a position at an event.
// Hours defaults to the event's duration; Miles defaults to a distance lookup
// from the worker's address to the venue.
type AssignWorkerRequest struct {
	EventID  string           `json:"eventId" validate:"required"`
	WorkerID string           `json:"workerId" validate:"required"`
	Position string           `json:"position" validate:"required"`
	Hours    *decimal.Decimal `json:"hours,omitempty"`
	Miles    *decimal.Decimal `json:"miles,omitempty"`
}

// AssignResult reports what AssignWorker did
type AssignResult struct {
	Assignment *model.Assignment         `json:"assignment,omitempty"`
	Breakdown  payroll.PayBreakdown      `json:"breakdown"`
	Refusal    *assignment.Refusal       `json:"refusal,omitempty"`
	MovedFrom  *model.Assignment         `json:"movedFrom,omitempty"`
	Qualified  bool                      `json:"qualified"`
	Capacity   assignment.CapacityResult `json:"capacity"`

	MilesSource   string `json:"milesSource"`
	DistanceError string `json:"distanceError,omitempty"`
	Notified      bool   `json:"notified"`
	NotifyError   string `json:"notifyError,omitempty"`
}

// AssignWorker validates and persists an assignment.
//
// All reads complete before any decision. A capacity or conflict refusal is
// returned in the result and as an error wrapping ErrAssignmentRefused; nothing
// is written. When the worker holds another position at the same event, that
// assignment is replaced in the same transaction. A failed distance lookup
// leaves mileage unset and a failed notification is reported; neither blocks
// the assignment.
func AssignWorker(
	ctx context.Context,
	store AssignWorkerStore,
	collab AssignCollaborators,
	logger *zap.Logger,
	req AssignWorkerRequest,
) (*AssignResult, error) {
	// Step 1: Validate input
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Hours != nil && !req.Hours.IsPositive() {
		return nil, fmt.Errorf("%w: hours must be greater than zero", ErrInvalidInput)
	}
	if req.Miles != nil && req.Miles.IsNegative() {
		return nil, fmt.Errorf("%w: miles must not be negative", ErrInvalidInput)
	}

	logger.Debug("Assigning worker",
		zap.String("event_id", req.EventID),
		zap.String("worker_id", req.WorkerID),
		zap.String("position", req.Position))

	// Step 2: DB query - Read events, assignments and settings before deciding anything
	snap, err := loadSnapshot(ctx, store)
	if err != nil {
		return nil, err
	}
	event, err := snap.event(req.EventID)
	if err != nil {
		return nil, err
	}

	// Step 3: DB query - Fetch the worker
	worker, err := store.GetWorker(ctx, req.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worker: %w", err)
	}
	if !worker.Status.IsActive() {
		return nil, fmt.Errorf("%w: worker %s is %s", ErrInvalidInput, worker.FullName(), worker.Status)
	}

	// Step 4: Hours default to the event duration
	hours, err := resolveHours(req.Hours, event)
	if err != nil {
		return nil, err
	}

	// Step 5: Skill match is advisory; an unqualified worker is still assigned
	result := &AssignResult{
		Qualified: assignment.Qualifies(req.Position, worker.Skills),
	}
	if !result.Qualified {
		logger.Warn("Worker has no matching skill for position",
			zap.String("worker", worker.FullName()),
			zap.String("position", req.Position),
			zap.Strings("skills", worker.Skills))
	}

	// Step 6: Capacity and schedule conflict checks. A refusal writes nothing
	decision := assignment.Validate(
		assignment.Candidate{WorkerID: worker.ID, Event: *event, Position: req.Position},
		assignment.Snapshot{Events: snap.events, Assignments: snap.assignments},
	)
	result.Capacity = decision.Capacity
	if !decision.Approved() {
		metrics.RecordAssignmentRefused(string(decision.Refusal.Kind))
		logger.Info("Assignment refused",
			zap.String("kind", string(decision.Refusal.Kind)),
			zap.String("reason", decision.Refusal.Message))
		result.Refusal = decision.Refusal
		return result, fmt.Errorf("%w: %w", ErrAssignmentRefused, decision.Refusal)
	}
	result.MovedFrom = decision.Capacity.MovedFrom

	// Step 7: Mileage from input or a distance lookup. A failed lookup leaves it unset
	miles, source, lookupErr := resolveMiles(ctx, collab.Distance, req.Miles, worker.Address, event.Venue)
	result.MilesSource = source
	if lookupErr != nil {
		result.DistanceError = lookupErr.Error()
		logger.Warn("Distance lookup failed, mileage left unset",
			zap.String("worker_id", worker.ID),
			zap.String("venue", event.Venue),
			zap.Error(lookupErr))
	}

	// Step 8: Price the assignment
	input := payroll.PayInput{
		Position:     req.Position,
		Hours:        hours,
		Miles:        decimal.Zero,
		IsLakeGeneva: event.IsLakeGeneva,
		IsHoliday:    event.IsHoliday,
	}
	// Unset miles price as zero travel
	if miles != nil {
		input.Miles = *miles
	}
	breakdown := payroll.Calculate(input, snap.settings)
	metrics.RecordPayCalculation(breakdown.Degraded())
	result.Breakdown = breakdown

	// Step 9: Build the assignment record
	a := &model.Assignment{
		ID:            uuid.New().String(),
		EventID:       event.ID,
		WorkerID:      worker.ID,
		Position:      req.Position,
		Hours:         hours,
		Miles:         miles,
		IsLakeGeneva:  event.IsLakeGeneva,
		IsHoliday:     event.IsHoliday,
		PaymentStatus: model.PaymentPending,
		CreatedAt:     time.Now().UTC(),
	}
	applyBreakdown(a, breakdown)

	// Step 10: DB write - Insert, replacing the worker's old position on a move
	replaceID := ""
	if result.MovedFrom != nil {
		replaceID = result.MovedFrom.ID
		logger.Debug("Moving worker between positions",
			zap.String("from_position", result.MovedFrom.Position),
			zap.String("to_position", req.Position))
	}

	if err := store.InsertAssignment(ctx, a, replaceID); err != nil {
		return nil, fmt.Errorf("failed to insert assignment: %w", err)
	}
	result.Assignment = a
	metrics.RecordAssignmentCreated(result.MovedFrom != nil)

	logger.Info("Worker assigned",
		zap.String("assignment_id", a.ID),
		zap.String("worker", worker.FullName()),
		zap.String("event", event.Name),
		zap.String("position", a.Position),
		zap.String("total_pay", a.TotalPay.StringFixed(2)),
		zap.Strings("warnings", warningStrings(breakdown.Warnings)))

	// Step 11: Notify the worker. Failure is reported, not fatal
	notifyAssignment(ctx, collab.Notifier, logger, worker, event, a, result)

	return result, nil
}

func resolveHours(requested *decimal.Decimal, event *model.Event) (decimal.Decimal, error) {
	if requested != nil {
		return *requested, nil
	}
	hours, err := assignment.DefaultHours(event.StartTime, event.EndTime)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: cannot derive hours for event %q: %v", ErrInvalidInput, event.Name, err)
	}
	return hours, nil
}

// resolveMiles returns explicit miles when given, otherwise looks the distance up.
// A failed or impossible lookup returns nil miles and MilesUnset.
func resolveMiles(ctx context.Context, distance DistanceClient, requested *decimal.Decimal, origin, destination string) (*decimal.Decimal, string, error) {
	if requested != nil {
		return requested, MilesFromInput, nil
	}
	// No client or no address means there is nothing to look up
	if distance == nil || strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		metrics.RecordDistanceLookup(metrics.OutcomeSkipped)
		return nil, MilesUnset, nil
	}

	miles, err := distance.DistanceMiles(ctx, origin, destination)
	if err != nil {
		metrics.RecordDistanceLookup(metrics.OutcomeFailed)
		return nil, MilesUnset, err
	}
	metrics.RecordDistanceLookup(metrics.OutcomeOK)
	return &miles, MilesFromLookup, nil
}

func notifyAssignment(ctx context.Context, notifier Notifier, logger *zap.Logger, worker *model.Worker, event *model.Event, a *model.Assignment, result *AssignResult) {
	if notifier == nil || worker.Email == "" {
		metrics.RecordNotification(metrics.OutcomeSkipped)
		return
	}

	// Build and send the email
	subject, body := assignmentEmail(worker, event, a)
	if err := notifier.SendEmail(ctx, worker.Email, subject, body); err != nil {
		metrics.RecordNotification(metrics.OutcomeFailed)
		result.NotifyError = err.Error()
		logger.Warn("Failed to notify worker", zap.String("email", worker.Email), zap.Error(err))
		return
	}

	metrics.RecordNotification(metrics.OutcomeOK)
	result.Notified = true
	logger.Debug("Worker notified", zap.String("email", worker.Email))
}

func assignmentEmail(worker *model.Worker, event *model.Event, a *model.Assignment) (string, string) {
	subject := fmt.Sprintf("You're booked: %s on %s", event.Name, event.Date)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", worker.FirstName)
	fmt.Fprintf(&b, "You have been assigned as %s at %s.\n\n", a.Position, event.Name)
	fmt.Fprintf(&b, "Date: %s\n", event.Date)
	if event.HasEndTime() {
		fmt.Fprintf(&b, "Time: %s - %s\n", event.StartTime, event.EndTime)
	} else {
		fmt.Fprintf(&b, "Start: %s\n", event.StartTime)
	}
	if event.Venue != "" {
		fmt.Fprintf(&b, "Venue: %s\n", event.Venue)
	}
	fmt.Fprintf(&b, "Hours: %s\n", a.Hours.Round(2).String())
	fmt.Fprintf(&b, "Estimated pay: $%s\n", a.TotalPay.StringFixed(2))
	b.WriteString("\nThanks!\n")

	return subject, b.String()
}

// applyBreakdown copies calculated amounts onto an assignment
func applyBreakdown(a *model.Assignment, b payroll.PayBreakdown) {
	a.BasePay = b.BasePay
	a.TravelPay = b.TravelPay
	a.LakeGenevaBonus = b.LakeGenevaBonus
	a.Subtotal = b.Subtotal
	a.HolidayMultiplier = b.HolidayMultiplier
	a.TotalPay = b.TotalPay
}

func warningStrings(warnings []payroll.PayWarning) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = string(w)
	}
	return out
}
