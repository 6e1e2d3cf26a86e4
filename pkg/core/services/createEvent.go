package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/internal/config"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/assignment"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

// CreateEventRequest describes a new event, or the first of a recurring series
type CreateEventRequest struct {
	Name         string                      `json:"name" validate:"required"`
	Date         string                      `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string                      `json:"startTime" validate:"required,datetime=15:04"`
	EndTime      string                      `json:"endTime,omitempty" validate:"omitempty,datetime=15:04"`
	Venue        string                      `json:"venue"`
	IsLakeGeneva bool                        `json:"isLakeGeneva"`
	IsHoliday    bool                        `json:"isHoliday"`
	Positions    []model.PositionRequirement `json:"positions" validate:"required,min=1,dive"`
	Notes        string                      `json:"notes,omitempty"`

	// Recurrence is an optional RRULE (e.g. "FREQ=WEEKLY;COUNT=6") starting at Date
	Recurrence string `json:"recurrence,omitempty"`
}

// CreateEventOptions carries the configuration CreateEvent depends on
type CreateEventOptions struct {
	// RecurrenceLimit caps the number of events a recurrence may create
	RecurrenceLimit int
	// HolidayRules flag matching dates as holidays
	HolidayRules []config.HolidayRule
}

// CreateEvent validates the request and inserts one event, or one per
// occurrence of the recurrence rule. Events in a series share a SeriesID.
func CreateEvent(ctx context.Context, store db.EventStore, logger *zap.Logger, req CreateEventRequest, opts CreateEventOptions) ([]model.Event, error) {
	// Step 1: Validate input
	if err := validateEventRequest(req); err != nil {
		return nil, err
	}

	// Step 2: Resolve occurrence dates
	start, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	dates := []time.Time{start}
	seriesID := ""
	if req.Recurrence != "" {
		dates, err = expandRecurrence(req.Recurrence, start, opts.RecurrenceLimit)
		if err != nil {
			return nil, err
		}
		seriesID = uuid.New().String()
		logger.Debug("Expanded recurrence",
			zap.String("rrule", req.Recurrence),
			zap.Int("occurrences", len(dates)))
	}

	// Step 3: Build events, flagging configured holidays
	holidays, err := newHolidayMatcher(opts.HolidayRules)
	if err != nil {
		return nil, err
	}

	events := make([]model.Event, 0, len(dates))
	for _, d := range dates {
		date := d.Format(dateLayout)
		isHoliday := req.IsHoliday
		// An explicit holiday flag always wins; rules can only add one
		if name, ok := holidays.match(d); ok && !isHoliday {
			logger.Info("Event falls on a holiday", zap.String("date", date), zap.String("holiday", name))
			isHoliday = true
		}

		events = append(events, model.Event{
			ID:           uuid.New().String(),
			Name:         strings.TrimSpace(req.Name),
			Date:         date,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Venue:        strings.TrimSpace(req.Venue),
			IsLakeGeneva: req.IsLakeGeneva,
			IsHoliday:    isHoliday,
			Positions:    req.Positions,
			SeriesID:     seriesID,
			Notes:        req.Notes,
		})
	}

	// Step 4: DB write - Insert all events in one transaction
	if err := store.InsertEvents(ctx, events); err != nil {
		return nil, fmt.Errorf("failed to insert events: %w", err)
	}

	logger.Info("Events created",
		zap.String("name", req.Name),
		zap.Int("count", len(events)),
		zap.String("first_date", events[0].Date),
		zap.String("series_id", seriesID))

	return events, nil
}

func validateEventRequest(req CreateEventRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Each position may be listed once
	seen := make(map[string]bool, len(req.Positions))
	for _, p := range req.Positions {
		if seen[p.Name] {
			return fmt.Errorf("%w: position %q listed more than once", ErrInvalidInput, p.Name)
		}
		seen[p.Name] = true
	}

	// Catch unparseable times early
	if req.EndTime != "" {
		if _, err := assignment.DefaultHours(req.StartTime, req.EndTime); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	return nil
}

// expandRecurrence returns the occurrence dates of rule starting at start.
// Open-ended rules are capped at limit occurrences.
func expandRecurrence(rule string, start time.Time, limit int) ([]time.Time, error) {
	if limit <= 0 {
		limit = 1
	}

	// Accept both bare rules and RRULE: prefixed ones
	opt, err := rrule.StrToROption(strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid recurrence rule: %v", ErrInvalidInput, err)
	}
	opt.Dtstart = start
	// Cap open-ended and oversized series
	if opt.Count == 0 || opt.Count > limit {
		opt.Count = limit
	}

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid recurrence rule: %v", ErrInvalidInput, err)
	}

	dates := r.All()
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: recurrence rule produces no dates", ErrInvalidInput)
	}
	return dates, nil
}

type holidayRule struct {
	name string
	rule *rrule.RRule
}

// holidayMatcher tests dates against the configured holiday rules
type holidayMatcher struct {
	rules []holidayRule
}

func newHolidayMatcher(rules []config.HolidayRule) (*holidayMatcher, error) {
	m := &holidayMatcher{}
	// Parse each holiday rule once per call
	for i, hr := range rules {
		r, err := rrule.StrToRRule(hr.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for holiday %d: %w", i, err)
		}
		m.rules = append(m.rules, holidayRule{name: hr.Name, rule: r})
	}
	return m, nil
}

// match returns the name of the first holiday rule with an occurrence on date's calendar day
func (m *holidayMatcher) match(date time.Time) (string, bool) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	for _, hr := range m.rules {
		// Anchor at the start of the year so yearly rules have an occurrence in range
		hr.rule.DTStart(time.Date(day.Year(), 1, 1, 0, 0, 0, 0, time.UTC))
		next := hr.rule.After(day, true)
		if !next.IsZero() && next.Format(dateLayout) == day.Format(dateLayout) {
			return hr.name, true
		}
	}
	return "", false
}
