package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/clients/sheetsclient"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/payroll"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

// Fixture IDs; events and assignments are keyed by UUID in storage
const (
	evGala    = "6a0c2f1e-3b4d-4c5e-8f70-1a2b3c4d5e01"
	evLate    = "6a0c2f1e-3b4d-4c5e-8f70-1a2b3c4d5e02"
	evBrunch  = "6a0c2f1e-3b4d-4c5e-8f70-1a2b3c4d5e03"
	evOld     = "6a0c2f1e-3b4d-4c5e-8f70-1a2b3c4d5e04"
	evOlder   = "6a0c2f1e-3b4d-4c5e-8f70-1a2b3c4d5e05"
	evGone    = "6a0c2f1e-3b4d-4c5e-8f70-1a2b3c4d5e06"
	evMissing = "6a0c2f1e-3b4d-4c5e-8f70-1a2b3c4d5eff"
	evSocial  = "6a0c2f1e-3b4d-4c5e-8f70-1a2b3c4d5e07"

	asg1       = "c81d4e2f-5a6b-4c7d-9e8f-0a1b2c3d4e01"
	asg2       = "c81d4e2f-5a6b-4c7d-9e8f-0a1b2c3d4e02"
	asg3       = "c81d4e2f-5a6b-4c7d-9e8f-0a1b2c3d4e03"
	asgHost    = "c81d4e2f-5a6b-4c7d-9e8f-0a1b2c3d4e04"
	asgBrunch  = "c81d4e2f-5a6b-4c7d-9e8f-0a1b2c3d4e05"
	asgGala    = "c81d4e2f-5a6b-4c7d-9e8f-0a1b2c3d4e06"
	asgOld     = "c81d4e2f-5a6b-4c7d-9e8f-0a1b2c3d4e07"
	asgOlder   = "c81d4e2f-5a6b-4c7d-9e8f-0a1b2c3d4e08"
	asgOrphan  = "c81d4e2f-5a6b-4c7d-9e8f-0a1b2c3d4e09"
	asgPat     = "c81d4e2f-5a6b-4c7d-9e8f-0a1b2c3d4e0a"
	asgMissing = "c81d4e2f-5a6b-4c7d-9e8f-0a1b2c3d4eff"
)

// mockStore is an in-memory db.Database
type mockStore struct {
	mu          sync.Mutex
	events      []model.Event
	workers     []model.Worker
	assignments []model.Assignment
	settings    payroll.PaySettings

	getEventsErr      error
	getAssignmentsErr error
	insertErr         error
	saveSettingsErr   error

	inserted   []model.Assignment
	replaced   []string
	savedCount int
}

var _ db.Database = (*mockStore)(nil)

func (m *mockStore) GetEvents(ctx context.Context) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getEventsErr != nil {
		return nil, m.getEventsErr
	}
	return append([]model.Event(nil), m.events...), nil
}

func (m *mockStore) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, fmt.Errorf("event %s: %w", id, db.ErrNotFound)
}

func (m *mockStore) InsertEvents(ctx context.Context, events []model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.events = append(m.events, events...)
	return nil
}

func (m *mockStore) GetWorkers(ctx context.Context) ([]model.Worker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Worker(nil), m.workers...), nil
}

func (m *mockStore) GetWorker(ctx context.Context, id string) (*model.Worker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.workers {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, fmt.Errorf("worker %s: %w", id, db.ErrNotFound)
}

func (m *mockStore) UpsertWorkers(ctx context.Context, workers []model.Worker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, w := range workers {
		replaced := false
		for i := range m.workers {
			if m.workers[i].ID == w.ID {
				m.workers[i] = w
				replaced = true
			}
		}
		if !replaced {
			m.workers = append(m.workers, w)
		}
	}
	return nil
}

func (m *mockStore) GetAssignments(ctx context.Context) ([]model.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getAssignmentsErr != nil {
		return nil, m.getAssignmentsErr
	}
	return append([]model.Assignment(nil), m.assignments...), nil
}

func (m *mockStore) GetAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assignments {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("assignment %s: %w", id, db.ErrNotFound)
}

func (m *mockStore) InsertAssignment(ctx context.Context, a *model.Assignment, replaceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	if replaceID != "" {
		if !m.removeAssignment(replaceID) {
			return fmt.Errorf("replaced assignment %s: %w", replaceID, db.ErrNotFound)
		}
		m.replaced = append(m.replaced, replaceID)
	}
	m.assignments = append(m.assignments, *a)
	m.inserted = append(m.inserted, *a)
	return nil
}

func (m *mockStore) DeleteAssignment(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.removeAssignment(id) {
		return fmt.Errorf("assignment %s: %w", id, db.ErrNotFound)
	}
	return nil
}

func (m *mockStore) removeAssignment(id string) bool {
	for i, a := range m.assignments {
		if a.ID == id {
			m.assignments = append(m.assignments[:i], m.assignments[i+1:]...)
			return true
		}
	}
	return false
}

func (m *mockStore) UpdateAssignmentPay(ctx context.Context, a *model.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.assignments {
		if m.assignments[i].ID == a.ID {
			m.assignments[i] = *a
			return nil
		}
	}
	return fmt.Errorf("assignment %s: %w", a.ID, db.ErrNotFound)
}

func (m *mockStore) SetPaymentStatus(ctx context.Context, ids []string, status model.PaymentStatus, paidAt *time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	updated := 0
	for i := range m.assignments {
		if wanted[m.assignments[i].ID] {
			m.assignments[i].PaymentStatus = status
			m.assignments[i].PaidAt = paidAt
			updated++
		}
	}
	return updated, nil
}

func (m *mockStore) GetPaySettings(ctx context.Context) (payroll.PaySettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, nil
}

func (m *mockStore) SavePaySettings(ctx context.Context, settings payroll.PaySettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveSettingsErr != nil {
		return m.saveSettingsErr
	}
	m.settings = settings
	m.savedCount++
	return nil
}

// mockDistance returns fixed miles or an error
type mockDistance struct {
	miles decimal.Decimal
	err   error
	calls int
}

func (m *mockDistance) DistanceMiles(ctx context.Context, origin, destination string) (decimal.Decimal, error) {
	m.calls++
	if m.err != nil {
		return decimal.Zero, m.err
	}
	return m.miles, nil
}

type sentEmail struct {
	to, subject, body string
}

// mockNotifier records sent emails or fails
type mockNotifier struct {
	sent []sentEmail
	err  error
}

func (m *mockNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{to, subject, body})
	return nil
}

// mockRoster returns a fixed roster
type mockRoster struct {
	workers []model.Worker
	err     error
}

func (m *mockRoster) ListWorkers(spreadsheetID, tab string) ([]model.Worker, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]model.Worker(nil), m.workers...), nil
}

// mockPublisher records published payroll
type mockPublisher struct {
	title string
	rows  []sheetsclient.PayrollRow
	err   error
}

func (m *mockPublisher) PublishPayroll(spreadsheetID, title string, rows []sheetsclient.PayrollRow) error {
	if m.err != nil {
		return m.err
	}
	m.title = title
	m.rows = rows
	return nil
}

var errBoom = errors.New("boom")

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func testPaySettings() payroll.PaySettings {
	return payroll.PaySettings{
		Rates: payroll.PayRateTable{
			"Dealer":           d("20"),
			"Blackjack Dealer": d("22"),
			"Host":             d("18"),
			"Bartender":        d("16"),
		},
		Tiers: []payroll.TravelTier{
			{MinMiles: d("0"), MaxMiles: d("19"), PayAmount: d("0")},
			{MinMiles: d("20"), MaxMiles: d("40"), PayAmount: d("10")},
			{MinMiles: d("41"), MaxMiles: d("80"), PayAmount: d("25")},
		},
		Bonuses: payroll.BonusTable{
			payroll.BonusLakeGeneva:        d("15"),
			payroll.BonusHolidayMultiplier: d("1.5"),
		},
	}
}

// newTestStore returns a store with two same-day events, one the next day, and three workers
func newTestStore() *mockStore {
	return &mockStore{
		events: []model.Event{
			{
				ID: evGala, Name: "Casino Gala", Date: "2026-12-31", StartTime: "18:00", EndTime: "23:00",
				Venue: "Grand Geneva Resort, Lake Geneva, WI", IsLakeGeneva: true, IsHoliday: true,
				Positions: []model.PositionRequirement{{Name: "Dealer", CountNeeded: 2}, {Name: "Host", CountNeeded: 1}},
			},
			{
				ID: evLate, Name: "Late Night Poker", Date: "2026-12-31", StartTime: "21:00", EndTime: "23:30",
				Venue:     "Chicago, IL",
				Positions: []model.PositionRequirement{{Name: "Dealer", CountNeeded: 1}},
			},
			{
				ID: evBrunch, Name: "New Year Brunch", Date: "2027-01-01", StartTime: "10:00",
				Venue:     "Evanston, IL",
				Positions: []model.PositionRequirement{{Name: "Bartender", CountNeeded: 1}},
			},
		},
		workers: []model.Worker{
			{ID: "w-pat", FirstName: "Pat", LastName: "Lee", Email: "pat@example.com", Address: "Chicago, IL",
				Skills: []string{"Blackjack Dealer"}, Status: model.WorkerActive},
			{ID: "w-sam", FirstName: "Sam", LastName: "Ortiz", Email: "sam@example.com", Address: "Evanston, IL",
				Skills: []string{"Bartender", "Host"}, Status: model.WorkerActive},
			{ID: "w-kim", FirstName: "Kim", LastName: "Park", Email: "kim@example.com",
				Skills: []string{"Poker Dealer"}, Status: model.WorkerInactive},
		},
		settings: testPaySettings(),
	}
}
