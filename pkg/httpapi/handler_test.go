package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/payroll"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

// mockStore is a minimal in-memory db.Database
type mockStore struct {
	events      []model.Event
	workers     []model.Worker
	assignments []model.Assignment
	settings    payroll.PaySettings
	failReads   bool
}

func (m *mockStore) GetEvents(ctx context.Context) ([]model.Event, error) {
	if m.failReads {
		return nil, errors.New("connection refused")
	}
	return m.events, nil
}

func (m *mockStore) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	for _, e := range m.events {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, fmt.Errorf("event %s: %w", id, db.ErrNotFound)
}

func (m *mockStore) InsertEvents(ctx context.Context, events []model.Event) error {
	m.events = append(m.events, events...)
	return nil
}

func (m *mockStore) GetWorkers(ctx context.Context) ([]model.Worker, error) {
	return m.workers, nil
}

func (m *mockStore) GetWorker(ctx context.Context, id string) (*model.Worker, error) {
	for _, w := range m.workers {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, fmt.Errorf("worker %s: %w", id, db.ErrNotFound)
}

func (m *mockStore) UpsertWorkers(ctx context.Context, workers []model.Worker) error {
	m.workers = append(m.workers, workers...)
	return nil
}

func (m *mockStore) GetAssignments(ctx context.Context) ([]model.Assignment, error) {
	return m.assignments, nil
}

func (m *mockStore) GetAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	for _, a := range m.assignments {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("assignment %s: %w", id, db.ErrNotFound)
}

func (m *mockStore) InsertAssignment(ctx context.Context, a *model.Assignment, replaceID string) error {
	if replaceID != "" {
		if err := m.DeleteAssignment(ctx, replaceID); err != nil {
			return err
		}
	}
	m.assignments = append(m.assignments, *a)
	return nil
}

func (m *mockStore) DeleteAssignment(ctx context.Context, id string) error {
	for i, a := range m.assignments {
		if a.ID == id {
			m.assignments = append(m.assignments[:i], m.assignments[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("assignment %s: %w", id, db.ErrNotFound)
}

func (m *mockStore) UpdateAssignmentPay(ctx context.Context, a *model.Assignment) error {
	return nil
}

func (m *mockStore) SetPaymentStatus(ctx context.Context, ids []string, status model.PaymentStatus, paidAt *time.Time) (int, error) {
	updated := 0
	for i := range m.assignments {
		for _, id := range ids {
			if m.assignments[i].ID == id {
				m.assignments[i].PaymentStatus = status
				m.assignments[i].PaidAt = paidAt
				updated++
			}
		}
	}
	return updated, nil
}

func (m *mockStore) GetPaySettings(ctx context.Context) (payroll.PaySettings, error) {
	return m.settings, nil
}

func (m *mockStore) SavePaySettings(ctx context.Context, settings payroll.PaySettings) error {
	m.settings = settings
	return nil
}

type mockDistance struct {
	miles decimal.Decimal
	err   error
}

func (m *mockDistance) DistanceMiles(ctx context.Context, origin, destination string) (decimal.Decimal, error) {
	return m.miles, m.err
}

type mockNotifier struct {
	err  error
	sent int
}

func (m *mockNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent++
	return nil
}

func newTestStore() *mockStore {
	return &mockStore{
		events: []model.Event{
			{ID: "7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d01", Name: "Casino Gala", Date: "2026-12-31", StartTime: "18:00", EndTime: "23:00",
				Venue: "Lake Geneva, WI", IsLakeGeneva: true,
				Positions: []model.PositionRequirement{{Name: "Dealer", CountNeeded: 1}}},
			{ID: "7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d02", Name: "Poker Night", Date: "2026-12-31", StartTime: "20:00", EndTime: "22:00",
				Positions: []model.PositionRequirement{{Name: "Dealer", CountNeeded: 2}}},
		},
		workers: []model.Worker{
			{ID: "w-1", FirstName: "Pat", LastName: "Lee", Email: "pat@example.com",
				Skills: []string{"Poker Dealer"}, Status: model.WorkerActive},
			{ID: "w-2", FirstName: "Sam", LastName: "Ortiz", Email: "sam@example.com",
				Skills: []string{"Blackjack"}, Status: model.WorkerActive},
		},
		settings: payroll.PaySettings{
			Rates: payroll.PayRateTable{"Dealer": decimal.NewFromInt(20)},
			Tiers: []payroll.TravelTier{
				{MinMiles: decimal.Zero, MaxMiles: decimal.NewFromInt(19), PayAmount: decimal.Zero},
				{MinMiles: decimal.NewFromInt(20), MaxMiles: decimal.NewFromInt(40), PayAmount: decimal.NewFromInt(10)},
			},
			Bonuses: payroll.BonusTable{},
		},
	}
}

func newTestServer(t *testing.T, store *mockStore, collab services.AssignCollaborators) *httptest.Server {
	t.Helper()
	h := NewHandler(store, collab, true, zap.NewNop())
	h.now = func() time.Time { return time.Date(2026, 12, 1, 12, 0, 0, 0, time.UTC) }
	server := httptest.NewServer(NewRouter(h, []string{"http://localhost:5173"}))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp, decoded
}

func TestCreateAssignment(t *testing.T) {
	store := newTestStore()
	server := newTestServer(t, store, services.AssignCollaborators{Distance: &mockDistance{miles: decimal.NewFromInt(25)}})

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/assignments",
		`{"eventId":"7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d01","workerId":"w-1","position":"Dealer"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	assignment := body["assignment"].(map[string]any)
	assert.Equal(t, "125", assignment["totalPay"], "5h x 20 + 10 travel + 15 Lake Geneva")
	assert.Equal(t, "lookup", body["milesSource"])
	require.Len(t, store.assignments, 1)
}

func TestCreateAssignment_ConflictIs409(t *testing.T) {
	store := newTestStore()
	store.assignments = []model.Assignment{{ID: "e2a4c6d8-0b1c-4d2e-9f3a-5b6c7d8e9f01", EventID: "7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d01", WorkerID: "w-1", Position: "Dealer"}}
	server := newTestServer(t, store, services.AssignCollaborators{})

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/assignments",
		`{"eventId":"7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d02","workerId":"w-1","position":"Dealer","miles":"0"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	refusal := body["refusal"].(map[string]any)
	assert.Equal(t, "schedule_conflict", refusal["kind"])
	conflict := refusal["conflict"].(map[string]any)
	assert.Equal(t, "Casino Gala", conflict["eventName"])
	assert.Len(t, store.assignments, 1)
}

func TestCreateAssignment_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"bad json", `{"eventId":`, http.StatusBadRequest},
		{"missing position", `{"eventId":"7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d01","workerId":"w-1"}`, http.StatusBadRequest},
		{"unknown worker", `{"eventId":"7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d01","workerId":"w-9","position":"Dealer"}`, http.StatusNotFound},
		{"unknown event", `{"eventId":"7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d09","workerId":"w-1","position":"Dealer"}`, http.StatusNotFound},
		{"filled", `{"eventId":"7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d01","workerId":"w-2","position":"Dealer"}`, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			store.assignments = []model.Assignment{{ID: "e2a4c6d8-0b1c-4d2e-9f3a-5b6c7d8e9f01", EventID: "7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d01", WorkerID: "w-1", Position: "Dealer"}}
			server := newTestServer(t, store, services.AssignCollaborators{})

			resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/assignments", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestStoreFailureIs500(t *testing.T) {
	store := newTestStore()
	store.failReads = true
	server := newTestServer(t, store, services.AssignCollaborators{})

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/events/7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d01/eligible?position=Dealer", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal error", body["error"])
}

func TestDeleteAndPayAssignment(t *testing.T) {
	store := newTestStore()
	store.assignments = []model.Assignment{
		{ID: "e2a4c6d8-0b1c-4d2e-9f3a-5b6c7d8e9f01", EventID: "7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d01", WorkerID: "w-1", Position: "Dealer", PaymentStatus: model.PaymentPending},
		{ID: "e2a4c6d8-0b1c-4d2e-9f3a-5b6c7d8e9f02", EventID: "7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d02", WorkerID: "w-2", Position: "Dealer", PaymentStatus: model.PaymentPending},
	}
	server := newTestServer(t, store, services.AssignCollaborators{})

	resp, body := doJSON(t, http.MethodPatch, server.URL+"/api/assignments/e2a4c6d8-0b1c-4d2e-9f3a-5b6c7d8e9f02/payment", `{"status":"paid"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["updated"])
	assert.Equal(t, model.PaymentPaid, store.assignments[1].PaymentStatus)

	resp, _ = doJSON(t, http.MethodPatch, server.URL+"/api/assignments/e2a4c6d8-0b1c-4d2e-9f3a-5b6c7d8e9f02/payment", `{"status":"refunded"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/api/assignments/e2a4c6d8-0b1c-4d2e-9f3a-5b6c7d8e9f01", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, store.assignments, 1)

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/api/assignments/e2a4c6d8-0b1c-4d2e-9f3a-5b6c7d8e9f01", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, http.MethodDelete, server.URL+"/api/assignments/not-an-id", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "invalid assignment ID")

	resp, _ = doJSON(t, http.MethodPatch, server.URL+"/api/assignments/not-an-id/payment", `{"status":"paid"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/events/not-an-id/staffing", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalculatePay(t *testing.T) {
	server := newTestServer(t, newTestStore(), services.AssignCollaborators{})

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/pay/calculate",
		`{"position":"Dealer","hours":4,"miles":30,"isLakeGeneva":false,"isHoliday":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "80", body["basePay"])
	assert.Equal(t, "10", body["travelPay"])
	assert.Equal(t, "135", body["totalPay"])
	assert.Nil(t, body["warnings"])
}

func TestViews(t *testing.T) {
	store := newTestStore()
	store.assignments = []model.Assignment{{ID: "e2a4c6d8-0b1c-4d2e-9f3a-5b6c7d8e9f01", EventID: "7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d01", WorkerID: "w-1", Position: "Dealer"}}
	server := newTestServer(t, store, services.AssignCollaborators{})

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/workers/w-1/gigs", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["upcoming"], 1)
	assert.Len(t, body["past"], 0)

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/workers/w-1/gigs?today=2027-01-01", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["past"], 1)

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/events/7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d01/staffing", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["fullyStaffed"])

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/events/7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d02/eligible?position=Dealer", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/events/7d3f0c2a-1e4b-4a6c-8d9e-2f3a4b5c6d02/eligible", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProxies(t *testing.T) {
	notifier := &mockNotifier{}
	server := newTestServer(t, newTestStore(), services.AssignCollaborators{
		Distance: &mockDistance{miles: decimal.NewFromInt(42)},
		Notifier: notifier,
	})

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/distance",
		`{"origin":"Chicago, IL","destination":"Lake Geneva, WI"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "42", body["miles"])

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/distance", `{"origin":"Chicago, IL"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, server.URL+"/api/email",
		`{"to":"pat@example.com","subject":"Booked","body":"See you there"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1, notifier.sent)
}

func TestProxies_Failures(t *testing.T) {
	server := newTestServer(t, newTestStore(), services.AssignCollaborators{
		Distance: &mockDistance{err: errors.New("ZERO_RESULTS")},
		Notifier: &mockNotifier{err: errors.New("quota exceeded")},
	})

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/distance", `{"origin":"a","destination":"b"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/email", `{"to":"a@example.com","subject":"s"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	unconfigured := newTestServer(t, newTestStore(), services.AssignCollaborators{})
	resp, _ = doJSON(t, http.MethodPost, unconfigured.URL+"/api/distance", `{"origin":"a","destination":"b"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestOpsEndpoints(t *testing.T) {
	server := newTestServer(t, newTestStore(), services.AssignCollaborators{})

	resp, body := doJSON(t, http.MethodGet, server.URL+"/healthz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "gigstaff_http_requests_total")
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t, newTestStore(), services.AssignCollaborators{})

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/api/assignments", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}
