package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/model"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/payroll"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/metrics"
)

type distanceRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type distanceResponse struct {
	Miles decimal.Decimal `json:"miles"`
}

// Distance proxies a driving-distance lookup between two addresses
func (h *Handler) Distance(w http.ResponseWriter, r *http.Request) {
	if h.collab.Distance == nil {
		h.respondError(w, r, http.StatusServiceUnavailable, errors.New("distance lookup is not configured"))
		return
	}

	var req distanceRequest
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Origin) == "" || strings.TrimSpace(req.Destination) == "" {
		h.respondError(w, r, http.StatusBadRequest, errors.New("origin and destination are required"))
		return
	}

	// Upstream failures are the gateway's fault, not the caller's
	miles, err := h.collab.Distance.DistanceMiles(r.Context(), req.Origin, req.Destination)
	if err != nil {
		metrics.RecordDistanceLookup(metrics.OutcomeFailed)
		h.logger.Warn("Distance lookup failed", zap.Error(err))
		h.respondError(w, r, http.StatusBadGateway, err)
		return
	}
	metrics.RecordDistanceLookup(metrics.OutcomeOK)

	render.JSON(w, r, distanceResponse{Miles: miles})
}

type emailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type emailResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Email proxies a notification email
func (h *Handler) Email(w http.ResponseWriter, r *http.Request) {
	if h.collab.Notifier == nil {
		h.respondError(w, r, http.StatusServiceUnavailable, errors.New("email is not configured"))
		return
	}

	var req emailRequest
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.To) == "" || strings.TrimSpace(req.Subject) == "" {
		h.respondError(w, r, http.StatusBadRequest, errors.New("to and subject are required"))
		return
	}

	if err := h.collab.Notifier.SendEmail(r.Context(), req.To, req.Subject, req.Body); err != nil {
		metrics.RecordNotification(metrics.OutcomeFailed)
		h.logger.Warn("Email send failed", zap.String("to", req.To), zap.Error(err))
		render.Status(r, http.StatusBadGateway)
		// Report failure in the same shape as success
		render.JSON(w, r, emailResponse{Success: false, Error: err.Error()})
		return
	}
	metrics.RecordNotification(metrics.OutcomeOK)

	render.JSON(w, r, emailResponse{Success: true})
}

type calculatePayRequest struct {
	Position     string          `json:"position"`
	Hours        decimal.Decimal `json:"hours"`
	Miles        decimal.Decimal `json:"miles"`
	IsLakeGeneva bool            `json:"isLakeGeneva"`
	IsHoliday    bool            `json:"isHoliday"`
}

// CalculatePay previews a pay breakdown with the stored settings
func (h *Handler) CalculatePay(w http.ResponseWriter, r *http.Request) {
	var req calculatePayRequest
	if !h.decode(w, r, &req) {
		return
	}

	breakdown, err := services.PreviewPay(r.Context(), h.store, h.logger, payroll.PayInput{
		Position:     req.Position,
		Hours:        req.Hours,
		Miles:        req.Miles,
		IsLakeGeneva: req.IsLakeGeneva,
		IsHoliday:    req.IsHoliday,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	render.JSON(w, r, breakdown)
}

// CreateAssignment validates and persists an assignment. A refusal answers
// 409 with the full result, including the structured refusal.
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req services.AssignWorkerRequest
	if !h.decode(w, r, &req) {
		return
	}

	collab := h.collab
	// Notifications are opt-in per config
	if !h.notifyOnAssign {
		collab.Notifier = nil
	}

	result, err := services.AssignWorker(r.Context(), h.store, collab, h.logger, req)
	// Refusals carry the result so the client can show every failed check
	if errors.Is(err, services.ErrAssignmentRefused) && result != nil {
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, result)
		return
	}
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

// DeleteAssignment removes an assignment
func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	removed, err := services.UnassignWorker(r.Context(), h.store, h.logger, chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	render.JSON(w, r, removed)
}

type paymentRequest struct {
	Status model.PaymentStatus `json:"status"`
}

type paymentResponse struct {
	Updated int `json:"updated"`
}

// UpdatePayment marks an assignment paid or pending
func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !h.decode(w, r, &req) {
		return
	}

	updated, err := services.SetPaymentStatus(r.Context(), h.store, h.logger,
		[]string{chi.URLParam(r, "id")}, req.Status, h.now())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	render.JSON(w, r, paymentResponse{Updated: updated})
}

// WorkerGigs lists a worker's upcoming and past gigs. ?today=YYYY-MM-DD overrides the split date.
func (h *Handler) WorkerGigs(w http.ResponseWriter, r *http.Request) {
	// Default to the server's date
	today := r.URL.Query().Get("today")
	if today == "" {
		today = h.today()
	}

	gigs, err := services.ViewWorkerGigs(r.Context(), h.store, h.logger, chi.URLParam(r, "id"), today)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	render.JSON(w, r, gigs)
}

// EventStaffing reports filled and needed counts per position
func (h *Handler) EventStaffing(w http.ResponseWriter, r *http.Request) {
	staffing, err := services.ViewEventStaffing(r.Context(), h.store, h.logger, chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	render.JSON(w, r, staffing)
}

// EligibleWorkers lists workers who can fill ?position= at the event
func (h *Handler) EligibleWorkers(w http.ResponseWriter, r *http.Request) {
	eligible, err := services.EligibleWorkers(r.Context(), h.store, h.logger,
		chi.URLParam(r, "id"), r.URL.Query().Get("position"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	render.JSON(w, r, eligible)
}
