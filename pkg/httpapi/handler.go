// Package httpapi serves the staffing operations over HTTP for the browser client.
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/db"
)

// Handler holds the dependencies shared by all routes
type Handler struct {
	store          db.Database
	collab         services.AssignCollaborators
	notifyOnAssign bool
	logger         *zap.Logger
	now            func() time.Time
}

// NewHandler creates a handler. Either collaborator may be nil; the matching
// proxy route then answers 503 and assignments skip that step. The notifier
// emails assigned workers only when notifyOnAssign is set.
func NewHandler(store db.Database, collab services.AssignCollaborators, notifyOnAssign bool, logger *zap.Logger) *Handler {
	return &Handler{
		store:          store,
		collab:         collab,
		notifyOnAssign: notifyOnAssign,
		logger:         logger,
		now:            time.Now,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, err error) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error()})
}

// respondServiceError maps service sentinel errors to status codes
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		h.respondError(w, r, http.StatusBadRequest, err)
	case errors.Is(err, db.ErrNotFound):
		h.respondError(w, r, http.StatusNotFound, err)
	case errors.Is(err, services.ErrAssignmentRefused):
		h.respondError(w, r, http.StatusConflict, err)
	default:
		// Hide internal details from the client
		h.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
		h.respondError(w, r, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		h.respondError(w, r, http.StatusBadRequest, errors.New("invalid JSON body"))
		return false
	}
	return true
}

func (h *Handler) today() string {
	return h.now().Format("2006-01-02")
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
