package httpapi

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/metrics"
)

const requestTimeout = 30 * time.Second

// NewRouter wires the API routes, the ops endpoints and the middleware stack
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware order matters: request ID before logging, recover inside logging
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(recordMetrics)
	r.Use(middleware.Timeout(requestTimeout))

	// CORS only when origins are configured
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}

	// Ops endpoints
	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		// Proxies for the browser client
		r.Post("/distance", h.Distance)
		r.Post("/email", h.Email)

		r.Post("/pay/calculate", h.CalculatePay)

		r.Route("/assignments", func(r chi.Router) {
			r.Post("/", h.CreateAssignment)
			r.Delete("/{id}", h.DeleteAssignment)
			r.Patch("/{id}/payment", h.UpdatePayment)
		})

		r.Get("/workers/{id}/gigs", h.WorkerGigs)

		r.Route("/events/{id}", func(r chi.Router) {
			r.Get("/staffing", h.EventStaffing)
			r.Get("/eligible", h.EligibleWorkers)
		})
	})

	return r
}
