// Package metrics provides Prometheus metrics for assignments, pay and the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for collaborator calls
const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// Manager holds the application's collectors
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	assignmentsCreated  prometheus.Counter
	assignmentsMoved    prometheus.Counter
	assignmentsRefused  *prometheus.CounterVec
	payCalculations     *prometheus.CounterVec
	distanceLookups     *prometheus.CounterVec
	notifications       *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager

var customRegistry = prometheus.NewRegistry()

func init() {
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a manager and registers its collectors
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gigstaff",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	// Register against the configured registry
	auto := promauto.With(m.registry)

	m.assignmentsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "assignments_created_total",
		Help:      "Assignments persisted, including moves",
	})
	m.assignmentsMoved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "assignments_moved_total",
		Help:      "Assignments that replaced the worker's other position at the same event",
	})
	m.assignmentsRefused = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "assignments_refused_total",
		Help:      "Assignments refused by validation, by refusal kind",
	}, []string{"kind"})
	m.payCalculations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "pay_calculations_total",
		Help:      "Pay calculations, split by whether warnings were raised",
	}, []string{"degraded"})
	m.distanceLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "distance_lookups_total",
		Help:      "Distance lookups by outcome",
	}, []string{"outcome"})
	m.notifications = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "notifications_total",
		Help:      "Assignment notification emails by outcome",
	}, []string{"outcome"})
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method"})

	return m
}

func (m *Manager) RecordAssignmentCreated(moved bool) {
	m.assignmentsCreated.Inc()
	if moved {
		m.assignmentsMoved.Inc()
	}
}

func (m *Manager) RecordAssignmentRefused(kind string) {
	m.assignmentsRefused.WithLabelValues(kind).Inc()
}

func (m *Manager) RecordPayCalculation(degraded bool) {
	// Degraded means the calculator raised warnings
	label := "false"
	if degraded {
		label = "true"
	}
	m.payCalculations.WithLabelValues(label).Inc()
}

func (m *Manager) RecordDistanceLookup(outcome string) {
	m.distanceLookups.WithLabelValues(outcome).Inc()
}

func (m *Manager) RecordNotification(outcome string) {
	m.notifications.WithLabelValues(outcome).Inc()
}

func (m *Manager) RecordHTTPRequest(route, method, status string, seconds float64) {
	m.httpRequests.WithLabelValues(route, method, status).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(seconds)
}

// Package-level helpers record on the global manager

func RecordAssignmentCreated(moved bool) { globalManager.RecordAssignmentCreated(moved) }

func RecordAssignmentRefused(kind string) { globalManager.RecordAssignmentRefused(kind) }

func RecordPayCalculation(degraded bool) { globalManager.RecordPayCalculation(degraded) }

func RecordDistanceLookup(outcome string) { globalManager.RecordDistanceLookup(outcome) }

func RecordNotification(outcome string) { globalManager.RecordNotification(outcome) }

func RecordHTTPRequest(route, method, status string, seconds float64) {
	globalManager.RecordHTTPRequest(route, method, status, seconds)
}

// GetRegistry returns the registry the global manager records on
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
