package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RecordsOnCustomRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewManager(WithPrometheusRegistry(registry), WithNamespace("test"))

	m.RecordAssignmentCreated(false)
	m.RecordAssignmentCreated(true)
	m.RecordAssignmentRefused("schedule_conflict")
	m.RecordPayCalculation(true)
	m.RecordDistanceLookup(OutcomeFailed)
	m.RecordNotification(OutcomeOK)
	m.RecordHTTPRequest("/api/assignments", "POST", "201", 0.02)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.assignmentsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assignmentsMoved))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assignmentsRefused.WithLabelValues("schedule_conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.payCalculations.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.distanceLookups.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues(OutcomeOK)))

	expected := `
# HELP test_http_requests_total HTTP requests by route, method and status code
# TYPE test_http_requests_total counter
test_http_requests_total{method="POST",route="/api/assignments",status="201"} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "test_http_requests_total"))
}

func TestGlobalHelpers(t *testing.T) {
	before := testutil.ToFloat64(globalManager.notifications.WithLabelValues(OutcomeSkipped))
	RecordNotification(OutcomeSkipped)
	assert.Equal(t, before+1, testutil.ToFloat64(globalManager.notifications.WithLabelValues(OutcomeSkipped)))

	families, err := GetRegistry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
