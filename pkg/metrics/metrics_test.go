package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	m := New("portal-test", prometheus.NewRegistry())

	m.RecordHTTPRequest("POST", "/api/v1/wizards", "201", 20*time.Millisecond)
	m.RecordHTTPRequest("POST", "/api/v1/wizards", "201", 10*time.Millisecond)
	m.RecordHTTPRequest("POST", "/api/v1/wizards", "422", 5*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/wizards", "201")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/wizards", "422")))
}

func TestBookingActionsAndBackendCalls(t *testing.T) {
	m := New("portal-test", prometheus.NewRegistry())

	m.RecordBookingAction("create", "succeeded")
	m.RecordBookingAction("cancel", "denied")
	m.ObserveBackendCall("create_booking", "validation_failed", time.Second)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingActionsTotal.WithLabelValues("create", "succeeded")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingActionsTotal.WithLabelValues("cancel", "denied")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BackendRequestsTotal.WithLabelValues("create_booking", "validation_failed")))
}

func TestWizardGauges(t *testing.T) {
	m := New("portal-test", prometheus.NewRegistry())

	m.SetActiveWizards(3)
	m.RecordWizardTransition("confirm_succeeded")

	assert.Equal(t, float64(3), testutil.ToFloat64(m.ActiveWizards))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.WizardTransitionsTotal.WithLabelValues("confirm_succeeded")))
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/health", "200", time.Millisecond)
		m.ObserveBackendCall("list_slots", "ok", time.Millisecond)
		m.RecordBookingAction("create", "failed")
		m.RecordWizardTransition("back")
		m.SetActiveWizards(1)
	})
}
