// Package metrics содержит коллекторы Prometheus портала
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор коллекторов. Все методы безопасны для nil-получателя,
// поэтому при выключенных метриках можно передавать nil.
type Metrics struct {
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	BackendRequestsTotal   *prometheus.CounterVec
	BackendRequestDuration *prometheus.HistogramVec
	BookingActionsTotal    *prometheus.CounterVec
	WizardTransitionsTotal *prometheus.CounterVec
	ActiveWizards          prometheus.Gauge
}

// New регистрирует коллекторы в reg с константной меткой service
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "portal_http_requests_total",
				Help:        "Total number of HTTP requests served",
				ConstLabels: constLabels,
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "portal_http_request_duration_seconds",
				Help:        "HTTP request duration in seconds",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: constLabels,
			},
			[]string{"method", "route"},
		),
		BackendRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "portal_backend_requests_total",
				Help:        "Total number of calls to the studio backend",
				ConstLabels: constLabels,
			},
			[]string{"endpoint", "outcome"},
		),
		BackendRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "portal_backend_request_duration_seconds",
				Help:        "Studio backend call duration in seconds",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: constLabels,
			},
			[]string{"endpoint"},
		),
		BookingActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "portal_booking_actions_total",
				Help:        "Booking create/cancel/reschedule attempts by outcome",
				ConstLabels: constLabels,
			},
			[]string{"action", "outcome"},
		),
		WizardTransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "portal_wizard_transitions_total",
				Help:        "Booking wizard transitions",
				ConstLabels: constLabels,
			},
			[]string{"transition"},
		),
		ActiveWizards: factory.NewGauge(
			prometheus.GaugeOpts{
				Name:        "portal_active_wizards",
				Help:        "Number of open booking wizards",
				ConstLabels: constLabels,
			},
		),
	}
}

func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveBackendCall(endpoint, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.BackendRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.BackendRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *Metrics) RecordBookingAction(action, outcome string) {
	if m == nil {
		return
	}
	m.BookingActionsTotal.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) RecordWizardTransition(transition string) {
	if m == nil {
		return
	}
	m.WizardTransitionsTotal.WithLabelValues(transition).Inc()
}

func (m *Metrics) SetActiveWizards(n int) {
	if m == nil {
		return
	}
	m.ActiveWizards.Set(float64(n))
}
