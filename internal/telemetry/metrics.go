package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service. Each instance owns
// its registry so independent servers (and tests) never collide on
// registration.
type Metrics struct {
	Registry *prometheus.Registry

	RateRequestsTotal   *prometheus.CounterVec
	RateRequestDuration *prometheus.HistogramVec
	CarrierErrors       *prometheus.CounterVec
}

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		RateRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rateshop_rate_requests_total",
				Help: "Total number of rate requests by carrier selection and status",
			},
			[]string{"carrier", "status"},
		),
		RateRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rateshop_rate_request_duration_seconds",
				Help:    "Rate request duration in seconds by carrier selection",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"carrier"},
		),
		CarrierErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rateshop_carrier_errors_total",
				Help: "Total carrier errors by carrier selection and error kind",
			},
			[]string{"carrier", "kind"},
		),
	}
}

// RecordRequest records a rate request metric.
func (m *Metrics) RecordRequest(carrier, status string, duration float64) {
	m.RateRequestsTotal.WithLabelValues(carrier, status).Inc()
	m.RateRequestDuration.WithLabelValues(carrier).Observe(duration)
}

// RecordError records a carrier error metric.
func (m *Metrics) RecordError(carrier, kind string) {
	m.CarrierErrors.WithLabelValues(carrier, kind).Inc()
}
