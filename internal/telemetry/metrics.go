package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup entry points and outcomes used as metric labels.
const (
	EntryOrderName = "order_name"
	EntryEmail     = "email"

	OutcomeFound         = "found"
	OutcomeNotFound      = "not_found"
	OutcomeInvalidInput  = "invalid_input"
	OutcomeProviderError = "provider_error"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	LookupsTotal       *prometheus.CounterVec
	LookupDuration     *prometheus.HistogramVec
	CarrierResolutions *prometheus.CounterVec
	ProviderErrors     *prometheus.CounterVec
}

// NewMetrics creates the service metrics and registers them on reg. Passing a
// fresh prometheus.NewRegistry() keeps tests independent of the global
// registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ordertrack_lookups_total",
				Help: "Total number of order lookups by entry point and outcome",
			},
			[]string{"entry", "outcome"},
		),
		LookupDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ordertrack_lookup_duration_seconds",
				Help:    "Order lookup duration in seconds by entry point",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"entry"},
		),
		CarrierResolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ordertrack_carrier_resolutions_total",
				Help: "Resolved tracking entries by carrier and how the carrier was identified",
			},
			[]string{"carrier", "source"},
		),
		ProviderErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ordertrack_provider_errors_total",
				Help: "Total order provider errors by provider and error code",
			},
			[]string{"provider", "code"},
		),
	}
}

// RecordLookup records a lookup outcome and its duration.
func (m *Metrics) RecordLookup(entry, outcome string, duration float64) {
	m.LookupsTotal.WithLabelValues(entry, outcome).Inc()
	m.LookupDuration.WithLabelValues(entry).Observe(duration)
}

// RecordResolution records how a tracking entry's carrier was resolved.
func (m *Metrics) RecordResolution(carrier, source string) {
	m.CarrierResolutions.WithLabelValues(carrier, source).Inc()
}

// RecordProviderError records a provider error metric.
func (m *Metrics) RecordProviderError(provider, code string) {
	m.ProviderErrors.WithLabelValues(provider, code).Inc()
}
