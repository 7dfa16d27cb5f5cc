package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes, used as the "outcome" label.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// LookupMetrics holds Prometheus metrics for address lookups.
type LookupMetrics struct {
	Lookups        *prometheus.CounterVec
	LookupDuration *prometheus.HistogramVec
	GeocoderErrors *prometheus.CounterVec
}

// NewLookupMetrics creates lookup metrics and registers them with reg.
// A nil reg registers with the default Prometheus registry.
func NewLookupMetrics(namespace string, reg prometheus.Registerer) *LookupMetrics {
	if namespace == "" {
		namespace = "brochure"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	subsystem := "lookup"

	return &LookupMetrics{
		Lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "total",
				Help:      "Total address lookups by outcome",
			},
			[]string{"outcome"}, // found, not_found, invalid, error
		),
		LookupDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "duration_seconds",
				Help:      "Address lookup duration in seconds, geocoder call included",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"outcome"},
		),
		GeocoderErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "geocoder_errors_total",
				Help:      "Geocoder failures by kind",
			},
			[]string{"kind"}, // transport, response_format, other
		),
	}
}

// ObserveLookup records one finished lookup. Safe on a nil receiver.
func (m *LookupMetrics) ObserveLookup(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(outcome).Inc()
	m.LookupDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveGeocoderError counts a geocoder failure. Safe on a nil receiver.
func (m *LookupMetrics) ObserveGeocoderError(kind string) {
	if m == nil {
		return
	}
	m.GeocoderErrors.WithLabelValues(kind).Inc()
}
