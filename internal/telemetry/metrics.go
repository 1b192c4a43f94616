package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service. Each instance
// carries its own registry so servers can be constructed repeatedly,
// in tests in particular, without duplicate registration panics.
type Metrics struct {
	Registry       *prometheus.Registry
	QuotesTotal    *prometheus.CounterVec
	QuoteDuration  *prometheus.HistogramVec
	CarrierErrors  *prometheus.CounterVec
	OffersReturned prometheus.Histogram
}

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		QuotesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jadlog_quotes_total",
				Help: "Total number of quote attempts by method and outcome",
			},
			[]string{"method", "status"},
		),
		QuoteDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jadlog_quote_duration_seconds",
				Help:    "Quote round-trip duration in seconds by method",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		CarrierErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jadlog_carrier_errors_total",
				Help: "Total carrier API errors by error code",
			},
			[]string{"code"},
		),
		OffersReturned: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "jadlog_offers_per_request",
				Help:    "Number of offers returned per quote request",
				Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 7},
			},
		),
	}
}

// RecordQuote records a quote attempt metric.
func (m *Metrics) RecordQuote(method, status string, duration float64) {
	m.QuotesTotal.WithLabelValues(method, status).Inc()
	m.QuoteDuration.WithLabelValues(method).Observe(duration)
}

// RecordCarrierError records a carrier business-error metric.
func (m *Metrics) RecordCarrierError(code string) {
	m.CarrierErrors.WithLabelValues(code).Inc()
}

// RecordOffers records how many offers a request produced.
func (m *Metrics) RecordOffers(count int) {
	m.OffersReturned.Observe(float64(count))
}
