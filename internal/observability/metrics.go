package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds the Prometheus collectors for one digest run.
type Metrics struct {
	registry *prometheus.Registry

	FetchRequests    *prometheus.CounterVec   // labels: dataset, outcome={success,error}
	FetchDuration    *prometheus.HistogramVec // labels: dataset
	RowsFetched      *prometheus.CounterVec   // labels: dataset
	GeofilterDropped prometheus.Counter
	EmailsSent       *prometheus.CounterVec // labels: outcome={success,error}
	RunDuration      prometheus.Histogram
}

// NewMetrics creates all collectors on a private registry. The binary is
// cron-shaped, so the registry is pushed at the end of a run instead of being
// scraped from a /metrics endpoint.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "civic_digest",
			Name:      "fetch_requests_total",
			Help:      "Portal dataset fetches by dataset and outcome.",
		}, []string{"dataset", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "civic_digest",
			Name:      "fetch_duration_seconds",
			Help:      "Portal fetch duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"dataset"}),
		RowsFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "civic_digest",
			Name:      "rows_fetched_total",
			Help:      "Rows returned by the portal per dataset.",
		}, []string{"dataset"}),
		GeofilterDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "civic_digest",
			Name:      "geofilter_dropped_total",
			Help:      "Inspection records discarded by the client-side radius filter.",
		}),
		EmailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "civic_digest",
			Name:      "emails_sent_total",
			Help:      "Digest delivery attempts by outcome.",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "civic_digest",
			Name:      "run_duration_seconds",
			Help:      "End-to-end duration of one digest run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}

	reg.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.RowsFetched,
		m.GeofilterDropped,
		m.EmailsSent,
		m.RunDuration,
	)

	return m
}

// Push exports the run's metrics to a pushgateway. An empty URL is a no-op.
func (m *Metrics) Push(gatewayURL string) error {
	if gatewayURL == "" {
		return nil
	}
	if err := push.New(gatewayURL, "civic_digest").Gatherer(m.registry).Push(); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
