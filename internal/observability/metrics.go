// Package observability exposes the generator's prometheus metrics.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates the synthesis counters. A single instance is shared by
// the batch and HTTP entry points.
type Metrics struct {
	registry *prometheus.Registry

	AccountsGenerated prometheus.Counter
	AccountsFailed    prometheus.Counter
	RecordsGenerated  prometheus.Counter
	DatasetsGenerated prometheus.Counter
	GenerationSeconds prometheus.Histogram
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: reg,
		AccountsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teleforge_accounts_generated_total",
			Help: "Accounts whose usage series was synthesized successfully.",
		}),
		AccountsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teleforge_accounts_failed_total",
			Help: "Accounts skipped because of invalid lifecycle input.",
		}),
		RecordsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teleforge_usage_records_generated_total",
			Help: "Monthly usage records emitted.",
		}),
		DatasetsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teleforge_datasets_generated_total",
			Help: "Complete datasets synthesized.",
		}),
		GenerationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "teleforge_dataset_generation_seconds",
			Help:    "Wall time spent synthesizing one dataset.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}
	reg.MustRegister(
		m.AccountsGenerated,
		m.AccountsFailed,
		m.RecordsGenerated,
		m.DatasetsGenerated,
		m.GenerationSeconds,
	)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
