// Package metrics exposes operational counters for the planner service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service counters backed by a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	// Mutations counts selection-store mutations by operation.
	Mutations *prometheus.CounterVec
	// Exports counts rendered exports by format.
	Exports *prometheus.CounterVec
	// StorageWriteFailures counts failed plan persistence attempts.
	StorageWriteFailures prometheus.Counter
}

// New creates the metrics set on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studyplanner",
			Name:      "plan_mutations_total",
			Help:      "Selection store mutations by operation.",
		}, []string{"operation"}),
		Exports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studyplanner",
			Name:      "exports_total",
			Help:      "Rendered plan exports by format.",
		}, []string{"format"}),
		StorageWriteFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "studyplanner",
			Name:      "storage_write_failures_total",
			Help:      "Failed plan persistence attempts.",
		}),
	}
}

// Handler returns the scrape endpoint handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
