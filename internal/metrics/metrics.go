// Package metrics counts pipeline events with Prometheus collectors.
// Each Metrics owns its registry so tests and multiple servers stay isolated.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

// Ensure Metrics implements the interface.
var _ driven.Metrics = (*Metrics)(nil)

const namespace = "kb"

// Metrics implements driven.Metrics with labelled counters.
type Metrics struct {
	registry   *prometheus.Registry
	degraded   *prometheus.CounterVec
	modelCalls *prometheus.CounterVec
	extracted  *prometheus.CounterVec
	published  *prometheus.CounterVec
}

// New creates the counters and registers them, plus the Go runtime
// collector, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_total",
			Help:      "Model failures the pipeline recovered from, by stage.",
		}, []string{"stage"}),
		modelCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_calls_total",
			Help:      "Language model requests, by provider and outcome.",
		}, []string{"provider", "outcome"}),
		extracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extracted_total",
			Help:      "Successful extractions, by content kind.",
		}, []string{"kind"}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "published_total",
			Help:      "Publish attempts, by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.degraded,
		m.modelCalls,
		m.extracted,
		m.published,
		collectors.NewGoCollector(),
	)
	return m
}

// Degraded counts a recovered model failure.
func (m *Metrics) Degraded(stage string) {
	m.degraded.WithLabelValues(stage).Inc()
}

// ModelCall counts one model request.
func (m *Metrics) ModelCall(provider, outcome string) {
	m.modelCalls.WithLabelValues(provider, outcome).Inc()
}

// Extracted counts one extraction.
func (m *Metrics) Extracted(kind string) {
	m.extracted.WithLabelValues(kind).Inc()
}

// Published counts one publish attempt.
func (m *Metrics) Published(outcome string) {
	m.published.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
