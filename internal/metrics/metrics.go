package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ArenaMetrics interface {
	RecordOperation(op, outcome string)
	RecordEvent(eventType string)
	Handler() http.Handler
}

var METRICS_NAMESPACE = "arena"

type arenaMetrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	events     *prometheus.CounterVec
}

// InitMetrics registers the arena collectors on registry. A nil registry
// gets a fresh one.
func InitMetrics(ctx context.Context, registry *prometheus.Registry) ArenaMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics := &arenaMetrics{registry: registry}

	metrics.operations = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "operations_total",
		Help: "Contract operations by outcome", Namespace: METRICS_NAMESPACE}, []string{"op", "outcome"})
	metrics.events = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "events_total",
		Help: "Committed game events (rounds resolved, battles won, ...)", Namespace: METRICS_NAMESPACE}, []string{"type"})

	registry.MustRegister(metrics.operations, metrics.events)
	return metrics
}

func (m *arenaMetrics) RecordOperation(op, outcome string) {
	m.operations.With(prometheus.Labels{"op": op, "outcome": outcome}).Inc()
}

func (m *arenaMetrics) RecordEvent(eventType string) {
	m.events.With(prometheus.Labels{"type": eventType}).Inc()
}

func (m *arenaMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
