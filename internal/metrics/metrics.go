// Package metrics exposes prometheus counters for cube activity.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Solve outcomes used as the "outcome" label.
const (
	OutcomeSolved   = "solved"
	OutcomeRejected = "rejected" // composition or solver failure, rescan required
	OutcomeFailed   = "failed"   // anything else
	OutcomeNoOracle = "no_oracle"
)

type Metrics struct {
	registry *prometheus.Registry

	MovesApplied     prometheus.Counter
	FacesScanned     prometheus.Counter
	Solves           *prometheus.CounterVec
	Errors           *prometheus.CounterVec
	ConnectedClients prometheus.Gauge
	OracleLatency    prometheus.Histogram
}

// New creates the metrics on a private registry, so several servers (or
// tests) can coexist in one process.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		MovesApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_applied_total",
			Help:      "Total number of face turns applied",
		}),
		FacesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "faces_scanned_total",
			Help:      "Total number of accepted face scans",
		}),
		Solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Solver calls by outcome",
		}, []string{"outcome"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Rejected requests by kind",
		}, []string{"kind"}),
		ConnectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_clients",
			Help:      "Number of connected websocket clients",
		}),
		OracleLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "oracle_latency_seconds",
			Help:      "Solver call latency",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
	}

	m.registry.MustRegister(
		m.MovesApplied,
		m.FacesScanned,
		m.Solves,
		m.Errors,
		m.ConnectedClients,
		m.OracleLatency,
		collectors.NewGoCollector(),
	)

	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveSolve(outcome string, d time.Duration) {
	m.Solves.WithLabelValues(outcome).Inc()
	if outcome != OutcomeNoOracle {
		m.OracleLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) IncError(kind string) {
	m.Errors.WithLabelValues(kind).Inc()
}
