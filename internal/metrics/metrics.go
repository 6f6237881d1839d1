// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "futamigo"

// Recompute outcomes.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics groups every collector of the service on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	Recomputes          *prometheus.CounterVec
	RecomputeDuration   prometheus.Histogram
	LeaderboardSize     prometheus.Gauge
	PredictionsAccepted prometheus.Counter
	PredictionsRejected *prometheus.CounterVec
	RoundActivations    prometheus.Counter
}

// New creates the collectors and registers them with process and Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "recomputes_total",
			Help:      "Leaderboard recomputations by result.",
		}, []string{"result"}),
		RecomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "recompute_duration_seconds",
			Help:      "Time spent recomputing the leaderboard.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		LeaderboardSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "entries",
			Help:      "Entries in the current leaderboard.",
		}),
		PredictionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "predictions",
			Name:      "accepted_total",
			Help:      "Predictions created or overwritten.",
		}),
		PredictionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "predictions",
			Name:      "rejected_total",
			Help:      "Prediction batches rejected, by reason.",
		}, []string{"reason"}),
		RoundActivations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rounds",
			Name:      "activations_total",
			Help:      "Rounds activated.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.Recomputes,
		m.RecomputeDuration,
		m.LeaderboardSize,
		m.PredictionsAccepted,
		m.PredictionsRejected,
		m.RoundActivations,
	)
	return m
}

// Registry exposes the registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
