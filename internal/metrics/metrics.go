// Package metrics holds the Prometheus collectors for the analysis workflow.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "repopulse"

// Outcome labels for AnalyzeTotal.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeStale   = "stale"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	analyzeTotal    *prometheus.CounterVec
	analyzeDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	healthScore     prometheus.Gauge
	subscribers     prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyzeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analyze",
			Name:      "requests_total",
			Help:      "analyze calls by outcome and error kind",
		}, []string{"outcome", "kind"}),
		analyzeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analyze",
			Name:      "duration_seconds",
			Help:      "time spent waiting on the analysis service",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"outcome"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "analyze",
			Name:      "in_flight",
			Help:      "analyze calls waiting on the analysis service",
		}),
		healthScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "result",
			Name:      "health_score",
			Help:      "health score of the last committed analysis",
		}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "subscribers",
			Help:      "open state subscriptions",
		}),
	}
	m.registry.MustRegister(m.analyzeTotal, m.analyzeDuration, m.inFlight, m.healthScore, m.subscribers)
	return m
}

// Registry exposes the registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Started marks a call as waiting on the service.
func (m *Metrics) Started() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

// Finished records the outcome of a call that reached the service.
// kind is empty for successes.
func (m *Metrics) Finished(outcome, kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.inFlight.Dec()
	m.analyzeTotal.WithLabelValues(outcome, kind).Inc()
	m.analyzeDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Rejected records a call that failed validation and never reached the service.
func (m *Metrics) Rejected(kind string) {
	if m == nil {
		return
	}
	m.analyzeTotal.WithLabelValues(OutcomeFailure, kind).Inc()
}

// Committed records the score of a newly committed result.
func (m *Metrics) Committed(score float64) {
	if m == nil {
		return
	}
	m.healthScore.Set(score)
}

// SubscriberAdded and SubscriberRemoved track open subscriptions.
func (m *Metrics) SubscriberAdded() {
	if m == nil {
		return
	}
	m.subscribers.Inc()
}

func (m *Metrics) SubscriberRemoved() {
	if m == nil {
		return
	}
	m.subscribers.Dec()
}
