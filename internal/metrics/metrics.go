// Package metrics holds the Prometheus collectors shared by the gateway and
// the cascade orchestrator. A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "proposal_board"

type Metrics struct {
	gatewayRequests   *prometheus.CounterVec
	gatewayDuration   *prometheus.HistogramVec
	cascades          *prometheus.CounterVec
	cascadeDependents *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		gatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_requests_total",
			Help:      "Document store requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		gatewayDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_request_duration_seconds",
			Help:      "Document store request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		cascades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascades_total",
			Help:      "Cascade runs by target entity, mode and outcome.",
		}, []string{"entity", "mode", "outcome"}),
		cascadeDependents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascade_dependents_total",
			Help:      "Dependents archived or deleted by cascades.",
		}, []string{"entity", "mode", "kind"}),
	}

	reg.MustRegister(m.gatewayRequests, m.gatewayDuration, m.cascades, m.cascadeDependents)
	return m
}

// ObserveGatewayRequest records one document store round trip.
func (m *Metrics) ObserveGatewayRequest(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.gatewayRequests.WithLabelValues(endpoint, outcome).Inc()
	m.gatewayDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveCascade records a finished cascade and the dependents it touched,
// including the partial progress of failed runs.
func (m *Metrics) ObserveCascade(entity, mode, outcome string, tasks, proposals int) {
	if m == nil {
		return
	}
	m.cascades.WithLabelValues(entity, mode, outcome).Inc()
	m.cascadeDependents.WithLabelValues(entity, mode, "task").Add(float64(tasks))
	m.cascadeDependents.WithLabelValues(entity, mode, "proposal").Add(float64(proposals))
}
