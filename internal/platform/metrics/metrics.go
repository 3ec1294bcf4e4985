package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the healthcheck runner.
type Metrics struct {
	ChecksRun     *prometheus.CounterVec
	CheckDuration *prometheus.HistogramVec
	Findings      *prometheus.CounterVec
	QueryFailures prometheus.Counter
}

// New creates and registers metrics on the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates metrics registered on reg; tests pass their own registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ChecksRun: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "helixcheck_checks_run_total",
			Help: "Total number of check executions by check name and verdict",
		}, []string{"check", "verdict"}),
		CheckDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "helixcheck_check_duration_seconds",
			Help:    "Wall-clock duration of check executions",
			Buckets: prometheus.DefBuckets,
		}, []string{"check"}),
		Findings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "helixcheck_findings_total",
			Help: "Total number of findings routed to the report sink by severity",
		}, []string{"severity"}),
		QueryFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "helixcheck_query_failures_total",
			Help: "Total number of queries that could not be executed",
		}),
	}
}

// ObserveCheck records one check execution.
func (m *Metrics) ObserveCheck(name string, passed bool, seconds float64) {
	verdict := "passed"
	if !passed {
		verdict = "failed"
	}
	m.ChecksRun.WithLabelValues(name, verdict).Inc()
	m.CheckDuration.WithLabelValues(name).Observe(seconds)
}

// RecordFinding counts one routed finding.
func (m *Metrics) RecordFinding(severity string) {
	m.Findings.WithLabelValues(severity).Inc()
}

// RecordQueryFailure counts one failed query execution.
func (m *Metrics) RecordQueryFailure() {
	m.QueryFailures.Inc()
}
