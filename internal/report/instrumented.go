package report

import (
	"context"

	"helixcheck/internal/platform/metrics"
)

// Instrumented wraps a sink and counts routed findings by severity.
type Instrumented struct {
	next    Sink
	metrics *metrics.Metrics
}

// NewInstrumented decorates next with finding counters. A nil metrics makes
// the wrapper transparent.
func NewInstrumented(next Sink, m *metrics.Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: m}
}

func (i *Instrumented) Problem(ctx context.Context, subject, message string) {
	if i.metrics != nil {
		i.metrics.RecordFinding(string(SeverityProblem))
	}
	i.next.Problem(ctx, subject, message)
}

func (i *Instrumented) OK(ctx context.Context, subject, message string) {
	if i.metrics != nil {
		i.metrics.RecordFinding(string(SeverityOK))
	}
	i.next.OK(ctx, subject, message)
}
