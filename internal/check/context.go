package check

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"helixcheck/internal/report"
)

// Context carries everything one test-case invocation needs: the report sink,
// the outcome accumulator, and a logger. Each invocation owns its Context; no
// state is shared between concurrent test cases.
type Context struct {
	RunID   uuid.UUID
	Sink    report.Sink
	Outcome *Outcome
	Log     *slog.Logger
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLogger sets the logger used by the test case.
func WithLogger(log *slog.Logger) ContextOption {
	return func(c *Context) {
		if log != nil {
			c.Log = log
		}
	}
}

// WithRunID pins the run identifier instead of generating one.
func WithRunID(id uuid.UUID) ContextOption {
	return func(c *Context) {
		c.RunID = id
	}
}

// NewContext builds a fresh per-invocation context around sink.
func NewContext(sink report.Sink, opts ...ContextOption) *Context {
	c := &Context{
		RunID:   uuid.New(),
		Sink:    sink,
		Outcome: NewOutcome(),
		Log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Problem routes a PROBLEM finding for subject.
func (c *Context) Problem(ctx context.Context, subject, message string) {
	c.Sink.Problem(ctx, subject, message)
}

// OK routes an OK finding for subject. Checks report the success path
// explicitly so a clean run is distinguishable from one that checked nothing.
func (c *Context) OK(ctx context.Context, subject, message string) {
	c.Sink.OK(ctx, subject, message)
}
