// Package runner schedules test cases. Each check runs with its own context
// and outcome; independent checks may run in parallel, but one check's
// failure never stops its siblings.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"helixcheck/internal/check"
	"helixcheck/internal/checks"
	"helixcheck/internal/platform/metrics"
	"helixcheck/internal/report"
)

// Verdict is one check's result.
type Verdict struct {
	Check    string        `json:"check"`
	Passed   bool          `json:"passed"`
	Duration time.Duration `json:"duration"`
}

// Result is the outcome of a whole run.
type Result struct {
	RunID    uuid.UUID `json:"run_id"`
	Verdicts []Verdict `json:"verdicts"`
}

// Passed reports whether every check passed.
func (r *Result) Passed() bool {
	for _, v := range r.Verdicts {
		if !v.Passed {
			return false
		}
	}
	return true
}

// Runner executes a set of checks against an environment.
type Runner struct {
	checks      []checks.Check
	sink        report.Sink
	metrics     *metrics.Metrics
	logger      *slog.Logger
	tracer      trace.Tracer
	concurrency int
	runID       uuid.UUID
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger handed to each check context.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithConcurrency bounds how many checks run at once. Values below 1 mean
// sequential execution.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithRunID pins the run identifier, e.g. to share it with external sinks.
func WithRunID(id uuid.UUID) Option {
	return func(r *Runner) {
		r.runID = id
	}
}

// New builds a runner over the given checks and sink.
func New(cs []checks.Check, sink report.Sink, opts ...Option) (*Runner, error) {
	if len(cs) == 0 {
		return nil, fmt.Errorf("at least one check is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("report sink is required")
	}
	r := &Runner{
		checks:      cs,
		sink:        sink,
		logger:      slog.Default(),
		tracer:      otel.Tracer("helixcheck/runner"),
		concurrency: 1,
		runID:       uuid.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run executes every check against env and collects verdicts. A failing
// check marks the run failed without cancelling its siblings; Run only
// returns an error when the scheduling context is cancelled.
func (r *Runner) Run(ctx context.Context, env checks.Environment) (*Result, error) {
	result := &Result{RunID: r.runID, Verdicts: make([]Verdict, len(r.checks))}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.concurrency)

	for i, c := range r.checks {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			verdict := r.runOne(groupCtx, c, env)
			mu.Lock()
			result.Verdicts[i] = verdict
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info("run finished",
		slog.String("run_id", r.runID.String()),
		slog.Bool("passed", result.Passed()),
		slog.Int("checks", len(result.Verdicts)),
	)
	return result, nil
}

func (r *Runner) runOne(ctx context.Context, c checks.Check, env checks.Environment) Verdict {
	ctx, span := r.tracer.Start(ctx, "check",
		trace.WithAttributes(attribute.String("check.name", c.Name())))
	defer span.End()

	cc := check.NewContext(r.sink,
		check.WithLogger(r.logger.With(slog.String("check", c.Name()))),
		check.WithRunID(r.runID),
	)

	start := time.Now()
	passed := c.Run(ctx, cc, env)
	elapsed := time.Since(start)

	span.SetAttributes(attribute.Bool("check.passed", passed))
	if r.metrics != nil {
		r.metrics.ObserveCheck(c.Name(), passed, elapsed.Seconds())
	}
	r.logger.Info("check finished",
		slog.String("check", c.Name()),
		slog.Bool("passed", passed),
		slog.Duration("duration", elapsed),
	)
	return Verdict{Check: c.Name(), Passed: passed, Duration: elapsed}
}
