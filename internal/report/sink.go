package report

import "context"

// Sink receives findings. Implementations must be safe for concurrent use;
// independent test cases report from their own goroutines. A sink never
// returns an error to the reporting check: a clean run is distinguished from
// a silent one by explicit OK findings, not by sink return values.
type Sink interface {
	// Problem records a violated invariant for subject.
	Problem(ctx context.Context, subject, message string)
	// OK records that subject was examined and found sound.
	OK(ctx context.Context, subject, message string)
}

// Multi fans findings out to several sinks in order.
type Multi []Sink

func (m Multi) Problem(ctx context.Context, subject, message string) {
	for _, s := range m {
		s.Problem(ctx, subject, message)
	}
}

func (m Multi) OK(ctx context.Context, subject, message string) {
	for _, s := range m {
		s.OK(ctx, subject, message)
	}
}
