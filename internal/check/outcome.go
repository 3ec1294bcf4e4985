package check

// Outcome folds sub-check verdicts into one pass/fail per test case. It never
// short-circuits: every sub-check runs and reports even after an earlier
// failure, so one run paints the complete picture of violated invariants.
//
// An Outcome belongs to a single test-case invocation and is not safe for
// concurrent use; concurrent test cases each own their own.
type Outcome struct {
	passed bool
}

// NewOutcome starts passing; any recorded failure is terminal.
func NewOutcome() *Outcome {
	return &Outcome{passed: true}
}

// Record folds one sub-check verdict in and hands the verdict back so call
// sites can keep their own control flow.
func (o *Outcome) Record(ok bool) bool {
	o.passed = o.passed && ok
	return ok
}

// Run executes a sub-check and records its verdict.
func (o *Outcome) Run(sub func() bool) bool {
	return o.Record(sub())
}

// Passed reports the conjunction of everything recorded so far.
func (o *Outcome) Passed() bool { return o.passed }
