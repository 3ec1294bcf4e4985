// Package report routes check findings to their destinations. Sinks are fire
// and forget: recording a finding never fails the check that produced it.
package report

import "time"

// Severity of a finding.
type Severity string

const (
	SeverityOK      Severity = "OK"
	SeverityProblem Severity = "PROBLEM"
)

// Finding is the uniform record every check emits: what was inspected and
// what came of it, with enough context to act on without re-running.
type Finding struct {
	Severity Severity  `json:"severity"`
	Subject  string    `json:"subject"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}
