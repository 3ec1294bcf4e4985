package report

import (
	"context"
	"sync"
	"time"
)

// Memory retains findings in order of arrival. It backs unit tests and the
// HTTP report endpoint.
type Memory struct {
	mu       sync.Mutex
	findings []Finding
}

// NewMemory constructs an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Problem(_ context.Context, subject, message string) {
	m.append(Finding{Severity: SeverityProblem, Subject: subject, Message: message, At: time.Now()})
}

func (m *Memory) OK(_ context.Context, subject, message string) {
	m.append(Finding{Severity: SeverityOK, Subject: subject, Message: message, At: time.Now()})
}

func (m *Memory) append(f Finding) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findings = append(m.findings, f)
}

// Findings returns a copy of everything recorded so far.
func (m *Memory) Findings() []Finding {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Finding, len(m.findings))
	copy(out, m.findings)
	return out
}

// Problems returns only the PROBLEM findings.
func (m *Memory) Problems() []Finding {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Finding
	for _, f := range m.findings {
		if f.Severity == SeverityProblem {
			out = append(out, f)
		}
	}
	return out
}

// Reset drops all recorded findings.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findings = nil
}
