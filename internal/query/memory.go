package query

import (
	"context"
	"errors"
	"sync"
)

// Memory is an in-memory Executor for tests. Statements are stubbed verbatim;
// an unstubbed statement fails with a *QueryError so checks exercise their
// failure paths without a live database.
type Memory struct {
	name string

	mu       sync.Mutex
	results  map[string][]Row
	failures map[string]error
	executed []string
}

// NewMemory constructs an empty in-memory executor named name.
func NewMemory(name string) *Memory {
	return &Memory{
		name:     name,
		results:  make(map[string][]Row),
		failures: make(map[string]error),
	}
}

func (m *Memory) Name() string { return m.name }

// Stub registers the rows returned for an exact statement.
func (m *Memory) Stub(sql string, rows ...Row) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[sql] = rows
	return m
}

// StubErr makes an exact statement fail with err.
func (m *Memory) StubErr(sql string, err error) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[sql] = err
	return m
}

func (m *Memory) Query(_ context.Context, sql string, _ ...any) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executed = append(m.executed, sql)
	if err, ok := m.failures[sql]; ok {
		return nil, &QueryError{SQL: sql, Err: err}
	}
	rows, ok := m.results[sql]
	if !ok {
		return nil, &QueryError{SQL: sql, Err: errors.New("no stub for statement")}
	}
	out := make([]Row, len(rows))
	copy(out, rows)
	return out, nil
}

// Executed returns every statement seen so far, in order.
func (m *Memory) Executed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.executed))
	copy(out, m.executed)
	return out
}
