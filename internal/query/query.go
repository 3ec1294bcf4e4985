package query

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Row is one materialized result row. Column values keep whatever Go type the
// driver produced; use Int64 and String to coerce.
type Row []any

// Executor runs SQL against a single database. Implementations must be safe
// for concurrent use; each test case owns its own queries but executors are
// shared per database entry.
type Executor interface {
	// Name returns a short database identifier used in findings and logs.
	Name() string
	// Query executes sql and materializes every result row. Connectivity and
	// SQL failures are returned as a *QueryError.
	Query(ctx context.Context, sql string, args ...any) ([]Row, error)
}

// QueryError wraps a driver failure together with the statement that caused
// it, so a finding can cite the query without re-running the check.
type QueryError struct {
	SQL string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q: %v", e.SQL, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ErrNoRows reports that a single-value lookup matched nothing.
var ErrNoRows = errors.New("no rows")

// Value runs a query expected to yield a single scalar and returns it as a
// string. Extra rows and columns are ignored; an empty result set returns
// ErrNoRows.
func Value(ctx context.Context, ex Executor, sql string, args ...any) (string, error) {
	rows, err := ex.Query(ctx, sql, args...)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoRows, sql)
	}
	return String(rows[0][0]), nil
}

// Count runs a query expected to yield a single integer, typically COUNT(*).
func Count(ctx context.Context, ex Executor, sql string, args ...any) (int64, error) {
	rows, err := ex.Query(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoRows, sql)
	}
	return Int64(rows[0][0])
}

// Int64 coerces a driver value to int64. Drivers disagree on integer width
// and aggregates may surface as strings, so all of those are accepted.
func Int64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("coerce %q to int64: %w", n, err)
		}
		return parsed, nil
	case nil:
		return 0, fmt.Errorf("coerce nil to int64")
	default:
		return 0, fmt.Errorf("coerce %T to int64", v)
	}
}

// String coerces a driver value to its string form. nil becomes "".
func String(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
