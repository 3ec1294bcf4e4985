package check

import (
	"context"
	"fmt"

	"helixcheck/internal/query"
)

// Snapshot extraction: run one query, fold its rows into an immutable
// aggregate. Comparison then happens over aggregates only, with no database
// in sight.

// CountSnapshot executes a two-column (key, count) query, typically a
// GROUP BY, and builds the resulting count aggregate.
func CountSnapshot(ctx context.Context, ex query.Executor, sql string, args ...any) (CountAggregate, error) {
	rows, err := ex.Query(ctx, sql, args...)
	if err != nil {
		return CountAggregate{}, err
	}
	pairs := make([]Pair[int64], 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			return CountAggregate{}, fmt.Errorf("count snapshot needs 2 columns, got %d: %s", len(row), sql)
		}
		n, err := query.Int64(row[1])
		if err != nil {
			return CountAggregate{}, fmt.Errorf("count snapshot %s: %w", sql, err)
		}
		pairs = append(pairs, Pair[int64]{Key: query.String(row[0]), Value: n})
	}
	return BuildAggregate(pairs), nil
}

// ValueSnapshot executes a two-column (key, value) query and builds the
// resulting value aggregate.
func ValueSnapshot(ctx context.Context, ex query.Executor, sql string, args ...any) (ValueAggregate, error) {
	rows, err := ex.Query(ctx, sql, args...)
	if err != nil {
		return ValueAggregate{}, err
	}
	pairs := make([]Pair[string], 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			return ValueAggregate{}, fmt.Errorf("value snapshot needs 2 columns, got %d: %s", len(row), sql)
		}
		pairs = append(pairs, Pair[string]{Key: query.String(row[0]), Value: query.String(row[1])})
	}
	return BuildAggregate(pairs), nil
}
