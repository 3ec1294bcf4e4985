// Package check is the reference-diff core: typed snapshots of query results,
// a pure comparator over them, cross-registry name resolution, and the
// non-short-circuiting outcome accumulator shared by every test case.
package check

import "sort"

// Value is the set of scalar kinds an aggregate may hold. Counts and tag
// values are the only shapes the release schemas produce.
type Value interface {
	~int64 | ~string
}

// Pair is one (key, value) row feeding an aggregate.
type Pair[V Value] struct {
	Key   string
	Value V
}

// Aggregate is an immutable mapping from a natural key to a scalar, built
// once per query execution and owned by the check that built it.
type Aggregate[V Value] struct {
	m map[string]V
}

// A CountAggregate tracks how often each key occurred, a ValueAggregate what
// scalar each key maps to.
type (
	CountAggregate = Aggregate[int64]
	ValueAggregate = Aggregate[string]
)

// BuildAggregate folds rows into an aggregate. Duplicate keys are
// last-write-wins, matching the GROUP BY shape of the feeding queries.
func BuildAggregate[V Value](pairs []Pair[V]) Aggregate[V] {
	m := make(map[string]V, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Value
	}
	return Aggregate[V]{m: m}
}

// Get returns the value for key and whether the key is present.
func (a Aggregate[V]) Get(key string) (V, bool) {
	v, ok := a.m[key]
	return v, ok
}

// Len reports the number of distinct keys.
func (a Aggregate[V]) Len() int { return len(a.m) }

// Keys returns every key in sorted order. Consumers do not depend on order,
// but a deterministic walk keeps findings stable between runs.
func (a Aggregate[V]) Keys() []string {
	keys := make([]string, 0, len(a.m))
	for k := range a.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
