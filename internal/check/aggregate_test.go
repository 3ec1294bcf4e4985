package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAggregate(t *testing.T) {
	tests := []struct {
		name     string
		pairs    []Pair[int64]
		wantLen  int
		wantKeys []string
	}{
		{
			name:     "empty input",
			pairs:    nil,
			wantLen:  0,
			wantKeys: []string{},
		},
		{
			name: "distinct keys",
			pairs: []Pair[int64]{
				{Key: "mammals", Value: 3},
				{Key: "fish", Value: 5},
			},
			wantLen:  2,
			wantKeys: []string{"fish", "mammals"},
		},
		{
			name: "duplicate keys are last-write-wins",
			pairs: []Pair[int64]{
				{Key: "mammals", Value: 3},
				{Key: "mammals", Value: 7},
			},
			wantLen:  1,
			wantKeys: []string{"mammals"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := BuildAggregate(tt.pairs)
			assert.Equal(t, tt.wantLen, agg.Len())
			assert.Equal(t, tt.wantKeys, agg.Keys())
		})
	}
}

func TestAggregateGet(t *testing.T) {
	agg := BuildAggregate([]Pair[int64]{
		{Key: "mammals", Value: 3},
		{Key: "mammals", Value: 7},
	})

	v, ok := agg.Get("mammals")
	assert.True(t, ok)
	assert.Equal(t, int64(7), v)

	_, ok = agg.Get("reptiles")
	assert.False(t, ok)
}

func TestValueAggregate(t *testing.T) {
	agg := BuildAggregate([]Pair[string]{
		{Key: "33", Value: "primates"},
		{Key: "12", Value: "fish"},
	})

	assert.Equal(t, []string{"12", "33"}, agg.Keys())
	v, ok := agg.Get("33")
	assert.True(t, ok)
	assert.Equal(t, "primates", v)
}
