package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	all := Defaults()
	assert.Len(t, all, 4)

	names := make(map[string]bool)
	for _, c := range all {
		names[c.Name()] = true
		assert.NotEmpty(t, c.Description())
		assert.NotEmpty(t, c.Groups())
	}
	assert.True(t, names["SpeciesSetTag"])
	assert.True(t, names["MethodLinkSpeciesSetTag"])
	assert.True(t, names["SeqRegionsTopLevel"])
	assert.True(t, names["Ditag"])
}

func TestSelect(t *testing.T) {
	all := Defaults()

	tests := []struct {
		name     string
		groups   []string
		expected []string
	}{
		{
			name:     "empty group list selects everything",
			groups:   nil,
			expected: []string{"SpeciesSetTag", "MethodLinkSpeciesSetTag", "SeqRegionsTopLevel", "Ditag"},
		},
		{
			name:     "single group",
			groups:   []string{"compara_genomic"},
			expected: []string{"MethodLinkSpeciesSetTag"},
		},
		{
			name:     "group shared by several checks",
			groups:   []string{"compara_homology"},
			expected: []string{"SpeciesSetTag", "MethodLinkSpeciesSetTag"},
		},
		{
			name:     "several groups union their members",
			groups:   []string{"compara_genomic", "release"},
			expected: []string{"MethodLinkSpeciesSetTag", "Ditag"},
		},
		{
			name:     "unknown group selects nothing",
			groups:   []string{"no_such_group"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var names []string
			for _, c := range Select(all, tt.groups) {
				names = append(names, c.Name())
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}
