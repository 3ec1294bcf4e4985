// Package registry enumerates the databases a run checks. Two registries
// exist per run: the primary (current release) and the secondary (reference
// release) used for regression comparison.
package registry

import (
	"regexp"

	"helixcheck/internal/query"
)

// Type classifies a database by schema flavor.
type Type string

const (
	TypeCore          Type = "core"
	TypeCompara       Type = "compara"
	TypeVariation     Type = "variation"
	TypeFuncgen       Type = "funcgen"
	TypeOtherFeatures Type = "otherfeatures"
	TypeCDNA          Type = "cdna"
	TypeRNASeq        Type = "rnaseq"
	TypeUnknown       Type = "unknown"
)

// Entry is one database under check: its parsed identity plus the executor
// that reaches it. Entries are immutable once registered.
type Entry struct {
	Name       string
	Type       Type
	Species    string
	SpeciesIDs []int64
	DB         query.Executor
}

// IsMultiSpecies reports whether the entry hosts more than one species, as
// collection databases do.
func (e *Entry) IsMultiSpecies() bool {
	return len(e.SpeciesIDs) > 1
}

// Registry is a named set of database entries queried as a unit.
type Registry struct {
	entries []*Entry
}

// New builds a registry over the given entries.
func New(entries ...*Entry) *Registry {
	return &Registry{entries: entries}
}

// Add registers another entry.
func (r *Registry) Add(e *Entry) {
	r.entries = append(r.entries, e)
}

// All returns every entry in registration order.
func (r *Registry) All() []*Entry {
	return r.entries
}

// GetAll returns every entry of the given type.
func (r *Registry) GetAll(t Type) []*Entry {
	var out []*Entry
	for _, e := range r.entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// BySpecies returns every entry carrying the given (canonical) species name.
func (r *Registry) BySpecies(species string) []*Entry {
	var out []*Entry
	for _, e := range r.entries {
		if e.Species == species {
			out = append(out, e)
		}
	}
	return out
}

// SpeciesMap groups core entries by species, the shape cross-registry
// resolution consumes.
func (r *Registry) SpeciesMap() map[string][]*Entry {
	out := make(map[string][]*Entry)
	for _, e := range r.entries {
		if e.Species == "" {
			continue
		}
		out[e.Species] = append(out[e.Species], e)
	}
	return out
}

var (
	speciesDBPattern = regexp.MustCompile(`^([a-z0-9]+_[a-z0-9]+(?:_[a-z0-9]+)?)_(core|variation|funcgen|otherfeatures|cdna|rnaseq)_\d+`)
	comparaDBPattern = regexp.MustCompile(`(^|_)compara(_|$)`)
)

// ParseName infers species and type from a release database name, e.g.
// "homo_sapiens_core_110_38" or "ensembl_compara_110". Unrecognized names
// come back with TypeUnknown and no species.
func ParseName(name string) (species string, t Type) {
	if comparaDBPattern.MatchString(name) {
		return "", TypeCompara
	}
	m := speciesDBPattern.FindStringSubmatch(name)
	if m == nil {
		return "", TypeUnknown
	}
	return m[1], Type(m[2])
}

// NewEntry builds an entry for ex, parsing identity from the executor name.
// Single-species databases default to species ID 1.
func NewEntry(ex query.Executor) *Entry {
	species, t := ParseName(ex.Name())
	return &Entry{
		Name:       ex.Name(),
		Type:       t,
		Species:    species,
		SpeciesIDs: []int64{1},
		DB:         ex,
	}
}
