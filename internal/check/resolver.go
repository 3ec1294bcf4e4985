package check

import (
	"context"
	"errors"
	"fmt"

	"helixcheck/internal/query"
	"helixcheck/internal/registry"
	"helixcheck/internal/species"
)

// ErrUnresolved reports that an entity name matched nothing in the target
// registry after normalization and alias resolution.
var ErrUnresolved = errors.New("entity not found in target registry")

const productionNameSQL = "SELECT meta_value FROM meta WHERE meta_key = 'species.production_name'"

// Resolver matches entity names from one database against another registry,
// tolerating case, whitespace and historical-alias differences.
type Resolver struct {
	target *registry.Registry
	alias  func(string) string
}

// NewResolver binds a resolver to its target registry. A nil alias function
// falls back to the built-in species alias table.
func NewResolver(target *registry.Registry, alias func(string) string) *Resolver {
	if alias == nil {
		alias = species.ResolveAlias
	}
	return &Resolver{target: target, alias: alias}
}

// Resolve normalizes rawName (lower-case, whitespace to underscores, alias
// table) and looks the canonical name up in the target registry. The
// canonical name is returned even when resolution fails, so findings can
// cite it.
func (r *Resolver) Resolve(rawName string) (*registry.Entry, string, error) {
	canonical := r.alias(rawName)
	entries := r.target.BySpecies(canonical)
	if len(entries) == 0 {
		return nil, canonical, fmt.Errorf("%w: %q (canonical %q)", ErrUnresolved, rawName, canonical)
	}
	return entries[0], canonical, nil
}

// ProductionName fetches the canonical production identifier stored in the
// resolved entry's meta table.
func (r *Resolver) ProductionName(ctx context.Context, entry *registry.Entry) (string, error) {
	return query.Value(ctx, entry.DB, productionNameSQL)
}

// CrossCheckProductionName resolves rawName into the target registry and
// compares the production name stored there against the resolved canonical
// name by exact string equality. Unresolved entities and mismatches are
// PROBLEM findings; a match stays silent for the caller to summarize. ok is
// false on any finding; resolved reports whether a database was found at
// all, so callers can summarize resolution coverage. A resolution failure
// never aborts the caller's loop over remaining entities.
func (r *Resolver) CrossCheckProductionName(ctx context.Context, cc *Context, subject, rawName string) (ok, resolved bool) {
	entry, canonical, err := r.Resolve(rawName)
	if err != nil {
		cc.Problem(ctx, subject, fmt.Sprintf("no database for genome %q (looked up as %q)", rawName, canonical))
		return false, false
	}
	productionName, err := r.ProductionName(ctx, entry)
	if err != nil {
		cc.Problem(ctx, subject, fmt.Sprintf("cannot read species.production_name from %s: %v", entry.Name, err))
		return false, true
	}
	if productionName != canonical {
		cc.Problem(ctx, subject, fmt.Sprintf("genome %q has a different species.production_name in %s: %q (expected %q)", rawName, entry.Name, productionName, canonical))
		return false, true
	}
	return true, true
}
