// Package checks holds the data-integrity test cases run against release
// databases. Each check is a self-contained test case: it borrows database
// handles from the run's registries, snapshots what it needs, and routes
// every finding through its check context.
package checks

import (
	"context"

	"helixcheck/internal/check"
	"helixcheck/internal/registry"
)

// Environment is the pair of registries a run checks against. Secondary is
// the reference (previous release) registry; checks that do not compare
// releases ignore it, and it may be empty.
type Environment struct {
	Primary   *registry.Registry
	Secondary *registry.Registry
}

// Check is one test case. Run must route every evaluated condition through
// the context's sink, fold sub-check verdicts into the context's outcome
// without short-circuiting, and return the composite verdict.
type Check interface {
	Name() string
	Description() string
	Groups() []string
	Run(ctx context.Context, cc *check.Context, env Environment) bool
}

// inGroups reports whether a check belongs to any of the wanted groups. An
// empty want list selects everything.
func inGroups(c Check, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		for _, g := range c.Groups() {
			if g == w {
				return true
			}
		}
	}
	return false
}

// Select filters checks by group membership.
func Select(all []Check, groups []string) []Check {
	var out []Check
	for _, c := range all {
		if inGroups(c, groups) {
			out = append(out, c)
		}
	}
	return out
}

// Defaults returns the full set of registered checks.
func Defaults() []Check {
	return []Check{
		NewSpeciesSetTag(),
		NewMethodLinkSpeciesSetTag(),
		NewSeqRegionsTopLevel(),
		NewDitag(),
	}
}
