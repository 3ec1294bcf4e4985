package checks

import (
	"context"
	"fmt"

	"helixcheck/internal/check"
	"helixcheck/internal/query"
	"helixcheck/internal/registry"
)

const (
	speciesSetNamesSQL = "SELECT value, COUNT(*) FROM species_set_tag WHERE tag = 'name' GROUP BY value"

	genomeNamesSQL = "SELECT name FROM genome_db WHERE assembly_default = 1" +
		" AND name NOT IN ('Ancestral sequences', 'ancestral_sequences') ORDER BY genome_db_id"

	speciesSetTagRowsSQL = "SELECT COUNT(*) FROM species_set_tag"

	namedSetsSQL = "SELECT species_set_id, value FROM species_set_tag WHERE tag = 'name'"

	multipleAlignmentSetsSQL = "SELECT species_set_id, name FROM method_link_species_set" +
		" JOIN method_link USING (method_link_id)" +
		" WHERE class LIKE '%multiple_alignment%' OR class LIKE '%tree_alignment%' OR class LIKE '%ancestral_alignment%'"
)

// SpeciesSetTag checks the content of the species_set_tag table in every
// primary compara database: genome names must agree with the per-species
// production names, every multiple alignment must carry a name tag, and every
// named species set from the reference release must still be present at least
// as often as before.
type SpeciesSetTag struct{}

func NewSpeciesSetTag() *SpeciesSetTag { return &SpeciesSetTag{} }

func (*SpeciesSetTag) Name() string { return "SpeciesSetTag" }

func (*SpeciesSetTag) Description() string {
	return "Check the content of the species_set_tag table against the reference release"
}

func (*SpeciesSetTag) Groups() []string { return []string{"compara_homology"} }

func (c *SpeciesSetTag) Run(ctx context.Context, cc *check.Context, env Environment) bool {
	primaries := env.Primary.GetAll(registry.TypeCompara)
	if len(primaries) == 0 {
		// Nothing else can produce a meaningful result without a compara
		// database, so this test case fails immediately.
		cc.Problem(ctx, c.Name(), "cannot find a compara database in the primary registry")
		return cc.Outcome.Record(false)
	}

	var secondaries []*registry.Entry
	if env.Secondary != nil {
		secondaries = env.Secondary.GetAll(registry.TypeCompara)
	}

	resolver := check.NewResolver(env.Primary, nil)

	for _, primary := range primaries {
		cc.Outcome.Record(c.checkProductionNames(ctx, cc, resolver, primary))
		cc.Outcome.Record(c.checkNameTagForMultipleAlignments(ctx, cc, primary))

		if len(secondaries) == 0 {
			cc.Problem(ctx, primary.Name,
				"cannot find a compara database in the secondary registry; this check expects a previous"+
					" release to verify that all named species sets are still present")
			cc.Outcome.Record(false)
		}
		for _, secondary := range secondaries {
			cc.Outcome.Record(c.compareSpeciesSets(ctx, cc, primary, secondary))
		}
	}

	return cc.Outcome.Passed()
}

// compareSpeciesSets snapshots the named species sets on both releases and
// flags sets that vanished or shrank. Sets only present in the current
// release are acceptable drift and stay silent.
func (c *SpeciesSetTag) compareSpeciesSets(ctx context.Context, cc *check.Context, primary, secondary *registry.Entry) bool {
	current, err := check.CountSnapshot(ctx, primary.DB, speciesSetNamesSQL)
	if err != nil {
		cc.Problem(ctx, primary.Name, fmt.Sprintf("cannot read named species sets: %v", err))
		return false
	}
	reference, err := check.CountSnapshot(ctx, secondary.DB, speciesSetNamesSQL)
	if err != nil {
		cc.Problem(ctx, secondary.Name, fmt.Sprintf("cannot read named species sets: %v", err))
		return false
	}

	discrepancies := check.Compare(current, reference)
	for _, d := range discrepancies {
		switch d.Kind {
		case check.KindMissingInCurrent:
			cc.Problem(ctx, primary.Name,
				fmt.Sprintf("species set %q is missing (it appears %d time(s) in %s)", d.Key, d.Reference, secondary.Name))
		case check.KindCountDecreased:
			cc.Problem(ctx, primary.Name,
				fmt.Sprintf("species set %q is present only %d times instead of %d as in %s", d.Key, d.Current, d.Reference, secondary.Name))
		}
	}
	if len(discrepancies) > 0 {
		return false
	}
	cc.OK(ctx, primary.Name, fmt.Sprintf("all named species sets from %s are still present", secondary.Name))
	return true
}

// checkProductionNames verifies that every default genome in the compara
// database resolves to a species database whose production name agrees with
// the genome name.
func (c *SpeciesSetTag) checkProductionNames(ctx context.Context, cc *check.Context, resolver *check.Resolver, primary *registry.Entry) bool {
	rows, err := primary.DB.Query(ctx, genomeNamesSQL)
	if err != nil {
		cc.Problem(ctx, primary.Name, fmt.Sprintf("cannot read genome_db names: %v", err))
		return false
	}

	ok := true
	allFound := true
	for _, row := range rows {
		good, resolved := resolver.CrossCheckProductionName(ctx, cc, primary.Name, query.String(row[0]))
		if !resolved {
			allFound = false
		}
		if !good {
			ok = false
		}
	}
	if !allFound {
		cc.Problem(ctx, primary.Name, "cannot find a database for all genomes")
	}
	if ok {
		cc.OK(ctx, primary.Name, "genome_db names agree with species.production_name across registries")
	}
	return ok
}

// checkNameTagForMultipleAlignments verifies that every multiple-alignment
// species set carries a name tag.
func (c *SpeciesSetTag) checkNameTagForMultipleAlignments(ctx context.Context, cc *check.Context, primary *registry.Entry) bool {
	tagRows, err := query.Count(ctx, primary.DB, speciesSetTagRowsSQL)
	if err != nil {
		cc.Problem(ctx, primary.Name, fmt.Sprintf("cannot read species_set_tag: %v", err))
		return false
	}
	if tagRows == 0 {
		cc.Problem(ctx, primary.Name, "species_set_tag table is empty; there will be no aliases for multiple alignments")
		return false
	}

	named, err := check.ValueSnapshot(ctx, primary.DB, namedSetsSQL)
	if err != nil {
		cc.Problem(ctx, primary.Name, fmt.Sprintf("cannot read named species sets: %v", err))
		return false
	}
	alignments, err := check.ValueSnapshot(ctx, primary.DB, multipleAlignmentSetsSQL)
	if err != nil {
		cc.Problem(ctx, primary.Name, fmt.Sprintf("cannot read multiple-alignment species sets: %v", err))
		return false
	}

	ok := true
	for _, setID := range alignments.Keys() {
		if _, found := named.Get(setID); !found {
			name, _ := alignments.Get(setID)
			cc.Problem(ctx, primary.Name, fmt.Sprintf("there is no name entry in species_set_tag for multiple alignment %q", name))
			ok = false
		}
	}
	if ok {
		cc.OK(ctx, primary.Name, "every multiple-alignment species set has a name tag")
	}
	return ok
}
