package checks

import (
	"context"
	"fmt"
	"strings"

	"helixcheck/internal/check"
	"helixcheck/internal/query"
	"helixcheck/internal/registry"
)

const (
	mlssTagTableSQL = "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = 'method_link_species_set_tag'"

	speciesTreesSQL = "SELECT method_link_species_set_id, COALESCE(tag, ''), COALESCE(value, '')," +
		" method_link_species_set.name, COUNT(DISTINCT genome_db_id)" +
		" FROM method_link_species_set" +
		" JOIN method_link USING (method_link_id)" +
		" LEFT JOIN method_link_species_set_tag USING (method_link_species_set_id)" +
		" JOIN species_set USING (species_set_id)" +
		" WHERE (class LIKE 'GenomicAlignTree%' OR class LIKE '%multiple_alignment' OR class LIKE '%tree_node')" +
		" AND (tag = 'species_tree' OR tag IS NULL)" +
		" GROUP BY method_link_species_set_id, tag, value, method_link_species_set.name"
)

// MethodLinkSpeciesSetTag verifies that every multi-genome analysis stores a
// well-formed species tree in method_link_species_set_tag: the tree exists,
// its brackets balance, and its leaf count matches the number of genomes in
// the set.
type MethodLinkSpeciesSetTag struct{}

func NewMethodLinkSpeciesSetTag() *MethodLinkSpeciesSetTag { return &MethodLinkSpeciesSetTag{} }

func (*MethodLinkSpeciesSetTag) Name() string { return "MethodLinkSpeciesSetTag" }

func (*MethodLinkSpeciesSetTag) Description() string {
	return "Check that species trees are present and well formed in method_link_species_set_tag"
}

func (*MethodLinkSpeciesSetTag) Groups() []string {
	return []string{"compara_genomic", "compara_homology"}
}

func (c *MethodLinkSpeciesSetTag) Run(ctx context.Context, cc *check.Context, env Environment) bool {
	for _, entry := range env.Primary.GetAll(registry.TypeCompara) {
		cc.Outcome.Record(c.runEntry(ctx, cc, entry))
	}
	return cc.Outcome.Passed()
}

func (c *MethodLinkSpeciesSetTag) runEntry(ctx context.Context, cc *check.Context, entry *registry.Entry) bool {
	tables, err := query.Count(ctx, entry.DB, mlssTagTableSQL)
	if err != nil {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot inspect schema: %v", err))
		return false
	}
	if tables == 0 {
		cc.Problem(ctx, entry.Name, "method_link_species_set_tag table not present")
		return false
	}

	rows, err := entry.DB.Query(ctx, speciesTreesSQL)
	if err != nil {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot read species trees: %v", err))
		return false
	}

	ok := true
	for _, row := range rows {
		if len(row) < 5 {
			cc.Problem(ctx, entry.Name, fmt.Sprintf("species tree query returned %d columns, want 5", len(row)))
			return false
		}
		mlssID := query.String(row[0])
		tag := query.String(row[1])
		tree := query.String(row[2])
		name := query.String(row[3])
		genomes, err := query.Int64(row[4])
		if err != nil {
			cc.Problem(ctx, entry.Name, fmt.Sprintf("species tree genome count for %s: %v", mlssID, err))
			ok = false
			continue
		}

		switch {
		case tag == "":
			cc.Problem(ctx, entry.Name,
				fmt.Sprintf("method_link_species_set %s (%s) does not have its species tree in method_link_species_set_tag", mlssID, name))
			ok = false
		case strings.Count(tree, "(") != strings.Count(tree, ")"):
			cc.Problem(ctx, entry.Name,
				fmt.Sprintf("the species tree for method_link_species_set %s (%s) does not have matching opening and closing brackets", mlssID, name))
			ok = false
		case int64(strings.Count(tree, ","))+1 != genomes:
			cc.Problem(ctx, entry.Name,
				fmt.Sprintf("the species tree for method_link_species_set %s (%s) does not have the right number of leaves", mlssID, name))
			ok = false
		}
	}
	if ok {
		cc.OK(ctx, entry.Name, "all multi-genome analyses carry a well-formed species tree")
	}
	return ok
}
