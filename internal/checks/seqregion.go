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
	assemblyAccessionSQL = "SELECT meta_value FROM meta WHERE meta_key = 'assembly.accession'"

	toplevelAttribSQL = "SELECT attrib_type_id FROM attrib_type WHERE code = 'toplevel'"

	toplevelGenesSQL = "SELECT COUNT(*) FROM seq_region_attrib sra, gene g" +
		" WHERE sra.attrib_type_id = $1 AND sra.seq_region_id = g.seq_region_id"

	allGenesSQL = "SELECT COUNT(*) FROM gene"

	toplevelRegionsSQL = "SELECT COUNT(*) FROM seq_region_attrib WHERE attrib_type_id = $1"

	rankOneSQL = "SELECT COUNT(*) FROM coord_system WHERE rank = 1"

	missingAssemblySQL = "SELECT COUNT(*) FROM seq_region_attrib sra" +
		" LEFT JOIN assembly a ON sra.seq_region_id = a.asm_seq_region_id, seq_region s, coord_system c" +
		" WHERE a.asm_seq_region_id IS NULL AND sra.attrib_type_id = $1" +
		" AND c.coord_system_id = s.coord_system_id AND s.seq_region_id = sra.seq_region_id" +
		" AND c.attrib NOT LIKE '%sequence_level%'"

	toplevelNamesSQL = "SELECT DISTINCT s.name FROM seq_region s, seq_region_attrib sa" +
		" WHERE s.seq_region_id = sa.seq_region_id AND s.name NOT LIKE 'LRG%' AND s.name <> 'MT'" +
		" AND sa.attrib_type_id = $1"

	synonymCountSQL = "SELECT COUNT(*) FROM seq_region s, seq_region_synonym ss, external_db e" +
		" WHERE s.seq_region_id = ss.seq_region_id AND ss.external_db_id = e.external_db_id" +
		" AND s.name = $1 AND e.db_name = $2"
)

// SeqRegionsTopLevel checks that toplevel annotation on sequence regions is
// coherent: all genes sit on toplevel regions, at least one region is marked
// toplevel, exactly one coordinate system per species has rank 1, toplevel
// regions have assembly information, and GCA assemblies carry the expected
// region synonyms.
type SeqRegionsTopLevel struct{}

func NewSeqRegionsTopLevel() *SeqRegionsTopLevel { return &SeqRegionsTopLevel{} }

func (*SeqRegionsTopLevel) Name() string { return "SeqRegionsTopLevel" }

func (*SeqRegionsTopLevel) Description() string {
	return "Check that toplevel seq_region annotation is present and consistent"
}

func (*SeqRegionsTopLevel) Groups() []string {
	return []string{"post_genebuild", "pre-compara-handover", "post-compara-handover"}
}

// appliesTo excludes schema flavors without gene/assembly tables.
func (*SeqRegionsTopLevel) appliesTo(e *registry.Entry) bool {
	switch e.Type {
	case registry.TypeCore, registry.TypeCDNA, registry.TypeOtherFeatures:
		return true
	default:
		return false
	}
}

func (c *SeqRegionsTopLevel) Run(ctx context.Context, cc *check.Context, env Environment) bool {
	for _, entry := range env.Primary.All() {
		if !c.appliesTo(entry) {
			continue
		}
		cc.Outcome.Record(c.runEntry(ctx, cc, entry))
	}
	return cc.Outcome.Passed()
}

func (c *SeqRegionsTopLevel) runEntry(ctx context.Context, cc *check.Context, entry *registry.Entry) bool {
	attribID, err := c.toplevelAttribID(ctx, cc, entry)
	if err != nil {
		// Without the toplevel attrib type no per-region check can produce a
		// meaningful result; the test case fails here for this database.
		return false
	}

	o := check.NewOutcome()
	o.Record(c.checkGenes(ctx, cc, entry, attribID))
	o.Record(c.checkOneSeqRegion(ctx, cc, entry, attribID))
	o.Record(c.checkRankOne(ctx, cc, entry))
	o.Record(c.checkAssemblyTable(ctx, cc, entry, attribID))

	accession, err := query.Value(ctx, entry.DB, assemblyAccessionSQL)
	if err == nil && strings.Contains(accession, "GCA") {
		o.Record(c.checkSynonyms(ctx, cc, entry, attribID))
	}

	return o.Passed()
}

func (c *SeqRegionsTopLevel) toplevelAttribID(ctx context.Context, cc *check.Context, entry *registry.Entry) (int64, error) {
	raw, err := query.Value(ctx, entry.DB, toplevelAttribSQL)
	if err != nil {
		cc.Problem(ctx, entry.Name, "cannot find a seq_region attrib_type with code 'toplevel'")
		return 0, err
	}
	id, err := query.Int64(raw)
	if err != nil {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("toplevel attrib_type_id is not numeric: %v", err))
		return 0, err
	}
	return id, nil
}

func (c *SeqRegionsTopLevel) checkGenes(ctx context.Context, cc *check.Context, entry *registry.Entry, attribID int64) bool {
	toplevelGenes, err := query.Count(ctx, entry.DB, toplevelGenesSQL, attribID)
	if err != nil {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot count toplevel genes: %v", err))
		return false
	}
	genes, err := query.Count(ctx, entry.DB, allGenesSQL)
	if err != nil {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot count genes: %v", err))
		return false
	}
	if nonTopLevel := genes - toplevelGenes; nonTopLevel > 0 {
		cc.Problem(ctx, entry.Name,
			fmt.Sprintf("%d genes are on seq_regions which are not toplevel; this may cause problems for compara and slow down the mapper", nonTopLevel))
		return false
	}
	cc.OK(ctx, entry.Name, "all genes are on toplevel seq regions")
	return true
}

func (c *SeqRegionsTopLevel) checkOneSeqRegion(ctx context.Context, cc *check.Context, entry *registry.Entry, attribID int64) bool {
	regions, err := query.Count(ctx, entry.DB, toplevelRegionsSQL, attribID)
	if err != nil {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot count toplevel seq_regions: %v", err))
		return false
	}
	if regions == 0 {
		cc.Problem(ctx, entry.Name, "no seq_regions are marked as toplevel; this may cause problems for compara")
		return false
	}
	cc.OK(ctx, entry.Name, fmt.Sprintf("%d seq_regions are marked as toplevel", regions))
	return true
}

func (c *SeqRegionsTopLevel) checkRankOne(ctx context.Context, cc *check.Context, entry *registry.Entry) bool {
	if entry.IsMultiSpecies() {
		// Collection databases legitimately carry one rank-1 coordinate
		// system per species; the single-species invariant does not apply.
		rows, err := query.Count(ctx, entry.DB, rankOneSQL)
		if err != nil {
			cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot count rank 1 coord_systems: %v", err))
			return false
		}
		want := int64(len(entry.SpeciesIDs))
		if rows != want {
			cc.Problem(ctx, entry.Name, fmt.Sprintf("%d rows in coord_system have a rank of 1, there should be %d", rows, want))
			return false
		}
		cc.OK(ctx, entry.Name, fmt.Sprintf("%d co-ordinate systems with rank = 1", want))
		return true
	}

	rows, err := query.Count(ctx, entry.DB, rankOneSQL)
	if err != nil {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot count rank 1 coord_systems: %v", err))
		return false
	}
	switch {
	case rows == 0:
		cc.Problem(ctx, entry.Name, "no co-ordinate systems have rank = 1")
		return false
	case rows > 1:
		cc.Problem(ctx, entry.Name, fmt.Sprintf("%d rows in coord_system have a rank of 1, there should be 1", rows))
		return false
	}
	cc.OK(ctx, entry.Name, "one co-ordinate system has rank = 1")
	return true
}

func (c *SeqRegionsTopLevel) checkAssemblyTable(ctx context.Context, cc *check.Context, entry *registry.Entry, attribID int64) bool {
	missing, err := query.Count(ctx, entry.DB, missingAssemblySQL, attribID)
	if err != nil {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot count toplevel regions without assembly information: %v", err))
		return false
	}
	if missing > 0 {
		cc.Problem(ctx, entry.Name,
			fmt.Sprintf("%d toplevel regions have no assembly information", missing))
		return false
	}
	cc.OK(ctx, entry.Name, "all toplevel regions have assembly information")
	return true
}

func (c *SeqRegionsTopLevel) checkSynonyms(ctx context.Context, cc *check.Context, entry *registry.Entry, attribID int64) bool {
	rows, err := entry.DB.Query(ctx, toplevelNamesSQL, attribID)
	if err != nil {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot list toplevel region names: %v", err))
		return false
	}

	var missingRefseq, missingINSDC int64
	for _, row := range rows {
		region := query.String(row[0])
		refseq, err := query.Count(ctx, entry.DB, synonymCountSQL, region, "RefSeq_genomic")
		if err != nil {
			cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot count synonyms for region %q: %v", region, err))
			return false
		}
		if refseq == 0 {
			missingRefseq++
		}
		insdc, err := query.Count(ctx, entry.DB, synonymCountSQL, region, "INSDC")
		if err != nil {
			cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot count synonyms for region %q: %v", region, err))
			return false
		}
		if insdc == 0 {
			missingINSDC++
		}
	}

	switch {
	case missingRefseq > 0:
		cc.Problem(ctx, entry.Name, fmt.Sprintf("%d regions do not have a RefSeq_genomic synonym", missingRefseq))
		return false
	case missingINSDC > 0:
		cc.Problem(ctx, entry.Name, fmt.Sprintf("%d regions do not have an INSDC synonym", missingINSDC))
		return false
	}
	cc.OK(ctx, entry.Name, "all toplevel regions have the required synonyms")
	return true
}
