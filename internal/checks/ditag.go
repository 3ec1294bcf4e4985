package checks

import (
	"context"
	"fmt"

	"helixcheck/internal/check"
	"helixcheck/internal/query"
	"helixcheck/internal/registry"
)

const (
	// maxDitagChromosomes caps the number of chromosome-like regions
	// inspected per database.
	maxDitagChromosomes = 100

	ditagCountSQL        = "SELECT COUNT(*) FROM ditag"
	ditagFeatureCountSQL = "SELECT COUNT(*) FROM ditag_feature"

	orphanDitagFeaturesSQL = "SELECT COUNT(*) FROM ditag_feature df" +
		" LEFT JOIN ditag d ON d.ditag_id = df.ditag_id WHERE d.ditag_id IS NULL"

	topCoordSystemSQL = "SELECT coord_system_id FROM coord_system WHERE rank = 1 LIMIT 1"

	// Chromosome-like regions: toplevel coordinate system, no '_' or '.',
	// short names, not unplaced (Un) and not mitochondrial (MT).
	chromosomesSQL = "SELECT seq_region_id, name FROM seq_region WHERE coord_system_id = $1" +
		` AND name NOT LIKE '%\_%' AND name NOT LIKE '%.%' AND name NOT LIKE 'Un%'` +
		" AND name NOT LIKE 'MT%' AND LENGTH(name) < 3 ORDER BY name"

	ditagFeaturesOnRegionSQL = "SELECT COUNT(*) FROM ditag_feature WHERE seq_region_id = $1"
)

// Ditag checks that ditag features exist, that each has a ditag entry, and
// that every chromosome carries some ditag features. Only human and mouse
// core databases carry ditag data.
type Ditag struct{}

func NewDitag() *Ditag { return &Ditag{} }

func (*Ditag) Name() string { return "Ditag" }

func (*Ditag) Description() string {
	return "Check ditag and ditag_feature content on human and mouse core databases"
}

func (*Ditag) Groups() []string { return []string{"post_genebuild", "release"} }

func (*Ditag) appliesTo(e *registry.Entry) bool {
	if e.Type != registry.TypeCore {
		return false
	}
	return e.Species == "homo_sapiens" || e.Species == "mus_musculus"
}

func (c *Ditag) Run(ctx context.Context, cc *check.Context, env Environment) bool {
	for _, entry := range env.Primary.All() {
		if !c.appliesTo(entry) {
			continue
		}
		o := check.NewOutcome()
		o.Record(c.checkExistence(ctx, cc, entry))
		o.Record(c.checkDitagRelation(ctx, cc, entry))
		o.Record(c.checkChromosomesHaveDitagFeatures(ctx, cc, entry))
		cc.Outcome.Record(o.Passed())
	}
	return cc.Outcome.Passed()
}

func (c *Ditag) checkExistence(ctx context.Context, cc *check.Context, entry *registry.Entry) bool {
	ok := true

	ditags, err := query.Count(ctx, entry.DB, ditagCountSQL)
	if err != nil {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot count ditags: %v", err))
		return false
	}
	if ditags == 0 {
		cc.Problem(ctx, entry.Name, "no ditags in database")
		ok = false
	}

	features, err := query.Count(ctx, entry.DB, ditagFeatureCountSQL)
	if err != nil {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot count ditag features: %v", err))
		return false
	}
	if features == 0 {
		cc.Problem(ctx, entry.Name, "no ditag features in database")
		ok = false
	}

	if ok {
		cc.OK(ctx, entry.Name, "found entries in ditag and ditag_feature tables")
	}
	return ok
}

func (c *Ditag) checkDitagRelation(ctx context.Context, cc *check.Context, entry *registry.Entry) bool {
	orphans, err := query.Count(ctx, entry.DB, orphanDitagFeaturesSQL)
	if err != nil {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot count orphan ditag features: %v", err))
		return false
	}
	if orphans > 0 {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("there are %d ditag_features without a ditag entry", orphans))
		return false
	}
	cc.OK(ctx, entry.Name, "all ditag_features have ditag entries")
	return true
}

func (c *Ditag) checkChromosomesHaveDitagFeatures(ctx context.Context, cc *check.Context, entry *registry.Entry) bool {
	topCoordSystem, err := query.Value(ctx, entry.DB, topCoordSystemSQL)
	if err != nil {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot find the top-level co-ordinate system: %v", err))
		return false
	}
	coordSystemID, err := query.Int64(topCoordSystem)
	if err != nil {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("top-level coord_system_id is not numeric: %v", err))
		return false
	}

	rows, err := entry.DB.Query(ctx, chromosomesSQL, coordSystemID)
	if err != nil {
		cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot list chromosomes: %v", err))
		return false
	}

	ok := true
	checked := 0
	for _, row := range rows {
		if checked >= maxDitagChromosomes {
			cc.Log.Warn("only checked the first chromosomes for ditag features",
				"database", entry.Name, "limit", maxDitagChromosomes)
			break
		}
		checked++

		regionID, err := query.Int64(row[0])
		if err != nil {
			cc.Problem(ctx, entry.Name, fmt.Sprintf("seq_region_id is not numeric: %v", err))
			ok = false
			continue
		}
		name := query.String(row[1])

		features, err := query.Count(ctx, entry.DB, ditagFeaturesOnRegionSQL, regionID)
		if err != nil {
			cc.Problem(ctx, entry.Name, fmt.Sprintf("cannot count ditag features on chromosome %s: %v", name, err))
			ok = false
			continue
		}
		if features == 0 {
			cc.Problem(ctx, entry.Name,
				fmt.Sprintf("chromosome %s (seq_region_id %d) has no ditag_features", name, regionID))
			ok = false
		} else {
			cc.OK(ctx, entry.Name, fmt.Sprintf("chromosome %s has %d ditag_features", name, features))
		}
	}
	return ok
}
