package checks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"helixcheck/internal/check"
	"helixcheck/internal/query"
	"helixcheck/internal/registry"
	"helixcheck/internal/report"
)

type SeqRegionsSuite struct {
	suite.Suite
	ctx  context.Context
	sink *report.Memory
	cc   *check.Context
	core *query.Memory
	env  Environment
}

func TestSeqRegionsSuite(t *testing.T) {
	suite.Run(t, new(SeqRegionsSuite))
}

func (s *SeqRegionsSuite) SetupTest() {
	s.ctx = context.Background()
	s.sink = report.NewMemory()
	s.cc = check.NewContext(s.sink)
	s.core = query.NewMemory("danio_rerio_core_110_11")
	s.env = Environment{
		Primary:   registry.New(registry.NewEntry(s.core)),
		Secondary: registry.New(),
	}
}

// stubClean makes every sub-check pass for a GCA assembly.
func (s *SeqRegionsSuite) stubClean() {
	s.core.Stub(toplevelAttribSQL, query.Row{int64(6)})
	s.core.Stub(toplevelGenesSQL, query.Row{int64(100)})
	s.core.Stub(allGenesSQL, query.Row{int64(100)})
	s.core.Stub(toplevelRegionsSQL, query.Row{int64(25)})
	s.core.Stub(rankOneSQL, query.Row{int64(1)})
	s.core.Stub(missingAssemblySQL, query.Row{int64(0)})
	s.core.Stub(assemblyAccessionSQL, query.Row{"GCA_000002035.4"})
	s.core.Stub(toplevelNamesSQL, query.Row{"1"}, query.Row{"2"})
	s.core.Stub(synonymCountSQL, query.Row{int64(1)})
}

func (s *SeqRegionsSuite) problems() []string {
	var out []string
	for _, p := range s.sink.Problems() {
		out = append(out, p.Message)
	}
	return out
}

func (s *SeqRegionsSuite) TestCleanDatabasePasses() {
	s.stubClean()

	s.True(NewSeqRegionsTopLevel().Run(s.ctx, s.cc, s.env))
	s.Empty(s.sink.Problems())
}

func (s *SeqRegionsSuite) TestAppliesOnlyToGeneBearingSchemas() {
	variation := query.NewMemory("danio_rerio_variation_110_11")
	env := Environment{
		Primary:   registry.New(registry.NewEntry(variation)),
		Secondary: registry.New(),
	}

	s.True(NewSeqRegionsTopLevel().Run(s.ctx, s.cc, env))
	s.Empty(s.sink.Findings())
	s.Empty(variation.Executed())
}

func (s *SeqRegionsSuite) TestMissingToplevelAttribIsFatalForTheDatabase() {
	// Nothing stubbed: the attrib_type lookup fails and no per-region
	// statement may run afterwards.
	s.False(NewSeqRegionsTopLevel().Run(s.ctx, s.cc, s.env))
	s.Require().Len(s.sink.Problems(), 1)
	s.Contains(s.sink.Problems()[0].Message, "toplevel")
	s.Len(s.core.Executed(), 1)
}

func (s *SeqRegionsSuite) TestGenesOffToplevelRegions() {
	s.stubClean()
	s.core.Stub(allGenesSQL, query.Row{int64(120)})

	s.False(NewSeqRegionsTopLevel().Run(s.ctx, s.cc, s.env))
	s.Contains(s.problems()[0], "20 genes are on seq_regions which are not toplevel")
}

func (s *SeqRegionsSuite) TestNoToplevelRegions() {
	s.stubClean()
	s.core.Stub(toplevelRegionsSQL, query.Row{int64(0)})

	s.False(NewSeqRegionsTopLevel().Run(s.ctx, s.cc, s.env))
	s.Contains(s.problems(), "no seq_regions are marked as toplevel; this may cause problems for compara")
}

func (s *SeqRegionsSuite) TestRankOneCoordSystem() {
	s.Run("no rank 1 coord system", func() {
		s.SetupTest()
		s.stubClean()
		s.core.Stub(rankOneSQL, query.Row{int64(0)})

		s.False(NewSeqRegionsTopLevel().Run(s.ctx, s.cc, s.env))
		s.Contains(s.problems(), "no co-ordinate systems have rank = 1")
	})

	s.Run("several rank 1 coord systems", func() {
		s.SetupTest()
		s.stubClean()
		s.core.Stub(rankOneSQL, query.Row{int64(3)})

		s.False(NewSeqRegionsTopLevel().Run(s.ctx, s.cc, s.env))
		s.Contains(s.problems(), "3 rows in coord_system have a rank of 1, there should be 1")
	})

	s.Run("collection database expects one per species", func() {
		s.SetupTest()
		s.stubClean()
		s.env.Primary.All()[0].SpeciesIDs = []int64{1, 2, 3}
		s.core.Stub(rankOneSQL, query.Row{int64(3)})

		s.True(NewSeqRegionsTopLevel().Run(s.ctx, s.cc, s.env))
		s.Empty(s.sink.Problems())
	})
}

func (s *SeqRegionsSuite) TestToplevelRegionsWithoutAssembly() {
	s.stubClean()
	s.core.Stub(missingAssemblySQL, query.Row{int64(4)})

	s.False(NewSeqRegionsTopLevel().Run(s.ctx, s.cc, s.env))
	s.Contains(s.problems(), "4 toplevel regions have no assembly information")
}

func (s *SeqRegionsSuite) TestSynonyms() {
	s.Run("missing synonyms on a GCA assembly fail", func() {
		s.SetupTest()
		s.stubClean()
		s.core.Stub(synonymCountSQL, query.Row{int64(0)})

		s.False(NewSeqRegionsTopLevel().Run(s.ctx, s.cc, s.env))
		s.Contains(s.problems(), "2 regions do not have a RefSeq_genomic synonym")
	})

	s.Run("non-GCA assembly skips the synonym check", func() {
		s.SetupTest()
		s.stubClean()
		s.core.Stub(assemblyAccessionSQL, query.Row{"GCF_000002035.6"})
		s.core.Stub(synonymCountSQL, query.Row{int64(0)})

		s.True(NewSeqRegionsTopLevel().Run(s.ctx, s.cc, s.env))
		s.Empty(s.sink.Problems())
	})
}

// A failed sub-check never stops the remaining ones.
func (s *SeqRegionsSuite) TestSubChecksDoNotShortCircuit() {
	s.stubClean()
	s.core.Stub(allGenesSQL, query.Row{int64(120)})
	s.core.Stub(rankOneSQL, query.Row{int64(0)})

	s.False(NewSeqRegionsTopLevel().Run(s.ctx, s.cc, s.env))
	s.Len(s.sink.Problems(), 2)
}
