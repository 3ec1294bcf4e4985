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

type MLSSTagSuite struct {
	suite.Suite
	ctx     context.Context
	sink    *report.Memory
	cc      *check.Context
	compara *query.Memory
	env     Environment
}

func TestMLSSTagSuite(t *testing.T) {
	suite.Run(t, new(MLSSTagSuite))
}

func (s *MLSSTagSuite) SetupTest() {
	s.ctx = context.Background()
	s.sink = report.NewMemory()
	s.cc = check.NewContext(s.sink)
	s.compara = query.NewMemory("ensembl_compara_110")
	s.env = Environment{
		Primary:   registry.New(registry.NewEntry(s.compara)),
		Secondary: registry.New(),
	}
	s.compara.Stub(mlssTagTableSQL, query.Row{int64(1)})
}

// treeRow is one (mlss_id, tag, tree, name, genome count) result row.
func treeRow(id int64, tag, tree, name string, genomes int64) query.Row {
	return query.Row{id, tag, tree, name, genomes}
}

func (s *MLSSTagSuite) TestWellFormedTreesPass() {
	s.compara.Stub(speciesTreesSQL,
		treeRow(1, "species_tree", "((a,b),c)", "EPO primates", 3),
		treeRow(2, "species_tree", "(a,b)", "LASTZ pair", 2),
	)

	s.True(NewMethodLinkSpeciesSetTag().Run(s.ctx, s.cc, s.env))
	s.Empty(s.sink.Problems())
	s.Require().Len(s.sink.Findings(), 1)
	s.Equal(report.SeverityOK, s.sink.Findings()[0].Severity)
}

func (s *MLSSTagSuite) TestNoAnalysesPass() {
	s.compara.Stub(speciesTreesSQL)

	s.True(NewMethodLinkSpeciesSetTag().Run(s.ctx, s.cc, s.env))
	s.Empty(s.sink.Problems())
}

func (s *MLSSTagSuite) TestMissingTagTableFails() {
	s.compara.Stub(mlssTagTableSQL, query.Row{int64(0)})

	s.False(NewMethodLinkSpeciesSetTag().Run(s.ctx, s.cc, s.env))
	s.Require().Len(s.sink.Problems(), 1)
	s.Contains(s.sink.Problems()[0].Message, "method_link_species_set_tag table not present")
}

func (s *MLSSTagSuite) TestMissingSpeciesTree() {
	s.compara.Stub(speciesTreesSQL,
		treeRow(1, "", "", "EPO primates", 3),
	)

	s.False(NewMethodLinkSpeciesSetTag().Run(s.ctx, s.cc, s.env))
	s.Require().Len(s.sink.Problems(), 1)
	s.Contains(s.sink.Problems()[0].Message, "does not have its species tree")
}

func (s *MLSSTagSuite) TestUnbalancedBrackets() {
	s.compara.Stub(speciesTreesSQL,
		treeRow(1, "species_tree", "((a,b),c", "EPO primates", 3),
	)

	s.False(NewMethodLinkSpeciesSetTag().Run(s.ctx, s.cc, s.env))
	s.Require().Len(s.sink.Problems(), 1)
	s.Contains(s.sink.Problems()[0].Message, "matching opening and closing brackets")
}

func (s *MLSSTagSuite) TestWrongLeafCount() {
	s.compara.Stub(speciesTreesSQL,
		treeRow(1, "species_tree", "((a,b),c)", "EPO primates", 4),
	)

	s.False(NewMethodLinkSpeciesSetTag().Run(s.ctx, s.cc, s.env))
	s.Require().Len(s.sink.Problems(), 1)
	s.Contains(s.sink.Problems()[0].Message, "right number of leaves")
}

// One malformed tree does not hide problems with the others.
func (s *MLSSTagSuite) TestAllRowsAreInspected() {
	s.compara.Stub(speciesTreesSQL,
		treeRow(1, "", "", "first", 3),
		treeRow(2, "species_tree", "(a,b", "second", 2),
		treeRow(3, "species_tree", "(a,b)", "third", 2),
	)

	s.False(NewMethodLinkSpeciesSetTag().Run(s.ctx, s.cc, s.env))
	s.Len(s.sink.Problems(), 2)
}
