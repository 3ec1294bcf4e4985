package check

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"helixcheck/internal/query"
	"helixcheck/internal/registry"
	"helixcheck/internal/report"
)

type ResolverSuite struct {
	suite.Suite
	ctx    context.Context
	sink   *report.Memory
	cc     *Context
	target *registry.Registry
	human  *query.Memory
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctx = context.Background()
	s.sink = report.NewMemory()
	s.cc = NewContext(s.sink)

	s.human = query.NewMemory("homo_sapiens_core_110_38")
	s.target = registry.New(registry.NewEntry(s.human))
}

func (s *ResolverSuite) stubProductionName(name string) {
	s.human.Stub(productionNameSQL, query.Row{name})
}

func (s *ResolverSuite) TestResolve() {
	r := NewResolver(s.target, nil)

	s.Run("resolves display name through normalization", func() {
		entry, canonical, err := r.Resolve("Homo sapiens")
		s.Require().NoError(err)
		s.Equal("homo_sapiens", canonical)
		s.Equal("homo_sapiens_core_110_38", entry.Name)
	})

	s.Run("resolves informal alias", func() {
		entry, canonical, err := r.Resolve("human")
		s.Require().NoError(err)
		s.Equal("homo_sapiens", canonical)
		s.Equal("homo_sapiens_core_110_38", entry.Name)
	})

	s.Run("unknown species fails with ErrUnresolved", func() {
		_, canonical, err := r.Resolve("Vulpes vulpes")
		s.Require().ErrorIs(err, ErrUnresolved)
		s.Equal("vulpes_vulpes", canonical)
	})
}

func (s *ResolverSuite) TestCrossCheckProductionName() {
	r := NewResolver(s.target, nil)

	s.Run("matching production name stays silent", func() {
		s.sink.Reset()
		s.stubProductionName("homo_sapiens")

		ok, resolved := r.CrossCheckProductionName(s.ctx, s.cc, "subject", "Homo sapiens")
		s.True(ok)
		s.True(resolved)
		s.Empty(s.sink.Findings())
	})

	s.Run("mismatched production name is a problem", func() {
		s.sink.Reset()
		s.stubProductionName("homo_sapiens_37")

		ok, resolved := r.CrossCheckProductionName(s.ctx, s.cc, "subject", "Homo sapiens")
		s.False(ok)
		s.True(resolved)
		s.Require().Len(s.sink.Problems(), 1)
		s.Contains(s.sink.Problems()[0].Message, "species.production_name")
	})

	s.Run("unresolved species is a problem, not an abort", func() {
		s.sink.Reset()

		ok, resolved := r.CrossCheckProductionName(s.ctx, s.cc, "subject", "Vulpes vulpes")
		s.False(ok)
		s.False(resolved)
		s.Require().Len(s.sink.Problems(), 1)
		s.Contains(s.sink.Problems()[0].Message, "vulpes_vulpes")
	})

	s.Run("unreadable meta table is a problem", func() {
		s.sink.Reset()
		s.human.StubErr(productionNameSQL, context.DeadlineExceeded)

		ok, resolved := r.CrossCheckProductionName(s.ctx, s.cc, "subject", "human")
		s.False(ok)
		s.True(resolved)
		s.Require().Len(s.sink.Problems(), 1)
	})
}

func (s *ResolverSuite) TestCustomAliasFunction() {
	r := NewResolver(s.target, func(string) string { return "homo_sapiens" })

	entry, canonical, err := r.Resolve("anything at all")
	s.Require().NoError(err)
	s.Equal("homo_sapiens", canonical)
	s.Equal("homo_sapiens_core_110_38", entry.Name)
}
