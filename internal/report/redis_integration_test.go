//go:build integration

package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"helixcheck/internal/report"
	"helixcheck/pkg/testutil/containers"
)

type RedisSinkIntegrationSuite struct {
	suite.Suite
	ctx   context.Context
	redis *containers.RedisContainer
}

func TestRedisSinkIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisSinkIntegrationSuite))
}

func (s *RedisSinkIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *RedisSinkIntegrationSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

func (s *RedisSinkIntegrationSuite) TestRoundTrip() {
	sink := report.NewRedis(s.redis.Client, uuid.NewString())

	sink.Problem(s.ctx, "ensembl_compara_110", "species set \"mammals\" is missing")
	sink.OK(s.ctx, "homo_sapiens_core_110_38", "all genes are on toplevel seq regions")

	findings, err := sink.Findings(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(findings, 2)

	s.Equal(report.SeverityProblem, findings[0].Severity)
	s.Equal("ensembl_compara_110", findings[0].Subject)
	s.Equal(report.SeverityOK, findings[1].Severity)
	s.WithinDuration(time.Now(), findings[0].At, time.Minute)
}

func (s *RedisSinkIntegrationSuite) TestRunsAreScopedByRunID() {
	first := report.NewRedis(s.redis.Client, uuid.NewString())
	second := report.NewRedis(s.redis.Client, uuid.NewString())

	first.Problem(s.ctx, "subject", "only in the first run")

	findings, err := second.Findings(s.ctx)
	s.Require().NoError(err)
	s.Empty(findings)
}

func (s *RedisSinkIntegrationSuite) TestFindingsCarryATTL() {
	sink := report.NewRedis(s.redis.Client, "ttl-run", report.WithRedisTTL(time.Hour))
	sink.OK(s.ctx, "subject", "fine")

	ttl, err := s.redis.Client.TTL(s.ctx, "hc:run:ttl-run:findings").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Hour)
}
