package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Empty(t, cfg.PrimaryDSNs)
	assert.Empty(t, cfg.Groups)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "helixcheck.findings", cfg.KafkaTopic)
	assert.Equal(t, 7*24*time.Hour, cfg.RedisTTL)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("HC_PRIMARY_DSNS", "postgres://host/homo_sapiens_core_110_38, postgres://host/ensembl_compara_110")
	t.Setenv("HC_SECONDARY_DSNS", "postgres://host/ensembl_compara_109")
	t.Setenv("HC_GROUPS", "compara_homology,release")
	t.Setenv("HC_CONCURRENCY", "8")
	t.Setenv("HC_ADDR", ":8080")
	t.Setenv("HC_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("HC_KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("HC_KAFKA_TOPIC", "findings.v2")
	t.Setenv("HC_REDIS_TTL", "24h")

	cfg := FromEnv()

	assert.Equal(t, []string{
		"postgres://host/homo_sapiens_core_110_38",
		"postgres://host/ensembl_compara_110",
	}, cfg.PrimaryDSNs)
	assert.Equal(t, []string{"postgres://host/ensembl_compara_109"}, cfg.SecondaryDSNs)
	assert.Equal(t, []string{"compara_homology", "release"}, cfg.Groups)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "findings.v2", cfg.KafkaTopic)
	assert.Equal(t, 24*time.Hour, cfg.RedisTTL)
}

func TestFromEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("HC_CONCURRENCY", "zero")
	t.Setenv("HC_REDIS_TTL", "-5m")

	cfg := FromEnv()

	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 7*24*time.Hour, cfg.RedisTTL)
}
