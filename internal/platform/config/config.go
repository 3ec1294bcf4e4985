package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the healthcheck runner needs from the
// environment so main stays lean.
type Config struct {
	// PrimaryDSNs are the current-release databases under check.
	PrimaryDSNs []string
	// SecondaryDSNs are the reference-release databases used for regression
	// comparison. May be empty; comparison checks then report the absence.
	SecondaryDSNs []string
	// Groups restricts which check groups run; empty means all.
	Groups []string
	// Concurrency bounds how many checks run at once.
	Concurrency int
	// Addr, when set, serves /healthz, /metrics and /report after the run
	// instead of exiting.
	Addr string
	// RedisURL, when set, mirrors findings into Redis for later reading.
	RedisURL string
	// KafkaBrokers and KafkaTopic, when set, publish findings to Kafka.
	KafkaBrokers []string
	KafkaTopic   string
	// RedisTTL bounds retention of findings stored in Redis.
	RedisTTL time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		PrimaryDSNs:   splitList(os.Getenv("HC_PRIMARY_DSNS")),
		SecondaryDSNs: splitList(os.Getenv("HC_SECONDARY_DSNS")),
		Groups:        splitList(os.Getenv("HC_GROUPS")),
		Concurrency:   4,
		Addr:          os.Getenv("HC_ADDR"),
		RedisURL:      os.Getenv("HC_REDIS_URL"),
		KafkaBrokers:  splitList(os.Getenv("HC_KAFKA_BROKERS")),
		KafkaTopic:    os.Getenv("HC_KAFKA_TOPIC"),
		RedisTTL:      7 * 24 * time.Hour,
	}
	if n, err := strconv.Atoi(os.Getenv("HC_CONCURRENCY")); err == nil && n > 0 {
		cfg.Concurrency = n
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = "helixcheck.findings"
	}
	if ttl, err := time.ParseDuration(os.Getenv("HC_REDIS_TTL")); err == nil && ttl > 0 {
		cfg.RedisTTL = ttl
	}
	return cfg
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
