package report

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "hc:run:"

// Redis appends findings to a run-scoped list so a presentation layer can
// read a run back after the process has exited. Failures to record are
// logged and swallowed; the sink never fails the reporting check.
type Redis struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	log    *slog.Logger
}

// RedisOption configures a Redis sink.
type RedisOption func(*Redis)

// WithRedisTTL overrides the retention of the run's finding list.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithRedisLogger sets the logger used for recording failures.
func WithRedisLogger(log *slog.Logger) RedisOption {
	return func(r *Redis) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRedis constructs a sink storing findings under the given run ID.
func NewRedis(client *redis.Client, runID string, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		key:    redisKeyPrefix + runID + ":findings",
		ttl:    7 * 24 * time.Hour,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) Problem(ctx context.Context, subject, message string) {
	r.push(ctx, Finding{Severity: SeverityProblem, Subject: subject, Message: message, At: time.Now()})
}

func (r *Redis) OK(ctx context.Context, subject, message string) {
	r.push(ctx, Finding{Severity: SeverityOK, Subject: subject, Message: message, At: time.Now()})
}

func (r *Redis) push(ctx context.Context, f Finding) {
	payload, err := json.Marshal(f)
	if err != nil {
		r.log.ErrorContext(ctx, "marshal finding", slog.String("subject", f.Subject), slog.Any("error", err))
		return
	}
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, r.key, payload)
	pipe.Expire(ctx, r.key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		r.log.ErrorContext(ctx, "record finding", slog.String("subject", f.Subject), slog.Any("error", err))
	}
}

// Findings reads a run's findings back, oldest first.
func (r *Redis) Findings(ctx context.Context) ([]Finding, error) {
	raw, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Finding, 0, len(raw))
	for _, item := range raw {
		var f Finding
		if err := json.Unmarshal([]byte(item), &f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
