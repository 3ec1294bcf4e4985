package query

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is a pgx-backed Executor. One Pool exists per registry entry; pools
// are never shared between registries.
type Pool struct {
	pool      *pgxpool.Pool
	name      string
	onFailure func()
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithFailureHook registers a callback invoked once per failed query, e.g.
// to feed a metrics counter.
func WithFailureHook(fn func()) PoolOption {
	return func(p *Pool) {
		p.onFailure = fn
	}
}

// Connect opens a pgx pool for the given DSN and verifies connectivity.
// The executor name defaults to the database name from the DSN.
func Connect(ctx context.Context, dsn string, opts ...PoolOption) (*Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.ConnConfig.Database, err)
	}
	return NewPool(pool, cfg.ConnConfig.Database, opts...), nil
}

// NewPool wraps an existing pgx pool under an explicit name.
func NewPool(pool *pgxpool.Pool, name string, opts ...PoolOption) *Pool {
	p := &Pool{pool: pool, name: name}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pool) Name() string { return p.name }

func (p *Pool) Query(ctx context.Context, sql string, args ...any) ([]Row, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, p.fail(sql, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, p.fail(sql, err)
		}
		out = append(out, Row(values))
	}
	if err := rows.Err(); err != nil {
		return nil, p.fail(sql, err)
	}
	return out, nil
}

func (p *Pool) fail(sql string, err error) error {
	if p.onFailure != nil {
		p.onFailure()
	}
	return &QueryError{SQL: sql, Err: err}
}

// Close releases the underlying pool.
func (p *Pool) Close() { p.pool.Close() }
