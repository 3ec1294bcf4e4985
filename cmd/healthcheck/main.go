package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"helixcheck/internal/checks"
	"helixcheck/internal/platform/config"
	"helixcheck/internal/platform/httpserver"
	"helixcheck/internal/platform/logger"
	"helixcheck/internal/platform/metrics"
	"helixcheck/internal/platform/redis"
	"helixcheck/internal/query"
	"helixcheck/internal/registry"
	"helixcheck/internal/report"
	"helixcheck/internal/runner"
	httptransport "helixcheck/internal/transport/http"
)

// main wires configuration, registries, sinks and the runner, then maps the
// run verdict to the process exit code. Check logic lives in internal
// packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	passed, err := run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error("run aborted", slog.Any("error", err))
		os.Exit(2)
	}
	if !passed {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) (bool, error) {
	if len(cfg.PrimaryDSNs) == 0 {
		return false, fmt.Errorf("no primary databases configured; set HC_PRIMARY_DSNS")
	}

	runID := uuid.New()
	m := metrics.New()

	primary, closePrimary, err := openRegistry(ctx, cfg.PrimaryDSNs, m)
	if err != nil {
		return false, fmt.Errorf("open primary registry: %w", err)
	}
	defer closePrimary()

	secondary, closeSecondary, err := openRegistry(ctx, cfg.SecondaryDSNs, m)
	if err != nil {
		return false, fmt.Errorf("open secondary registry: %w", err)
	}
	defer closeSecondary()

	memory := report.NewMemory()
	sinks := report.Multi{memory, report.NewLogger(log)}

	if cfg.RedisURL != "" {
		client, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return false, fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		sinks = append(sinks, report.NewRedis(client, runID.String(),
			report.WithRedisTTL(cfg.RedisTTL),
			report.WithRedisLogger(log),
		))
	}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := report.NewKafka(ctx, cfg.KafkaBrokers, cfg.KafkaTopic, runID.String(),
			report.WithKafkaLogger(log))
		if err != nil {
			return false, fmt.Errorf("connect kafka: %w", err)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := kafka.Close(flushCtx); err != nil {
				log.Error("flush kafka findings", slog.Any("error", err))
			}
		}()
		sinks = append(sinks, kafka)
	}

	selected := checks.Select(checks.Defaults(), cfg.Groups)
	r, err := runner.New(selected, report.NewInstrumented(sinks, m),
		runner.WithRunID(runID),
		runner.WithLogger(log),
		runner.WithMetrics(m),
		runner.WithConcurrency(cfg.Concurrency),
	)
	if err != nil {
		return false, err
	}

	result, err := r.Run(ctx, checks.Environment{Primary: primary, Secondary: secondary})
	if err != nil {
		return false, err
	}

	if cfg.Addr != "" {
		if err := serve(ctx, cfg.Addr, memory, result, log); err != nil {
			return false, err
		}
	}
	return result.Passed(), nil
}

// openRegistry connects every DSN and classifies each database by name. An
// empty DSN list yields an empty registry, not an error; comparison checks
// report the absence themselves.
func openRegistry(ctx context.Context, dsns []string, m *metrics.Metrics) (*registry.Registry, func(), error) {
	reg := registry.New()
	var pools []*query.Pool
	closeAll := func() {
		for _, p := range pools {
			p.Close()
		}
	}
	for _, dsn := range dsns {
		pool, err := query.Connect(ctx, dsn, query.WithFailureHook(m.RecordQueryFailure))
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		pools = append(pools, pool)
		reg.Add(registry.NewEntry(pool))
	}
	return reg, closeAll, nil
}

func serve(ctx context.Context, addr string, memory *report.Memory, result *runner.Result, log *slog.Logger) error {
	handler := httptransport.New(memory, func() *runner.Result { return result }, log)
	srv := httpserver.New(addr, httptransport.NewRouter(handler))

	log.Info("serving run report", slog.String("addr", addr), slog.String("run_id", result.RunID.String()))

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
