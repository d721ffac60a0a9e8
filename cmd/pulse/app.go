package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/garrettladley/pulse/internal/baseline"
	"github.com/garrettladley/pulse/internal/config"
	"github.com/garrettladley/pulse/internal/engine"
	"github.com/garrettladley/pulse/internal/ingest"
	"github.com/garrettladley/pulse/internal/paths"
	"github.com/garrettladley/pulse/internal/redis"
	"github.com/garrettladley/pulse/internal/source"
	"github.com/garrettladley/pulse/internal/storage"
	"github.com/garrettladley/pulse/internal/xslog"
)

// app wires the source, caches, stores, engine, and ingest service from
// config.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	source  *source.SQLiteSource
	store   storage.SnapshotStore
	engine  *engine.Engine
	ingest  *ingest.Service
	cleanup []func() error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	logger := xslog.NewLoggerFromEnv(os.Stderr)

	a := &app{cfg: cfg, logger: logger}

	samplePath := cfg.SampleDBPath
	if samplePath == "" {
		if samplePath, err = paths.SampleDB(); err != nil {
			return nil, err
		}
	}
	a.source, err = source.OpenSQLite(samplePath)
	if err != nil {
		return nil, err
	}
	a.cleanup = append(a.cleanup, a.source.Close)

	var cache baseline.Cache = baseline.NewMemoryCache()
	if cfg.RedisURL != "" {
		client, err := redis.New(ctx, redis.Config{URL: cfg.RedisURL})
		if err != nil {
			a.close()
			return nil, err
		}
		a.cleanup = append(a.cleanup, client.Close)
		cache = baseline.NewRedisCache(client)
	}
	baselines := baseline.NewEngine(cache, cfg.BaselineCacheTTL)

	if cfg.PostgresURL != "" {
		a.store, err = storage.OpenPostgres(ctx, cfg.PostgresURL)
	} else {
		snapshotPath := cfg.SnapshotDBPath
		if snapshotPath == "" {
			if snapshotPath, err = paths.SnapshotDB(); err != nil {
				a.close()
				return nil, err
			}
		}
		a.store, err = storage.OpenSQLite(snapshotPath)
	}
	if err != nil {
		a.close()
		return nil, err
	}
	a.cleanup = append(a.cleanup, a.store.Close)

	a.engine = engine.New(baselines, a.store, logger, engine.WithDebounce(cfg.DebounceWindow))
	a.ingest = ingest.NewService(a.source, a.engine)
	return a, nil
}

func (a *app) close() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		if err := a.cleanup[i](); err != nil {
			a.logger.Warn("cleanup failed", xslog.Error(err))
		}
	}
}
