// Package app assembles the render pipeline from configuration. The server
// and the CLI share it so both render through identical stacks.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"birl/internal/composer/cache"
	"birl/internal/composer/compositor"
	"birl/internal/composer/fetch"
	"birl/internal/composer/metrics"
	"birl/internal/composer/models"
	"birl/internal/composer/ports"
	"birl/internal/composer/service"
	"birl/internal/composer/store/durable"
	"birl/internal/composer/store/origin"
	"birl/internal/platform/config"
	platformredis "birl/internal/platform/redis"
)

// HealthChecker is implemented by dependencies that can be probed.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// App is a wired render pipeline.
type App struct {
	Service *service.Service
	Cache   *cache.Cache
	Origin  ports.OriginStore
	Metrics *metrics.Metrics

	redis  *platformredis.Client
	logger *slog.Logger
}

// New builds the pipeline described by cfg. A nil reg disables metrics.
func New(ctx context.Context, cfg config.Server, logger *slog.Logger, reg prometheus.Registerer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &App{logger: logger}
	if reg != nil {
		a.Metrics = metrics.NewWithRegisterer(reg)
	}

	store, err := newOrigin(cfg)
	if err != nil {
		return nil, err
	}
	a.Origin = store

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	a.redis = redisClient

	var tier2 ports.DurableTier
	if redisClient != nil {
		tier2 = durable.NewRedis(redisClient.Client, durable.WithKeyPrefix(cfg.Namespace+":"))
		logger.InfoContext(ctx, "tier 2 cache backed by redis")
	} else {
		tier2 = durable.NewObject(store, cfg.Namespace)
		logger.InfoContext(ctx, "tier 2 cache backed by origin store", "storage", cfg.Storage)
	}

	fast, err := cache.NewLRU(cfg.Cache.Tier1Capacity)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}
	a.Cache, err = cache.New(fast, tier2, cache.WithLogger(logger), cache.WithMetrics(a.Metrics))
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}

	fetcher, err := fetch.New(store, cfg.Namespace,
		fetch.WithCache(a.Cache),
		fetch.WithConcurrency(cfg.Fetch.Concurrency),
		fetch.WithTimeout(cfg.Fetch.Timeout),
		fetch.WithLogger(logger),
		fetch.WithMetrics(a.Metrics),
	)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}

	comp, err := compositor.New(compositor.NewCodec(cfg.Image.JPEGQuality))
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}

	format, err := models.ParseFormat(cfg.Image.Format, models.FormatJPEG)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("BIRL_OUTPUT_FORMAT: %w", err), a.Close())
	}

	a.Service, err = service.New(a.Cache, fetcher, comp,
		service.WithLogger(logger),
		service.WithMetrics(a.Metrics),
		service.WithDefaultFormat(format),
		service.WithCatalog(store, cfg.Namespace),
	)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}
	return a, nil
}

func newOrigin(cfg config.Server) (ports.OriginStore, error) {
	switch cfg.Storage {
	case config.StorageLocal:
		store, err := origin.NewLocalFS(cfg.LocalRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to open local origin: %w", err)
		}
		return store, nil
	case config.StorageMinio:
		store, err := origin.NewMinio(cfg.Minio)
		if err != nil {
			return nil, fmt.Errorf("failed to open minio origin: %w", err)
		}
		return store, nil
	case config.StorageMemory:
		return origin.NewInMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
}

// HealthChecks lists the probes for the dependencies in use.
func (a *App) HealthChecks() map[string]HealthChecker {
	checks := make(map[string]HealthChecker)
	if hc, ok := a.Origin.(HealthChecker); ok {
		checks["origin"] = hc
	}
	if a.redis != nil {
		checks["redis"] = a.redis
	}
	return checks
}

// Close releases connections held by the pipeline.
func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	err := a.redis.Close()
	a.redis = nil
	return err
}
