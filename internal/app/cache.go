package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/peaks-baseball/internal/config"
	basecache "github.com/riskibarqy/peaks-baseball/internal/platform/cache"
	"github.com/riskibarqy/peaks-baseball/internal/platform/logging"
	"github.com/riskibarqy/peaks-baseball/internal/platform/resilience"
)

const redisKeyPrefix = "peaks:"

// openCacheStore returns a nil store when caching is disabled. Without
// REDIS_URL the cache is process local.
func openCacheStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (*basecache.Store, func(), error) {
	noop := func() {}
	if !cfg.CacheEnabled {
		logger.Info("cache disabled", "reason", "CACHE_ENABLED=false")
		return nil, noop, nil
	}

	if strings.TrimSpace(cfg.RedisURL) == "" {
		logger.Info("cache enabled", "backend", "memory", "ttl", cfg.CacheTTL.String())
		return basecache.NewStore(basecache.NewMemoryBackend(), cfg.CacheTTL, logger), noop, nil
	}

	client, err := basecache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis cache: %w", err)
	}

	breaker := resilience.FromSettings(resilience.Settings{
		Enabled:          cfg.CacheCircuitEnabled,
		FailureThreshold: cfg.CacheCircuitFailureCount,
		OpenTimeout:      cfg.CacheCircuitOpenTimeout,
		HalfOpenProbes:   cfg.CacheCircuitHalfOpenMaxReq,
	})
	backend := basecache.NewRedisBackend(client, redisKeyPrefix, breaker)

	logger.Info("cache enabled",
		"backend", "redis",
		"ttl", cfg.CacheTTL.String(),
		"circuit_enabled", breaker != nil,
	)

	closeClient := func() {
		if err := client.Close(); err != nil {
			logger.Warn("close redis client", "error", err)
		}
	}
	return basecache.NewStore(backend, cfg.CacheTTL, logger), closeClient, nil
}
