package bootstrap

import (
	"context"
	"time"

	"district/internal/cache"
	"district/internal/config"
	"district/internal/logger"
)

// setupCache returns a Redis-backed cache, or a no-op cache when Redis is not configured
// or unreachable.
func (d *Deps) setupCache(ctx context.Context, cfg config.RedisConfig, log logger.Logger) cache.GlobalCache {
	if cfg.Addr == "" {
		log.Info("content_cache_disabled")
		return cache.NewNop()
	}

	client, err := cache.NewClient(ctx, cfg)
	if err != nil {
		log.Warn("content_cache_unavailable", logger.String("redis_addr", cfg.Addr), logger.Error(err))
		return cache.NewNop()
	}
	d.closers = append(d.closers, client.Close)

	log.Info("content_cache_enabled",
		logger.String("redis_addr", cfg.Addr),
		logger.Int("ttl_sec", cfg.TTLSec),
	)
	return cache.NewRedis(client, time.Duration(cfg.TTLSec)*time.Second)
}
