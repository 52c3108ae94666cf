// Package cache keeps recently read CMS globals in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"district/internal/config"
)

// ErrEmptyAddress is returned when Redis address is not configured.
var ErrEmptyAddress = errors.New("redis address is required")

const (
	connectionTimeout = 5 * time.Second
	keyPrefix         = "district:global:"
)

// GlobalCache stores raw global documents by slug. A miss is (nil, false, nil).
type GlobalCache interface {
	Get(ctx context.Context, slug string) (map[string]any, bool, error)
	Set(ctx context.Context, slug string, data map[string]any) error
	Delete(ctx context.Context, slug string) error
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, ErrEmptyAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis returns a GlobalCache whose entries expire after ttl.
func NewRedis(client *redis.Client, ttl time.Duration) GlobalCache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, slug string) (map[string]any, bool, error) {
	b, err := c.client.Get(ctx, keyPrefix+slug).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", slug, err)
	}
	var data map[string]any
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, false, fmt.Errorf("decode cached %s: %w", slug, err)
	}
	return data, true, nil
}

func (c *redisCache) Set(ctx context.Context, slug string, data map[string]any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", slug, err)
	}
	if err := c.client.Set(ctx, keyPrefix+slug, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", slug, err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, keyPrefix+slug).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", slug, err)
	}
	return nil
}

type nopCache struct{}

// NewNop returns a cache that never stores anything.
func NewNop() GlobalCache { return nopCache{} }

func (nopCache) Get(context.Context, string) (map[string]any, bool, error) { return nil, false, nil }
func (nopCache) Set(context.Context, string, map[string]any) error { return nil }
func (nopCache) Delete(context.Context, string) error { return nil }
