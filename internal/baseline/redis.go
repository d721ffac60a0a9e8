package baseline

import (
	"context"
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/garrettladley/pulse/internal/health"
)

const cacheKeyPrefix = "pulse:baseline:"

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) key(metric health.MetricType) string {
	return cacheKeyPrefix + string(metric)
}

func (c *RedisCache) Get(ctx context.Context, metric health.MetricType) (Stats, error) {
	data, err := c.client.Get(ctx, c.key(metric)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Stats{}, ErrNotCached
	}
	if err != nil {
		return Stats{}, fmt.Errorf("get baseline: %w", err)
	}

	var stats Stats
	if err := go_json.Unmarshal(data, &stats); err != nil {
		return Stats{}, fmt.Errorf("unmarshal baseline: %w", err)
	}
	return stats, nil
}

func (c *RedisCache) Set(ctx context.Context, metric health.MetricType, stats Stats, ttl time.Duration) error {
	data, err := go_json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal baseline: %w", err)
	}
	if err := c.client.Set(ctx, c.key(metric), data, ttl).Err(); err != nil {
		return fmt.Errorf("set baseline: %w", err)
	}
	return nil
}
