// Package cache implements the next billing date memo on Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/subscription-tracker/backend/config"
	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/domain/billing"
)

const (
	keyPrefix = "billing:next:"
	minTTL    = time.Minute
	maxTTL    = 24 * time.Hour
)

// redisBillingDateCache implements adapter.BillingDateCache on Redis.
type redisBillingDateCache struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewRedisBillingDateCache creates a BillingDateCache backed by client.
func NewRedisBillingDateCache(client redis.Cmdable) adapter.BillingDateCache {
	return &redisBillingDateCache{
		client: client,
		now:    time.Now,
	}
}

// Key returns the Redis key for a next billing date lookup.
func Key(anchor time.Time, period string, today time.Time) string {
	return keyPrefix + billing.FormatDate(anchor) + ":" + period + ":" + billing.FormatDate(today)
}

// Get returns the cached date. Redis errors are logged and reported as a miss.
func (c *redisBillingDateCache) Get(ctx context.Context, anchor time.Time, period string, today time.Time) (time.Time, bool) {
	value, err := c.client.Get(ctx, Key(anchor, period, today)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("Billing date cache read failed", "error", err)
		}
		return time.Time{}, false
	}

	next, err := billing.ParseDate(value)
	if err != nil {
		slog.Warn("Discarding malformed cached billing date", "value", value, "error", err)
		return time.Time{}, false
	}
	return next, true
}

// Set stores the date until the end of today.
func (c *redisBillingDateCache) Set(ctx context.Context, anchor time.Time, period string, today time.Time, next time.Time) {
	ttl := today.AddDate(0, 0, 1).Sub(c.now())
	if ttl < minTTL {
		ttl = minTTL
	}
	if ttl > maxTTL {
		ttl = maxTTL
	}

	if err := c.client.Set(ctx, Key(anchor, period, today), billing.FormatDate(next), ttl).Err(); err != nil {
		slog.Warn("Billing date cache write failed", "error", err)
	}
}

// noopBillingDateCache never stores anything.
type noopBillingDateCache struct{}

// NewNoopBillingDateCache creates a cache that always misses.
func NewNoopBillingDateCache() adapter.BillingDateCache {
	return noopBillingDateCache{}
}

func (noopBillingDateCache) Get(context.Context, time.Time, string, time.Time) (time.Time, bool) {
	return time.Time{}, false
}

func (noopBillingDateCache) Set(context.Context, time.Time, string, time.Time, time.Time) {}

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	slog.Info("Connected to Redis", "addr", opts.Addr, "db", opts.DB)
	return client, nil
}
