package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/market"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/logger"
)

// KeyPrefix namespaces every key written by the cache
const KeyPrefix = "pfa:"

// Cache is a Redis-backed market.Cache shared between API instances
type Cache struct {
	client *redis.Client
	logger *logger.Logger
}

// NewClient parses a redis:// URL (or a bare host:port) and pings the server
func NewClient(ctx context.Context, redisURL, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{Addr: redisURL}
	}
	if password != "" {
		opts.Password = password
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// NewCache creates a new cache
func NewCache(client *redis.Client, log *logger.Logger) *Cache {
	if log == nil {
		log = logger.Nop()
	}
	return &Cache{
		client: client,
		logger: log.WithComponent("redis_cache"),
	}
}

// Get returns the value stored at key
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("cache miss", "key", key)
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("cache error", "operation", "get", "key", key, "error", err)
		return nil, false, fmt.Errorf("failed to get cached value: %w", err)
	}

	c.logger.Debug("cache hit", "key", key)
	return val, true, nil
}

// Set stores value at key for ttl
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, KeyPrefix+key, value, ttl).Err(); err != nil {
		c.logger.Error("cache error", "operation", "set", "key", key, "error", err)
		return fmt.Errorf("failed to set cached value: %w", err)
	}
	return nil
}

// Delete removes a cached value
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, KeyPrefix+key).Err()
}

// Clear removes every key written by the cache
func (c *Cache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, KeyPrefix+"*", 0).Iterator()

	pipe := c.client.Pipeline()
	count := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		count++
		if count >= 100 {
			if _, err := pipe.Exec(ctx); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			pipe = c.client.Pipeline()
			count = 0
		}
	}

	if count > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}

	return iter.Err()
}

// Health pings the server
func (c *Cache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

var _ market.Cache = (*Cache)(nil)
