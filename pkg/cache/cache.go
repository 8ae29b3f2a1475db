// Package cache provides a small JSON cache-aside helper over Redis.
// A nil *Cache is a valid no-op cache, so callers never need to branch on
// whether caching is enabled.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

// Cache wraps a Redis client with a key prefix and default TTL.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New creates a cache over the given client. A nil client yields a nil
// (no-op) cache.
func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

// Get unmarshals the cached JSON value for key into dst.
// Returns ErrMiss when the key is absent or the cache is disabled.
func (c *Cache) Get(ctx context.Context, key string, dst any) error {
	if c == nil {
		return ErrMiss
	}

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal cached %s: %w", key, err)
	}
	return nil
}

// Set stores v as JSON under key with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, v any) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate removes the given keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.prefix + k
	}

	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
