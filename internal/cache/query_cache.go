// Package cache is the redis-backed read cache for list queries. Keys are
// namespaced per resource kind so a mutation can drop the whole family with
// one scan. Cache trouble degrades to a direct read, never to a request
// failure.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// QueryCache caches serialized list results under cache:<resource>:<key>.
type QueryCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewQueryCache creates a QueryCache. A nil client disables caching.
func NewQueryCache(rdb *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *QueryCache {
	if prefix == "" {
		prefix = "cache"
	}
	return &QueryCache{rdb: rdb, prefix: prefix, ttl: ttl, logger: logger}
}

// Enabled reports whether a redis client is configured.
func (c *QueryCache) Enabled() bool { return c != nil && c.rdb != nil }

func (c *QueryCache) key(resource, key string) string {
	return fmt.Sprintf("%s:%s:%s", c.prefix, resource, key)
}

// Get loads a cached result into dest. It returns false on miss or any
// cache error.
func (c *QueryCache) Get(ctx context.Context, resource, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.rdb.Get(ctx, c.key(resource, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", zap.String("resource", resource), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("cache entry corrupt, dropping", zap.String("resource", resource), zap.Error(err))
		_ = c.rdb.Del(ctx, c.key(resource, key)).Err()
		return false
	}
	return true
}

// Set stores a result under the resource's key family.
func (c *QueryCache) Set(ctx context.Context, resource, key string, val any) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		c.logger.Warn("cache marshal failed", zap.String("resource", resource), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, c.key(resource, key), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("resource", resource), zap.Error(err))
	}
}

// InvalidateResource removes every cached read for the resource kind.
func (c *QueryCache) InvalidateResource(ctx context.Context, resource string) error {
	if !c.Enabled() {
		return nil
	}
	pattern := fmt.Sprintf("%s:%s:*", c.prefix, resource)
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan failed for %s: %w", resource, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete failed for %s: %w", resource, err)
	}
	return nil
}
