// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fin-mate/backend/internal/application/adapter"
)

// redisCache implements the adapter.Cache interface on top of Redis.
type redisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis-backed cache instance.
func NewRedisCache(client *redis.Client) adapter.Cache {
	return &redisCache{client: client}
}

// Get retrieves the value stored under key. A missing key is reported via
// the boolean, not an error.
func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key with the given time-to-live.
func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes the given keys. Deleting a missing key is not an error.
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
