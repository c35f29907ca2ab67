// Package redis provides the Redis client used as the shared cache backend.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fin-mate/backend/config"
)

// NewClient creates a Redis client from configuration. The connection is
// pinged once at startup; a failed ping is reported but not fatal, as
// every cache consumer degrades to its underlying source.
func NewClient(cfg *config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.URL,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis connection failed, caching degraded", "error", err)
	} else {
		slog.Info("Redis connection established", "addr", cfg.URL)
	}

	return client
}

// HealthCheck reports whether the Redis backend answers a ping.
func HealthCheck(client *redis.Client) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return client.Ping(ctx).Err() == nil
}

// Close closes the Redis client connection.
func Close(client *redis.Client) error {
	if err := client.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection: %w", err)
	}

	slog.Info("Redis connection closed")
	return nil
}
