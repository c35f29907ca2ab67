// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// Cache defines a generic key/value store with expiry, shared across
// requests. Implementations must treat backend unavailability as an
// error the caller can degrade on, never as a panic.
type Cache interface {
	// Get returns the value for key. The second result reports whether the
	// key was present; an absent key is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key with the given time-to-live.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
