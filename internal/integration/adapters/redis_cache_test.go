package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *redisCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, &redisCache{client: client}
}

func TestRedisCacheSetGet(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	value, ok, err := cache.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || value != "v" {
		t.Errorf("expected (v, true), got (%q, %v)", value, ok)
	}
}

func TestRedisCacheGetMissing(t *testing.T) {
	_, cache := newTestCache(t)

	_, ok, err := cache.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("a miss must not be an error, got %v", err)
	}
	if ok {
		t.Error("expected a miss")
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	mr, cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", "v", time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Second)

	_, ok, err := cache.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected entry to expire")
	}
}

func TestRedisCacheDelete(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	_ = cache.Set(ctx, "a", "1", time.Minute)
	_ = cache.Set(ctx, "b", "2", time.Minute)

	if err := cache.Delete(ctx, "a", "b", "missing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok, _ := cache.Get(ctx, "a"); ok {
		t.Error("expected a deleted")
	}
	if _, ok, _ := cache.Get(ctx, "b"); ok {
		t.Error("expected b deleted")
	}
}

func TestRedisCacheDeleteNoKeys(t *testing.T) {
	_, cache := newTestCache(t)

	if err := cache.Delete(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
