package balance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fin-mate/backend/internal/domain/entity"
)

type fakeCache struct {
	values map[string]string
	getErr error
	setErr error
	delErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.values[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	if c.delErr != nil {
		return c.delErr
	}
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

type fakeAccountRepo struct {
	balance  decimal.Decimal
	err      error
	sumCalls int
}

func (r *fakeAccountRepo) Create(_ context.Context, _ *entity.Account) error { return nil }
func (r *fakeAccountRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.Account, error) {
	return nil, nil
}
func (r *fakeAccountRepo) FindByUser(_ context.Context, _ uuid.UUID) ([]*entity.Account, error) {
	return nil, nil
}
func (r *fakeAccountRepo) ExistsByNameAndUser(_ context.Context, _ string, _ uuid.UUID) (bool, error) {
	return false, nil
}
func (r *fakeAccountRepo) SumBalance(_ context.Context, _ uuid.UUID) (decimal.Decimal, error) {
	r.sumCalls++
	return r.balance, r.err
}
func (r *fakeAccountRepo) Update(_ context.Context, _ *entity.Account) error { return nil }
func (r *fakeAccountRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func TestGetComputesAndCachesOnMiss(t *testing.T) {
	cache := newFakeCache()
	repo := &fakeAccountRepo{balance: decimal.RequireFromString("150.50")}
	svc := NewService(repo, cache, 30*time.Minute)
	accountID := uuid.New()

	got, err := svc.Get(context.Background(), accountID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("150.50")) {
		t.Errorf("expected 150.50, got %s", got)
	}
	if repo.sumCalls != 1 {
		t.Errorf("expected one balance computation, got %d", repo.sumCalls)
	}

	key := "account:" + accountID.String() + ":balance"
	if cache.values[key] != "150.5" {
		t.Errorf("expected cached balance, got %q", cache.values[key])
	}
}

func TestGetServesFromCacheWithoutRecomputing(t *testing.T) {
	cache := newFakeCache()
	repo := &fakeAccountRepo{balance: decimal.RequireFromString("999")}
	svc := NewService(repo, cache, 30*time.Minute)
	accountID := uuid.New()

	cache.values["account:"+accountID.String()+":balance"] = "42.10"

	got, err := svc.Get(context.Background(), accountID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("42.10")) {
		t.Errorf("expected cached 42.10, got %s", got)
	}
	if repo.sumCalls != 0 {
		t.Errorf("expected no recomputation, got %d calls", repo.sumCalls)
	}
}

func TestGetRecomputesWhenCachedValueUnreadable(t *testing.T) {
	cache := newFakeCache()
	repo := &fakeAccountRepo{balance: decimal.RequireFromString("7.00")}
	svc := NewService(repo, cache, 30*time.Minute)
	accountID := uuid.New()

	cache.values["account:"+accountID.String()+":balance"] = "not-a-number"

	got, err := svc.Get(context.Background(), accountID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("7.00")) {
		t.Errorf("expected recomputed 7.00, got %s", got)
	}
	if repo.sumCalls != 1 {
		t.Errorf("expected one recomputation, got %d", repo.sumCalls)
	}
}

func TestGetDegradesWhenCacheUnavailable(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("cache down")
	cache.setErr = errors.New("cache down")
	repo := &fakeAccountRepo{balance: decimal.RequireFromString("-12.30")}
	svc := NewService(repo, cache, 30*time.Minute)

	got, err := svc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("expected degraded success, got error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("-12.30")) {
		t.Errorf("expected -12.30, got %s", got)
	}
}

func TestGetPropagatesRepositoryError(t *testing.T) {
	cache := newFakeCache()
	repo := &fakeAccountRepo{err: errors.New("db down")}
	svc := NewService(repo, cache, 30*time.Minute)

	if _, err := svc.Get(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error from repository")
	}
}

func TestInvalidateEvictsOnlyGivenAccounts(t *testing.T) {
	cache := newFakeCache()
	repo := &fakeAccountRepo{}
	svc := NewService(repo, cache, 30*time.Minute)

	first := uuid.New()
	second := uuid.New()
	third := uuid.New()
	cache.values["account:"+first.String()+":balance"] = "1"
	cache.values["account:"+second.String()+":balance"] = "2"
	cache.values["account:"+third.String()+":balance"] = "3"

	svc.Invalidate(context.Background(), first, second)

	if _, ok := cache.values["account:"+first.String()+":balance"]; ok {
		t.Error("expected first account balance to be evicted")
	}
	if _, ok := cache.values["account:"+second.String()+":balance"]; ok {
		t.Error("expected second account balance to be evicted")
	}
	if _, ok := cache.values["account:"+third.String()+":balance"]; !ok {
		t.Error("expected third account balance to remain")
	}
}

func TestInvalidateSwallowsEvictionFailure(t *testing.T) {
	cache := newFakeCache()
	cache.delErr = errors.New("cache down")
	svc := NewService(&fakeAccountRepo{}, cache, 30*time.Minute)

	svc.Invalidate(context.Background(), uuid.New())
}
