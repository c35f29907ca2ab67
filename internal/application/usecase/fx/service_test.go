package fx

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type fakeCache struct {
	values  map[string]string
	getErr  error
	setErr  error
	setKeys []string
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
	c.setKeys = append(c.setKeys, key)
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

type fakeSource struct {
	rates map[string]decimal.Decimal
	err   error
	calls int
}

func (s *fakeSource) FetchDaily(_ context.Context, _ time.Time) (map[string]decimal.Decimal, error) {
	s.calls++
	return s.rates, s.err
}

var testDay = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestService(cache *fakeCache, source *fakeSource) *Service {
	svc := NewService(cache, source, Config{
		BaseCurrency: "UAH",
		CacheTTL:     12 * time.Hour,
		StaticRates: map[string]decimal.Decimal{
			"USD": decimal.RequireFromString("41.20"),
			"EUR": decimal.RequireFromString("48.00"),
		},
	})
	svc.now = func() time.Time { return testDay }
	return svc
}

func snapshotJSON(t *testing.T, rates map[string]string) string {
	t.Helper()
	raw, err := json.Marshal(rates)
	if err != nil {
		t.Fatal(err)
	}
	return string(raw)
}

func TestGetRatesFetchesAndCachesTodaySnapshot(t *testing.T) {
	cache := newFakeCache()
	source := &fakeSource{rates: map[string]decimal.Decimal{
		"USD": decimal.RequireFromString("41.55"),
		"EUR": decimal.RequireFromString("48.10"),
	}}
	svc := newTestService(cache, source)

	rates := svc.GetRates(context.Background(), []string{"usd"})

	if got := rates["USD"]; !got.Equal(decimal.RequireFromString("41.55")) {
		t.Errorf("expected fetched USD rate, got %s", got)
	}
	if got := rates["UAH"]; !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected base currency rate 1, got %s", got)
	}
	if _, ok := rates["EUR"]; ok {
		t.Error("EUR was not requested, should not be returned")
	}
	if _, ok := cache.values["fxrates:2025-03-10"]; !ok {
		t.Error("expected today's snapshot to be cached")
	}
}

func TestGetRatesUsesTodayCacheWithoutFetching(t *testing.T) {
	cache := newFakeCache()
	cache.values["fxrates:2025-03-10"] = snapshotJSON(t, map[string]string{"USD": "41.30"})
	source := &fakeSource{err: errors.New("should not be called")}
	svc := newTestService(cache, source)

	rates := svc.GetRates(context.Background(), []string{"USD"})

	if source.calls != 0 {
		t.Errorf("expected no source calls, got %d", source.calls)
	}
	if got := rates["USD"]; !got.Equal(decimal.RequireFromString("41.30")) {
		t.Errorf("expected cached USD rate, got %s", got)
	}
}

func TestGetRatesFallsBackToYesterdaySnapshot(t *testing.T) {
	cache := newFakeCache()
	cache.values["fxrates:2025-03-09"] = snapshotJSON(t, map[string]string{"USD": "41.00"})
	source := &fakeSource{err: errors.New("gateway timeout")}
	svc := newTestService(cache, source)

	rates := svc.GetRates(context.Background(), []string{"USD"})

	if got := rates["USD"]; !got.Equal(decimal.RequireFromString("41.00")) {
		t.Errorf("expected yesterday's USD rate, got %s", got)
	}
	if source.calls != 1 {
		t.Errorf("expected exactly one fetch attempt, got %d", source.calls)
	}
	// The fallback data is re-cached under today's key.
	if _, ok := cache.values["fxrates:2025-03-10"]; !ok {
		t.Error("expected fallback snapshot to be cached under today's key")
	}
}

func TestGetRatesFallsBackToStaticTable(t *testing.T) {
	cache := newFakeCache()
	source := &fakeSource{err: errors.New("down")}
	svc := newTestService(cache, source)

	rates := svc.GetRates(context.Background(), []string{"USD", "EUR", "GBP"})

	if got := rates["USD"]; !got.Equal(decimal.RequireFromString("41.20")) {
		t.Errorf("expected static USD rate, got %s", got)
	}
	if got := rates["EUR"]; !got.Equal(decimal.RequireFromString("48.00")) {
		t.Errorf("expected static EUR rate, got %s", got)
	}
	if _, ok := rates["GBP"]; ok {
		t.Error("unresolvable code must be omitted, not defaulted")
	}
	if got := rates["UAH"]; !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("base currency must always resolve to 1, got %s", got)
	}
}

func TestGetRatesBasePresentEvenWhenEverythingFails(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("cache backend down")
	source := &fakeSource{err: errors.New("source down")}
	svc := newTestService(cache, source)
	svc.cfg.StaticRates = nil

	rates := svc.GetRates(context.Background(), []string{"USD"})

	if len(rates) != 1 {
		t.Fatalf("expected only the base currency, got %v", rates)
	}
	if got := rates["UAH"]; !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected base rate 1, got %s", got)
	}
}

func TestGetRatesSourceRatesWinOverStaticTable(t *testing.T) {
	cache := newFakeCache()
	source := &fakeSource{rates: map[string]decimal.Decimal{
		"USD": decimal.RequireFromString("42.01"),
	}}
	svc := newTestService(cache, source)

	rates := svc.GetRates(context.Background(), []string{"USD", "EUR"})

	if got := rates["USD"]; !got.Equal(decimal.RequireFromString("42.01")) {
		t.Errorf("expected live USD rate to win, got %s", got)
	}
	// EUR missing from the live snapshot still resolves statically.
	if got := rates["EUR"]; !got.Equal(decimal.RequireFromString("48.00")) {
		t.Errorf("expected static EUR rate, got %s", got)
	}
}
