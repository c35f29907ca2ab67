// Package fx provides best-effort exchange-rate resolution with a
// same-day cache, previous-day fallback and a static configured table.
package fx

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fin-mate/backend/internal/application/adapter"
)

// snapshotKeyPrefix is the cache key prefix for daily rate snapshots.
const snapshotKeyPrefix = "fxrates:"

// Config holds the rate-provider configuration.
type Config struct {
	// BaseCurrency is the fixed currency all totals are normalized to.
	// It always resolves to rate 1.
	BaseCurrency string

	// CacheTTL bounds how long a daily snapshot is served from cache.
	CacheTTL time.Duration

	// StaticRates is the configured fallback table consulted for codes
	// that neither the external source nor the cached snapshots resolve.
	StaticRates map[string]decimal.Decimal
}

// Service resolves exchange rates for requested currency codes.
// It is an enrichment service: source failures are swallowed and the
// fallback chain is consulted instead, so callers never see an error.
type Service struct {
	cache  adapter.Cache
	source adapter.RateSource
	cfg    Config
	now    func() time.Time
}

// NewService creates a new rate provider Service.
func NewService(cache adapter.Cache, source adapter.RateSource, cfg Config) *Service {
	return &Service{
		cache:  cache,
		source: source,
		cfg:    cfg,
		now:    time.Now,
	}
}

// GetRates resolves rates for the requested codes plus the base currency.
// Resolution order: today's cached snapshot, then a single fetch from the
// external source (cached on success), then yesterday's cached snapshot
// (no re-fetch), then the static table per missing code. The base currency
// is always present with rate exactly 1. Codes that remain unresolved are
// omitted from the result.
func (s *Service) GetRates(ctx context.Context, codes []string) map[string]decimal.Decimal {
	requested := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if c == "" {
			continue
		}
		requested[strings.ToUpper(c)] = struct{}{}
	}

	today := s.now().UTC()

	rates := s.cachedSnapshot(ctx, today)
	if len(rates) == 0 {
		fetched, err := s.source.FetchDaily(ctx, today)
		if err != nil {
			slog.Debug("rate source fetch failed", "error", err)
		}
		if len(fetched) > 0 {
			rates = fetched
		} else {
			rates = s.cachedSnapshot(ctx, today.AddDate(0, 0, -1))
		}
		if len(rates) > 0 {
			s.storeSnapshot(ctx, today, rates)
		}
	}

	resolved := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		resolved[code] = rate
	}
	resolved[s.cfg.BaseCurrency] = decimal.NewFromInt(1)

	for code := range requested {
		if _, ok := resolved[code]; ok {
			continue
		}
		if static, ok := s.cfg.StaticRates[code]; ok {
			resolved[code] = static
		}
	}

	requested[s.cfg.BaseCurrency] = struct{}{}

	out := make(map[string]decimal.Decimal, len(requested))
	for code := range requested {
		if rate, ok := resolved[code]; ok {
			out[code] = rate
		}
	}
	return out
}

// cachedSnapshot loads the snapshot cached for the given date, returning
// nil when absent, unreadable or the cache backend is down.
func (s *Service) cachedSnapshot(ctx context.Context, date time.Time) map[string]decimal.Decimal {
	raw, ok, err := s.cache.Get(ctx, snapshotKey(date))
	if err != nil {
		slog.Warn("rate snapshot cache read failed", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var snapshot map[string]decimal.Decimal
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		slog.Debug("discarding unreadable rate snapshot", "key", snapshotKey(date), "error", err)
		return nil
	}
	return snapshot
}

// storeSnapshot caches the snapshot under the given date's key. Failures
// only cost a re-fetch on the next call.
func (s *Service) storeSnapshot(ctx context.Context, date time.Time, rates map[string]decimal.Decimal) {
	raw, err := json.Marshal(rates)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, snapshotKey(date), string(raw), s.cfg.CacheTTL); err != nil {
		slog.Warn("rate snapshot cache write failed", "error", err)
	}
}

func snapshotKey(date time.Time) string {
	return snapshotKeyPrefix + date.Format("2006-01-02")
}
