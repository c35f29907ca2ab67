// Package balance provides the read-through account balance cache.
// Balances are derived from transactions, never stored on the account
// row, and cached per account with event-driven invalidation.
package balance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fin-mate/backend/internal/application/adapter"
)

// Invalidator evicts cached balances after transaction writes. Use cases
// that mutate transactions depend on this rather than on the full Service.
type Invalidator interface {
	// Invalidate drops the cached balance of each given account.
	Invalidate(ctx context.Context, accountIDs ...uuid.UUID)
}

// Service computes account balances through a cache-aside tier. Cache
// failures degrade to direct computation, never to an error.
type Service struct {
	accountRepo adapter.AccountRepository
	cache       adapter.Cache
	ttl         time.Duration
}

// NewService creates a new balance Service.
func NewService(accountRepo adapter.AccountRepository, cache adapter.Cache, ttl time.Duration) *Service {
	return &Service{
		accountRepo: accountRepo,
		cache:       cache,
		ttl:         ttl,
	}
}

// Get returns the account's derived balance, serving from cache when a
// valid entry exists and recomputing (then caching) otherwise.
func (s *Service) Get(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	key := balanceKey(accountID)

	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("balance cache read failed", "account_id", accountID, "error", err)
	} else if ok {
		cached, parseErr := decimal.NewFromString(raw)
		if parseErr == nil {
			return cached, nil
		}
		slog.Debug("discarding unreadable cached balance", "account_id", accountID, "error", parseErr)
	}

	balance, err := s.accountRepo.SumBalance(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	if err := s.cache.Set(ctx, key, balance.String(), s.ttl); err != nil {
		slog.Warn("balance cache write failed", "account_id", accountID, "error", err)
	}
	return balance, nil
}

// Invalidate drops the cached balance of each given account. Eviction
// failures are logged and swallowed; a stale entry expires with its TTL.
func (s *Service) Invalidate(ctx context.Context, accountIDs ...uuid.UUID) {
	if len(accountIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		keys = append(keys, balanceKey(id))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		slog.Warn("balance cache eviction failed", "account_ids", accountIDs, "error", err)
	}
}

func balanceKey(accountID uuid.UUID) string {
	return fmt.Sprintf("account:%s:balance", accountID)
}
