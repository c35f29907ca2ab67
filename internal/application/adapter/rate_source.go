// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateSource fetches daily exchange rates from an external provider.
// Rates are relative to the configured base currency.
type RateSource interface {
	// FetchDaily returns the rate table published for the given date as a
	// mapping of currency code to rate. An empty map with a nil error means
	// the provider had no data; transport and parse failures are returned
	// as errors for the caller to degrade on.
	FetchDaily(ctx context.Context, date time.Time) (map[string]decimal.Decimal, error)
}
