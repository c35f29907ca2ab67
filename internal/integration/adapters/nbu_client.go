// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fin-mate/backend/internal/application/adapter"
)

// nbuRecord is one entry of the provider's daily exchange listing.
type nbuRecord struct {
	Code string          `json:"cc"`
	Rate decimal.Decimal `json:"rate"`
}

// nbuClient implements the adapter.RateSource interface against the
// National Bank of Ukraine daily exchange endpoint.
type nbuClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNBUClient creates a new rate source backed by the NBU API.
func NewNBUClient(baseURL string, timeout time.Duration) adapter.RateSource {
	return &nbuClient{
		baseURL: strings.TrimRight(baseURL, "?&"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchDaily fetches the rate listing for the given date and returns a
// code-to-rate map relative to the provider's base currency.
func (c *nbuClient) FetchDaily(ctx context.Context, date time.Time) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s?date=%s&json", c.baseURL, date.Format("20060102"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate request returned status %d", resp.StatusCode)
	}

	var records []nbuRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode rate response: %w", err)
	}

	rates := make(map[string]decimal.Decimal, len(records))
	for _, r := range records {
		if r.Code == "" {
			continue
		}
		rates[strings.ToUpper(r.Code)] = r.Rate
	}
	return rates, nil
}
