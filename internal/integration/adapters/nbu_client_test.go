package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFetchDailyParsesRates(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"cc": "USD", "rate": 41.55, "txt": "Долар США"},
			{"cc": "EUR", "rate": 48.10, "txt": "Євро"}
		]`))
	}))
	defer server.Close()

	client := NewNBUClient(server.URL, 5*time.Second)

	rates, err := client.FetchDaily(context.Background(), time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery != "date=20250310&json" {
		t.Errorf("expected date=20250310&json query, got %q", gotQuery)
	}
	if got := rates["USD"]; !got.Equal(decimal.RequireFromString("41.55")) {
		t.Errorf("expected USD 41.55, got %s", got)
	}
	if got := rates["EUR"]; !got.Equal(decimal.RequireFromString("48.10")) {
		t.Errorf("expected EUR 48.10, got %s", got)
	}
}

func TestFetchDailyNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewNBUClient(server.URL, 5*time.Second)

	if _, err := client.FetchDaily(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestFetchDailyMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"}`))
	}))
	defer server.Close()

	client := NewNBUClient(server.URL, 5*time.Second)

	if _, err := client.FetchDaily(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error on malformed payload")
	}
}

func TestFetchDailySkipsRecordsWithoutCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"cc": "", "rate": 1.0}, {"cc": "usd", "rate": 41.20}]`))
	}))
	defer server.Close()

	client := NewNBUClient(server.URL, 5*time.Second)

	rates, err := client.FetchDaily(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rates) != 1 {
		t.Fatalf("expected 1 rate, got %d", len(rates))
	}
	if got := rates["USD"]; !got.Equal(decimal.RequireFromString("41.20")) {
		t.Errorf("expected code upper-cased with rate 41.20, got %s", got)
	}
}
