package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// RateServer fakes the exchange-rate provider's daily listing endpoint.
// It serves the configured code-to-rate table in the provider's wire
// format and counts how many fetches the application performs, so
// scenarios can assert on snapshot caching.
type RateServer struct {
	mu      sync.Mutex
	server  *httptest.Server
	rates   map[string]json.Number
	status  int
	fetches int
}

// rateRecord mirrors one entry of the provider's daily listing.
type rateRecord struct {
	Code string      `json:"cc"`
	Rate json.Number `json:"rate"`
}

// NewRateServer starts a fake rate endpoint with an empty listing.
func NewRateServer() *RateServer {
	r := &RateServer{
		rates:  map[string]json.Number{},
		status: http.StatusOK,
	}
	r.server = httptest.NewServer(http.HandlerFunc(r.handle))
	return r
}

func (r *RateServer) handle(w http.ResponseWriter, _ *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fetches++

	if r.status != http.StatusOK {
		w.WriteHeader(r.status)
		return
	}

	records := make([]rateRecord, 0, len(r.rates))
	for code, rate := range r.rates {
		records = append(records, rateRecord{Code: code, Rate: rate})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(records)
}

// URL returns the endpoint address to inject as the provider source URL.
func (r *RateServer) URL() string {
	return r.server.URL
}

// SetRate sets the served rate for a currency code. The rate string is
// emitted verbatim as a JSON number.
func (r *RateServer) SetRate(code, rate string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates[code] = json.Number(rate)
}

// SetStatus makes the endpoint answer every request with the given
// status and no body.
func (r *RateServer) SetStatus(status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
}

// Fetches returns how many requests the endpoint has served since the
// last Reset.
func (r *RateServer) Fetches() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetches
}

// Reset clears the listing, the fetch counter and any forced status.
func (r *RateServer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates = map[string]json.Number{}
	r.status = http.StatusOK
	r.fetches = 0
}

// Close shuts the endpoint down.
func (r *RateServer) Close() {
	r.server.Close()
}
