package quotes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFMPProvider_NoKeyIsUnavailableWithoutNetwork(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	provider := NewFMPProvider("", 5*time.Second)
	provider.baseURL = server.URL

	if provider.Available() {
		t.Error("provider without a key must report unavailable")
	}

	result := provider.Fetch(context.Background())

	if result.Status != StatusUnavailable {
		t.Errorf("status = %v, want unavailable", result.Status)
	}
	if calls != 0 {
		t.Errorf("network calls = %d, want 0 without a key", calls)
	}
}

func TestFMPProvider_MapsSymbolsToCanonical(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"symbol":"^GSPC","changesPercentage":0.42},
			{"symbol":"^N225","changesPercentage":-1.2},
			{"symbol":"000001.SS","changesPercentage":0.1},
			{"symbol":"UNKNOWN","changesPercentage":9.9}
		]`)
	}))
	defer server.Close()

	provider := NewFMPProvider("test-key", 5*time.Second)
	provider.baseURL = server.URL

	result := provider.Fetch(context.Background())

	if result.Status != StatusPartial {
		t.Errorf("status = %v, want partial", result.Status)
	}
	if got := result.Changes["^SPX"]; got != 0.42 {
		t.Errorf("^SPX = %v, want 0.42", got)
	}
	if got := result.Changes["^NKX"]; got != -1.2 {
		t.Errorf("^NKX = %v, want -1.2", got)
	}
	if got := result.Changes["^SHC"]; got != 0.1 {
		t.Errorf("^SHC = %v, want 0.1", got)
	}
	if _, ok := result.Changes["UNKNOWN"]; ok {
		t.Error("unknown provider symbols must be dropped")
	}
}

func TestFMPProvider_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewFMPProvider("test-key", 5*time.Second)
	provider.baseURL = server.URL

	if result := provider.Fetch(context.Background()); result.Usable() {
		t.Error("rate-limited response must surface as unavailable")
	}
}
