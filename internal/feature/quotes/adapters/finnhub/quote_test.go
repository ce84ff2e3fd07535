package finnhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFinnhubQuotes_GetQuote_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request parameters
		if r.URL.Path != "/quote" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("symbol") != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", r.URL.Query().Get("symbol"))
		}
		if r.URL.Query().Get("token") != "test-key" {
			t.Errorf("expected token test-key, got %s", r.URL.Query().Get("token"))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"c": 150.25, "dp": 1.32, "h": 151.0, "l": 149.0, "o": 149.5, "pc": 148.3}`))
	}))
	defer server.Close()

	quotes := NewFinnhubQuotes(Config{APIKey: "test-key", BaseURL: server.URL}, server.Client())

	q, err := quotes.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Price != 150.25 {
		t.Errorf("expected price 150.25, got %v", q.Price)
	}
	if q.PercentChange != 1.32 {
		t.Errorf("expected percent change 1.32, got %v", q.PercentChange)
	}
}

func TestFinnhubQuotes_GetQuote_UnknownSymbol(t *testing.T) {
	t.Parallel()

	// Finnhubは未知の銘柄にHTTP 200とゼロ値を返す
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"c": 0, "dp": 0}`))
	}))
	defer server.Close()

	quotes := NewFinnhubQuotes(Config{APIKey: "test-key", BaseURL: server.URL}, server.Client())

	_, err := quotes.GetQuote(context.Background(), "UNKNOWN")
	if err == nil {
		t.Fatal("expected error for zero-value quote")
	}
}

func TestFinnhubQuotes_GetQuote_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	quotes := NewFinnhubQuotes(Config{APIKey: "bad-key", BaseURL: server.URL}, server.Client())

	_, err := quotes.GetQuote(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("expected error for HTTP 401")
	}
}
