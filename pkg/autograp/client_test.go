package autograp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	pkgLog "crashify360/pkg/log"
)

func testConfig() Config {
	return Config{
		APIKey:     "test-key",
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
		RateLimit:  1000,
		RateWindow: time.Second,
		CacheSize:  16,
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := NewClient(pkgLog.NewNoop(), testConfig())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.SetAPIURL(ts.URL)
	return c, ts
}

func TestMarketValue(t *testing.T) {
	var calls int64
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		if r.URL.Path != "/valuation" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("auth header = %q", r.Header.Get("Authorization"))
		}
		if r.URL.Query().Get("vin") != "1HGBH41JXMN109186" {
			t.Errorf("vin = %q", r.URL.Query().Get("vin"))
		}
		w.Write([]byte(`{"market_value": 24500.50, "trade_in_value": 21000, "year": 2019, "make": "Honda", "confidence": "high"}`))
	}))

	v, err := c.MarketValue(context.Background(), "1HGBH41JXMN109186")
	if err != nil {
		t.Fatalf("MarketValue: %v", err)
	}
	if v.MarketValue != 24500.50 || v.Make != "Honda" || v.VIN != "1HGBH41JXMN109186" {
		t.Errorf("valuation = %+v", v)
	}

	t.Run("Second Lookup Served From Cache", func(t *testing.T) {
		if _, err := c.MarketValue(context.Background(), "1HGBH41JXMN109186"); err != nil {
			t.Fatalf("MarketValue: %v", err)
		}
		if n := atomic.LoadInt64(&calls); n != 1 {
			t.Errorf("server saw %d calls, want 1", n)
		}
	})
}

func TestMarketValueNoAPIKey(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = ""
	c, err := NewClient(pkgLog.NewNoop(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.MarketValue(context.Background(), "1HGBH41JXMN109186"); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("got %v, want ErrNoAPIKey", err)
	}
}

func TestRetryOn429(t *testing.T) {
	var calls int64
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"market_value": 10000}`))
	}))

	v, err := c.MarketValue(context.Background(), "1HGBH41JXMN109186")
	if err != nil {
		t.Fatalf("MarketValue: %v", err)
	}
	if v.MarketValue != 10000 {
		t.Errorf("market value = %v", v.MarketValue)
	}
	if n := atomic.LoadInt64(&calls); n != 2 {
		t.Errorf("server saw %d calls, want 2", n)
	}
}

func TestRetryOnServerError(t *testing.T) {
	t.Run("Recovers Within Retry Budget", func(t *testing.T) {
		var calls int64
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt64(&calls, 1) <= 2 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(`{"market_value": 10000}`))
		}))

		if _, err := c.MarketValue(context.Background(), "1HGBH41JXMN109186"); err != nil {
			t.Fatalf("MarketValue: %v", err)
		}
		if n := atomic.LoadInt64(&calls); n != 3 {
			t.Errorf("server saw %d calls, want 3", n)
		}
	})

	t.Run("Exhausted Retries Fail", func(t *testing.T) {
		var calls int64
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt64(&calls, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, err := c.MarketValue(context.Background(), "1HGBH41JXMN109186")
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("got %v, want APIError", err)
		}
		if apiErr.StatusCode != http.StatusInternalServerError {
			t.Errorf("status = %d", apiErr.StatusCode)
		}
		if n := atomic.LoadInt64(&calls); n != 4 { // initial + 3 retries
			t.Errorf("server saw %d calls, want 4", n)
		}
	})
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls int64
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "vehicle not found"}`))
	}))

	_, err := c.MarketValue(context.Background(), "1HGBH41JXMN109186")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "vehicle not found" {
		t.Errorf("err = %+v", apiErr)
	}
	if n := atomic.LoadInt64(&calls); n != 1 {
		t.Errorf("server saw %d calls, want 1 (no retry on 4xx)", n)
	}
}

func TestVehicleDetails(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vehicles/1HGBH41JXMN109186" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"vin": "1HGBH41JXMN109186", "year": 2019, "make": "Honda", "model": "Civic", "odometer": 42000}`))
	}))

	v, err := c.VehicleDetails(context.Background(), "1HGBH41JXMN109186")
	if err != nil {
		t.Fatalf("VehicleDetails: %v", err)
	}
	if v.Make != "Honda" || v.Odometer != 42000 {
		t.Errorf("vehicle = %+v", v)
	}
}

func TestHealth(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "ok"}`))
		}))
		if !c.Health(context.Background()) {
			t.Error("expected healthy")
		}
	})

	t.Run("Unreachable", func(t *testing.T) {
		c, err := NewClient(pkgLog.NewNoop(), testConfig())
		if err != nil {
			t.Fatal(err)
		}
		c.SetAPIURL("http://127.0.0.1:1") // nothing listens here
		if c.Health(context.Background()) {
			t.Error("expected unhealthy")
		}
	})
}
