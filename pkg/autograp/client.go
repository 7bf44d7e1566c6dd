// Package autograp is the client for the Auto Grap vehicle valuation API.
// It layers retry with backoff, a sliding-window rate limit and a per-VIN
// LRU cache over plain HTTP calls.
package autograp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	pkgLog "crashify360/pkg/log"
)

// ErrNoAPIKey is returned when a lookup is attempted without a configured key.
var ErrNoAPIKey = errors.New("autograp: api key not configured")

// Client is the Auto Grap API client. Safe for concurrent use.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	limiter    *rate.Limiter
	cache      *lru.Cache[string, Valuation]
	l          pkgLog.Logger
}

// NewClient creates an Auto Grap client from cfg. Zero-valued settings fall
// back to safe defaults (30s timeout, 3 retries, 1s base delay, 100 calls per
// hour).
func NewClient(l pkgLog.Logger, cfg Config) (*Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 100
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = time.Hour
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.autograp.com.au/v2"
	}

	c := &Client{
		apiKey:     cfg.APIKey,
		apiURL:     cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		limiter:    rate.NewLimiter(rate.Every(cfg.RateWindow/time.Duration(cfg.RateLimit)), cfg.RateLimit),
		l:          l,
	}

	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, Valuation](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("autograp: create cache: %w", err)
		}
		c.cache = cache
	}

	if cfg.APIKey == "" {
		l.Warn(context.Background(), "autograp: api key not configured")
	}

	return c, nil
}

// SetAPIURL overrides the default Auto Grap API URL for testing purposes.
func (c *Client) SetAPIURL(url string) {
	c.apiURL = url
}

// MarketValue fetches the market valuation for a VIN, serving repeat lookups
// from the cache.
func (c *Client) MarketValue(ctx context.Context, vin string) (Valuation, error) {
	if c.apiKey == "" {
		return Valuation{}, ErrNoAPIKey
	}

	if c.cache != nil {
		if v, ok := c.cache.Get(vin); ok {
			c.l.Debugf(ctx, "MarketValue: cache hit vin=%s", vin)
			return v, nil
		}
	}

	var v Valuation
	query := url.Values{"vin": {vin}}
	if err := c.get(ctx, "valuation", query, &v); err != nil {
		return Valuation{}, err
	}
	v.VIN = vin

	if c.cache != nil {
		c.cache.Add(vin, v)
	}
	c.l.Infof(ctx, "MarketValue: vin=%s market_value=%.2f confidence=%s", vin, v.MarketValue, v.Confidence)
	return v, nil
}

// VehicleDetails fetches the detailed vehicle record for a VIN.
func (c *Client) VehicleDetails(ctx context.Context, vin string) (Vehicle, error) {
	if c.apiKey == "" {
		return Vehicle{}, ErrNoAPIKey
	}

	var v Vehicle
	if err := c.get(ctx, "vehicles/"+url.PathEscape(vin), nil, &v); err != nil {
		return Vehicle{}, err
	}
	return v, nil
}

// Health reports whether the API answers its health endpoint.
func (c *Client) Health(ctx context.Context) bool {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "health", nil, &status); err != nil {
		return false
	}
	return status.Status == "ok"
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	reqURL := c.apiURL + "/" + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("autograp: create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if attempt < c.maxRetries {
				c.l.Warnf(ctx, "autograp: %s: transport error, retry %d/%d: %v", endpoint, attempt+1, c.maxRetries, err)
				if werr := c.sleep(ctx, c.retryDelay); werr != nil {
					return werr
				}
				continue
			}
			return &APIError{Message: "request failed after retries: " + err.Error()}
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("autograp: decode response: %w", err)
			}
			return nil

		case resp.StatusCode == http.StatusTooManyRequests:
			delay := retryAfter(resp.Header, c.retryDelay*time.Duration(attempt+1))
			resp.Body.Close()
			if attempt < c.maxRetries {
				c.l.Warnf(ctx, "autograp: %s: rate limited, retrying after %s", endpoint, delay)
				if werr := c.sleep(ctx, delay); werr != nil {
					return werr
				}
				continue
			}
			return &APIError{Message: "rate limit exceeded", StatusCode: resp.StatusCode}

		case resp.StatusCode >= http.StatusInternalServerError:
			resp.Body.Close()
			if attempt < c.maxRetries {
				// Doubling backoff: delay, 2*delay, 4*delay, ...
				delay := c.retryDelay << attempt
				c.l.Warnf(ctx, "autograp: %s: server error %d, retrying in %s", endpoint, resp.StatusCode, delay)
				if werr := c.sleep(ctx, delay); werr != nil {
					return werr
				}
				continue
			}
			return &APIError{Message: "server error", StatusCode: resp.StatusCode}

		default:
			raw, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return &APIError{Message: apiMessage(raw), StatusCode: resp.StatusCode}
		}
	}
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// retryAfter honours the Retry-After header (seconds) on 429 responses,
// falling back to the given delay.
func retryAfter(h http.Header, fallback time.Duration) time.Duration {
	if v := h.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

func apiMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	if len(raw) > 0 {
		return string(raw)
	}
	return "api error"
}
