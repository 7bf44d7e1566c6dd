package autograp

import (
	"fmt"
	"time"
)

// Config holds the Auto Grap client settings.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	RateLimit  int           // max calls per window
	RateWindow time.Duration // sliding window size
	CacheSize  int           // VIN valuation cache entries, 0 disables caching
}

// Valuation is the market valuation response for a VIN.
type Valuation struct {
	VIN          string  `json:"vin"`
	MarketValue  float64 `json:"market_value"`
	TradeInValue float64 `json:"trade_in_value"`
	RetailValue  float64 `json:"retail_value"`
	Year         int     `json:"year,omitempty"`
	Make         string  `json:"make,omitempty"`
	Model        string  `json:"model,omitempty"`
	Variant      string  `json:"variant,omitempty"`
	Odometer     int     `json:"odometer,omitempty"`
	Confidence   string  `json:"confidence,omitempty"`
	LastUpdated  string  `json:"last_updated,omitempty"`
}

// Vehicle is the detailed vehicle record behind a VIN.
type Vehicle struct {
	VIN      string `json:"vin"`
	Year     int    `json:"year,omitempty"`
	Make     string `json:"make,omitempty"`
	Model    string `json:"model,omitempty"`
	Variant  string `json:"variant,omitempty"`
	Odometer int    `json:"odometer,omitempty"`
	Location string `json:"location,omitempty"`
}

// APIError is a terminal Auto Grap API failure, returned after retries are
// exhausted or for non-retryable statuses.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("autograp: %s (status %d)", e.Message, e.StatusCode)
	}
	return "autograp: " + e.Message
}
