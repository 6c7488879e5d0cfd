// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/spendings-bot/ledger/internal/application/adapter"
)

// errThrottled is returned when the request budget would not free up before the deadline.
var errThrottled = errors.New("rate source request budget exhausted")

// ExchangeRateHostConfig configures the exchangerate.host client.
type ExchangeRateHostConfig struct {
	BaseURL           string
	AccessKey         string
	RequestsPerSecond float64
	Burst             int
}

// historicalResponse is the payload of the historical endpoint.
type historicalResponse struct {
	Success bool                       `json:"success"`
	Source  string                     `json:"source"`
	Quotes  map[string]decimal.Decimal `json:"quotes"`
	Error   *struct {
		Code int    `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// exchangeRateHostSource implements adapter.RateSource against exchangerate.host.
type exchangeRateHostSource struct {
	client  *http.Client
	cfg     ExchangeRateHostConfig
	limiter *rate.Limiter
}

// NewExchangeRateHostSource creates a new rate source client. Outbound requests
// are throttled to cfg.RequestsPerSecond.
func NewExchangeRateHostSource(cfg ExchangeRateHostConfig, client *http.Client) adapter.RateSource {
	if client == nil {
		client = &http.Client{}
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &exchangeRateHostSource{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// FetchRate returns how many units of quote one unit of base was worth on date.
func (s *exchangeRateHostSource) FetchRate(ctx context.Context, base, quote string, date time.Time) (decimal.Decimal, error) {
	// Wait fails fast when the next token would arrive after the deadline.
	if err := s.limiter.Wait(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", errThrottled, err)
	}

	params := url.Values{}
	params.Set("access_key", s.cfg.AccessKey)
	params.Set("date", date.UTC().Format("2006-01-02"))
	params.Set("source", base)
	params.Set("currencies", quote)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"/historical?"+params.Encode(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return decimal.Zero, fmt.Errorf("rate source returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload historicalResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rate response: %w", err)
	}
	if !payload.Success {
		info := "unknown error"
		if payload.Error != nil && payload.Error.Info != "" {
			info = payload.Error.Info
		}
		return decimal.Zero, fmt.Errorf("rate source error: %s", info)
	}

	value, ok := payload.Quotes[base+quote]
	if !ok {
		return decimal.Zero, fmt.Errorf("rate source has no quote for %s%s", base, quote)
	}
	return value, nil
}
