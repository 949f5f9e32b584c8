// Package coingecko implements the CoinGecko market data provider.
package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/provider"
	"CoinPulse/pkg/cache"
	xhttp "CoinPulse/pkg/http"
	xlogger "CoinPulse/pkg/logger"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the CoinGecko free-tier API root.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	providerName = "CoinGecko"

	// resolvedTTL bounds the in-process resolved-ID cache. Redis aliases are
	// the durable layer; this only shaves repeat lookups within a process.
	resolvedTTL = time.Hour
)

// Config holds CoinGecko client settings.
type Config struct {
	BaseURL         string
	RequestTimeout  time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// Client implements repository.DataProvider backed by the CoinGecko REST API.
// Outbound calls go through a client-side rate limiter (the free tier allows
// roughly 30 calls/min) and a circuit breaker so a dead upstream fails fast
// during provider fallback.
type Client struct {
	baseURL  string
	http     *xhttp.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker
	resolved cache.Service
	logger   *xlogger.Logger

	// rateLimited records whether the failure that last fed the breaker was
	// a 429, so an open breaker can be attributed to rate limiting.
	rateLimited atomic.Bool
}

// New creates a CoinGecko provider client.
func New(cfg *Config, l *xlogger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 5 * time.Second
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 0.5
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 5
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = 30 * time.Second
	}

	failures := cfg.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    providerName,
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// An unknown coin is a valid upstream answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, provider.ErrNotFound)
		},
	})

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     xhttp.NewClient(xhttp.WithTimeout(cfg.RequestTimeout)),
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		breaker:  breaker,
		resolved: cache.NewMemoryCache(cache.WithMemoryMaxSize(2000)),
		logger:   l,
	}
}

// Name returns the provider name used in error tags and metrics labels.
func (c *Client) Name() string {
	return providerName
}

// CheckHealth checks if the CoinGecko API is accessible.
func (c *Client) CheckHealth(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/ping",
	})
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// ResolveCoinID resolves a search query (name, symbol, or ID) to a CoinGecko
// coin ID. Tries the query as a direct ID first, then the search API.
// Results are cached in-process.
func (c *Client) ResolveCoinID(ctx context.Context, query string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	var cached string
	if err := c.resolved.Get(ctx, q, &cached); err == nil && cached != "" {
		return cached, nil
	}

	// Direct lookup: the query may already be a canonical ID.
	var data models.CoinData
	err := c.getJSON(ctx, "/coins/"+url.PathEscape(q), coinQueryParams(), &data)
	if err == nil {
		id := data.ID
		if id == "" {
			id = q
		}
		_ = c.resolved.Set(ctx, q, id, resolvedTTL)
		return id, nil
	}
	if errors.Is(err, provider.ErrRateLimited) {
		return "", err
	}

	// Fall back to the search API and take the most relevant hit.
	var sr searchResponse
	if err := c.getJSON(ctx, "/search", map[string][]string{"query": {q}}, &sr); err != nil {
		if errors.Is(err, provider.ErrRateLimited) {
			return "", err
		}
		return "", fmt.Errorf("coingecko search %q: %w", query, err)
	}
	if len(sr.Coins) == 0 || sr.Coins[0].ID == "" {
		return "", fmt.Errorf("%q: %w", query, provider.ErrNotFound)
	}

	id := sr.Coins[0].ID
	_ = c.resolved.Set(ctx, q, id, resolvedTTL)
	return id, nil
}

// GetCoinData fetches the rich coin payload for a coin identifier.
func (c *Client) GetCoinData(ctx context.Context, coinID string) (*models.CoinData, error) {
	id, err := c.ResolveCoinID(ctx, coinID)
	if err != nil {
		return nil, err
	}

	var data models.CoinData
	if err := c.getJSON(ctx, "/coins/"+url.PathEscape(id), coinQueryParams(), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetTokenomics fetches the coin payload and projects the tokenomics
// snapshot out of it.
func (c *Client) GetTokenomics(ctx context.Context, coinID string) (*models.Tokenomics, error) {
	data, err := c.GetCoinData(ctx, coinID)
	if err != nil {
		return nil, err
	}

	t := &models.Tokenomics{
		Name:              data.Name,
		Symbol:            data.Symbol,
		CirculatingSupply: data.MarketData.CirculatingSupply,
		TotalSupply:       data.MarketData.TotalSupply,
		MaxSupply:         data.MarketData.MaxSupply,
	}
	if v, ok := data.MarketData.MarketCap["usd"]; ok {
		t.MarketCap = &v
	}
	return t, nil
}

type searchResponse struct {
	Coins []struct {
		ID     string `json:"id"`
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	} `json:"coins"`
}

func coinQueryParams() map[string][]string {
	return map[string][]string{
		"localization":   {"false"},
		"tickers":        {"false"},
		"community_data": {"false"},
		"developer_data": {"false"},
		"sparkline":      {"false"},
	}
}

// getJSON performs one rate-limited, breaker-guarded GET and decodes the
// body. 429 maps to provider.ErrRateLimited and 404 to provider.ErrNotFound.
func (c *Client) getJSON(ctx context.Context, path string, params map[string][]string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
			Method:      xhttp.MethodGet,
			URL:         c.baseURL + path,
			QueryParams: params,
		})
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			c.logger.Warn("coingecko rate limited", xlogger.String("path", path))
			return nil, provider.ErrRateLimited
		case resp.StatusCode == http.StatusNotFound:
			return nil, provider.ErrNotFound
		case resp.StatusCode != http.StatusOK:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("status %d: %s", resp.StatusCode, body)
		}

		if dest == nil {
			return nil, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return nil, nil
	})

	switch {
	case err == nil, errors.Is(err, provider.ErrNotFound):
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		// While the breaker stays open after a 429 storm the upstream is
		// still rate-limiting us; keep reporting that so callers answer 429
		// rather than 502.
		if c.rateLimited.Load() {
			return fmt.Errorf("circuit open: %w", provider.ErrRateLimited)
		}
		return fmt.Errorf("circuit open: %w", err)
	default:
		c.rateLimited.Store(errors.Is(err, provider.ErrRateLimited))
	}
	return err
}
