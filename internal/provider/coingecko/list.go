package coingecko

import (
	"context"
	"fmt"
	"time"

	"CoinPulse/internal/domain/models"
	xhttp "CoinPulse/pkg/http"
	xlogger "CoinPulse/pkg/logger"
)

// ListClient fetches the complete CoinGecko coin directory. It is separate
// from Client because the list endpoint returns 10k+ entries and needs a far
// more generous timeout than per-coin calls.
type ListClient struct {
	baseURL string
	http    *xhttp.Client
	logger  *xlogger.Logger
}

// NewListClient creates a coin directory client.
func NewListClient(baseURL string, timeout time.Duration, l *xlogger.Logger) *ListClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ListClient{
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger:  l,
	}
}

// FetchCoinsList retrieves every coin's id, symbol and name in one call.
func (c *ListClient) FetchCoinsList(ctx context.Context) ([]models.CoinListEntry, error) {
	var coins []models.CoinListEntry
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/coins/list",
	}, &coins)
	if err != nil {
		return nil, fmt.Errorf("coingecko coins list: %w", err)
	}

	c.logger.Info("fetched coin directory", xlogger.Int("coins", len(coins)))
	return coins, nil
}
