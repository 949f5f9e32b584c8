package repository

import (
	"context"

	"CoinPulse/internal/domain/models"
)

// DataProvider is one upstream market data source in the fallback chain.
type DataProvider interface {
	Name() string
	GetCoinData(ctx context.Context, coinID string) (*models.CoinData, error)
	GetTokenomics(ctx context.Context, coinID string) (*models.Tokenomics, error)
	ResolveCoinID(ctx context.Context, query string) (string, error)
	CheckHealth(ctx context.Context) bool
}

// CoinDirectory fetches the complete upstream coin list for alias resyncs.
type CoinDirectory interface {
	FetchCoinsList(ctx context.Context) ([]models.CoinListEntry, error)
}

// RepoMetricsSource returns activity metrics for an owner/repo pair, or nil
// when the repository does not exist or cannot be read.
type RepoMetricsSource interface {
	GetMetrics(ctx context.Context, owner, repo string) *models.RepoMetrics
}

// TokenomicsCache is the cache surface the data orchestrator reads through.
// Implementations degrade store failures to miss/no-op, never errors.
type TokenomicsCache interface {
	GetTokenomics(ctx context.Context, coinID string) *models.Tokenomics
	SetTokenomics(ctx context.Context, coinID string, t *models.Tokenomics)
}

// AliasStore persists search-term to canonical-ID mappings.
type AliasStore interface {
	GetAlias(ctx context.Context, term string) (string, bool)
	SetAlias(ctx context.Context, term, canonicalID string)
	SetBulkAliases(ctx context.Context, aliases map[string]string) (int, error)
}

type Metrics interface {
	RecordProviderAttempt(provider, outcome string)
	RecordCacheOp(kind, result string)
	RecordScoreComputed()
	RecordLatency(op string, seconds float64)
}
