package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/domain/repository"
	"CoinPulse/internal/provider"
	xlogger "CoinPulse/pkg/logger"
)

// AliasHealer persists alias mappings discovered outside a bulk resync.
type AliasHealer interface {
	UpdateSingleCoin(ctx context.Context, coinID, symbol, name string)
}

// DataService coordinates multiple market data providers with automatic
// fallback. The last provider that succeeded is tried first on the next
// call; the hint is process-local and is only an ordering optimization.
type DataService struct {
	providers []repository.DataProvider
	cache     repository.TokenomicsCache
	aliases   AliasHealer
	metrics   repository.Metrics
	logger    *xlogger.Logger

	mu        sync.Mutex
	preferred repository.DataProvider
}

// NewDataService creates the orchestrator over an ordered provider chain.
func NewDataService(
	providers []repository.DataProvider,
	cache repository.TokenomicsCache,
	aliases AliasHealer,
	m repository.Metrics,
	l *xlogger.Logger,
) *DataService {
	return &DataService{
		providers: providers,
		cache:     cache,
		aliases:   aliases,
		metrics:   m,
		logger:    l,
	}
}

// GetCoinData fetches the rich coin payload, trying each provider until one
// succeeds. Coin data is never cached here: it is slow-changing reference
// data that belongs in a separate persistent store.
func (s *DataService) GetCoinData(ctx context.Context, coinID string) (*models.CoinData, error) {
	var failures []provider.Failure

	for _, p := range s.orderedProviders() {
		data, err := p.GetCoinData(ctx, coinID)
		if err != nil {
			failures = append(failures, provider.Failure{Provider: p.Name(), Err: err})
			s.recordFailure(p.Name(), coinID, err)
			continue
		}

		s.setPreferred(p)
		s.metrics.RecordProviderAttempt(p.Name(), "success")

		// Self-heal aliases so later cache keys resolve to the canonical ID.
		if s.aliases != nil {
			s.aliases.UpdateSingleCoin(ctx, data.ID, data.Symbol, data.Name)
		}
		return data, nil
	}

	return nil, &provider.AllFailedError{Failures: failures}
}

// GetTokenomics returns the tokenomics snapshot for a coin. On a non-forced
// call a cache hit short-circuits the provider fallback entirely; a miss or
// forceRefresh runs the fallback and writes the result through the cache.
func (s *DataService) GetTokenomics(ctx context.Context, coinID string, forceRefresh bool) (*models.Tokenomics, error) {
	if !forceRefresh {
		if cached := s.cache.GetTokenomics(ctx, coinID); cached != nil {
			s.logger.Debug("tokenomics cache hit", xlogger.String("coin_id", coinID))
			return cached, nil
		}
	}

	start := time.Now()
	var failures []provider.Failure

	for _, p := range s.orderedProviders() {
		t, err := p.GetTokenomics(ctx, coinID)
		if err != nil {
			failures = append(failures, provider.Failure{Provider: p.Name(), Err: err})
			s.recordFailure(p.Name(), coinID, err)
			continue
		}

		s.setPreferred(p)
		s.metrics.RecordProviderAttempt(p.Name(), "success")
		s.metrics.RecordLatency("tokenomics_fetch", time.Since(start).Seconds())

		s.cache.SetTokenomics(ctx, coinID, t)
		return t, nil
	}

	return nil, &provider.AllFailedError{Failures: failures}
}

// ResolveCoinID resolves a search term through the provider chain. Used
// when the alias map has no answer.
func (s *DataService) ResolveCoinID(ctx context.Context, query string) (string, error) {
	var failures []provider.Failure

	for _, p := range s.orderedProviders() {
		id, err := p.ResolveCoinID(ctx, query)
		if err != nil {
			failures = append(failures, provider.Failure{Provider: p.Name(), Err: err})
			continue
		}
		s.setPreferred(p)
		return id, nil
	}

	return "", &provider.AllFailedError{Failures: failures}
}

// CheckProviderHealth reports reachability of every configured provider.
func (s *DataService) CheckProviderHealth(ctx context.Context) map[string]bool {
	health := make(map[string]bool, len(s.providers))
	for _, p := range s.providers {
		health[p.Name()] = p.CheckHealth(ctx)
	}
	return health
}

// orderedProviders snapshots the chain with the preferred provider moved to
// the front. A stale hint only costs an extra failed attempt, never
// incorrect data.
func (s *DataService) orderedProviders() []repository.DataProvider {
	s.mu.Lock()
	preferred := s.preferred
	s.mu.Unlock()

	if preferred == nil {
		return s.providers
	}

	ordered := make([]repository.DataProvider, 0, len(s.providers))
	ordered = append(ordered, preferred)
	for _, p := range s.providers {
		if p != preferred {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

func (s *DataService) setPreferred(p repository.DataProvider) {
	s.mu.Lock()
	s.preferred = p
	s.mu.Unlock()
}

func (s *DataService) recordFailure(name, coinID string, err error) {
	outcome := "failure"
	if errors.Is(err, provider.ErrRateLimited) {
		outcome = "rate_limited"
	}
	s.metrics.RecordProviderAttempt(name, outcome)
	s.logger.Warn("provider attempt failed",
		xlogger.String("provider", name),
		xlogger.String("coin_id", coinID),
		xlogger.Error(err))
}
