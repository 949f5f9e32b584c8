package usecase

import (
	"context"
	"errors"
	"sync"

	"CoinPulse/internal/domain/models"
)

// fakeProvider is a scripted DataProvider. Every call appends its provider
// name to the shared log so tests can assert fallback order.
type fakeProvider struct {
	name       string
	err        error
	coinData   *models.CoinData
	tokenomics *models.Tokenomics
	resolvedID string
	healthy    bool

	log *callLog
}

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) record(name string) {
	l.mu.Lock()
	l.calls = append(l.calls, name)
	l.mu.Unlock()
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) GetCoinData(context.Context, string) (*models.CoinData, error) {
	p.log.record(p.name)
	if p.err != nil {
		return nil, p.err
	}
	return p.coinData, nil
}

func (p *fakeProvider) GetTokenomics(context.Context, string) (*models.Tokenomics, error) {
	p.log.record(p.name)
	if p.err != nil {
		return nil, p.err
	}
	return p.tokenomics, nil
}

func (p *fakeProvider) ResolveCoinID(context.Context, string) (string, error) {
	p.log.record(p.name)
	if p.err != nil {
		return "", p.err
	}
	return p.resolvedID, nil
}

func (p *fakeProvider) CheckHealth(context.Context) bool { return p.healthy }

// scriptedProvider succeeds or fails per coin ID and records which coins
// were requested, in order.
type scriptedProvider struct {
	mu      sync.Mutex
	failing map[string]bool
	coins   []string
	log     *callLog
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) GetCoinData(context.Context, string) (*models.CoinData, error) {
	return nil, errNotScripted
}

func (p *scriptedProvider) GetTokenomics(_ context.Context, coinID string) (*models.Tokenomics, error) {
	p.mu.Lock()
	p.coins = append(p.coins, coinID)
	p.mu.Unlock()
	if p.log != nil {
		p.log.record("scripted")
	}
	if p.failing[coinID] {
		return nil, errScriptedFailure
	}
	return &models.Tokenomics{Name: coinID}, nil
}

func (p *scriptedProvider) ResolveCoinID(_ context.Context, query string) (string, error) {
	return query, nil
}

func (p *scriptedProvider) CheckHealth(context.Context) bool { return true }

var (
	errNotScripted     = errors.New("not scripted")
	errScriptedFailure = errors.New("provider unavailable")
)

// fakeTokenomicsCache is an in-memory TokenomicsCache with write counting.
type fakeTokenomicsCache struct {
	mu      sync.Mutex
	entries map[string]*models.Tokenomics
	writes  int
}

func newFakeTokenomicsCache() *fakeTokenomicsCache {
	return &fakeTokenomicsCache{entries: make(map[string]*models.Tokenomics)}
}

func (c *fakeTokenomicsCache) GetTokenomics(_ context.Context, coinID string) *models.Tokenomics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[coinID]
}

func (c *fakeTokenomicsCache) SetTokenomics(_ context.Context, coinID string, t *models.Tokenomics) {
	c.mu.Lock()
	c.entries[coinID] = t
	c.writes++
	c.mu.Unlock()
}

// fakeAliasHealer records self-heal calls.
type fakeAliasHealer struct {
	mu    sync.Mutex
	coins []string
}

func (a *fakeAliasHealer) UpdateSingleCoin(_ context.Context, coinID, _, _ string) {
	a.mu.Lock()
	a.coins = append(a.coins, coinID)
	a.mu.Unlock()
}

// fakeMetrics satisfies repository.Metrics without touching the global
// Prometheus registry, which only tolerates one registration per process.
type fakeMetrics struct {
	mu       sync.Mutex
	attempts map[string]int
	scores   int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{attempts: make(map[string]int)}
}

func (m *fakeMetrics) RecordProviderAttempt(provider, outcome string) {
	m.mu.Lock()
	m.attempts[provider+"/"+outcome]++
	m.mu.Unlock()
}

func (m *fakeMetrics) RecordCacheOp(string, string) {}

func (m *fakeMetrics) RecordScoreComputed() {
	m.mu.Lock()
	m.scores++
	m.mu.Unlock()
}

func (m *fakeMetrics) RecordLatency(string, float64) {}

// fakeRepoMetrics is a scripted RepoMetricsSource.
type fakeRepoMetrics struct {
	metrics *models.RepoMetrics
	queried []string
}

func (f *fakeRepoMetrics) GetMetrics(_ context.Context, owner, repo string) *models.RepoMetrics {
	f.queried = append(f.queried, owner+"/"+repo)
	return f.metrics
}
