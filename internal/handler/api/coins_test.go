package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/domain/repository"
	"CoinPulse/internal/provider"
	svccache "CoinPulse/internal/service/cache"
	"CoinPulse/internal/usecase"
	pkgcache "CoinPulse/pkg/cache"
	xlogger "CoinPulse/pkg/logger"
)

// stubProvider answers every call with the scripted payloads or error.
type stubProvider struct {
	err        error
	coinData   *models.CoinData
	tokenomics *models.Tokenomics
	healthy    bool
}

func (p *stubProvider) Name() string { return "Stub" }

func (p *stubProvider) GetCoinData(context.Context, string) (*models.CoinData, error) {
	return p.coinData, p.err
}

func (p *stubProvider) GetTokenomics(context.Context, string) (*models.Tokenomics, error) {
	return p.tokenomics, p.err
}

func (p *stubProvider) ResolveCoinID(_ context.Context, q string) (string, error) {
	return q, p.err
}

func (p *stubProvider) CheckHealth(context.Context) bool { return p.healthy }

type stubDirectory struct{}

func (stubDirectory) FetchCoinsList(context.Context) ([]models.CoinListEntry, error) {
	return []models.CoinListEntry{{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"}}, nil
}

type stubRepoSource struct{ metrics *models.RepoMetrics }

func (s stubRepoSource) GetMetrics(context.Context, string, string) *models.RepoMetrics {
	return s.metrics
}

type nopMetrics struct{}

func (nopMetrics) RecordProviderAttempt(string, string) {}
func (nopMetrics) RecordCacheOp(string, string)         {}
func (nopMetrics) RecordScoreComputed()                 {}
func (nopMetrics) RecordLatency(string, float64)        {}

// stringStore keeps string values only; typed reads miss. Enough for the
// alias paths the handler tests touch.
type stringStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newStringStore() *stringStore { return &stringStore{data: make(map[string]string)} }

func (s *stringStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if str, ok := value.(string); ok {
		s.mu.Lock()
		s.data[key] = str
		s.mu.Unlock()
	}
	return nil
}

func (s *stringStore) Get(_ context.Context, key string, dest interface{}) error {
	s.mu.Lock()
	v, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return pkgcache.ErrCacheMiss
	}
	if strPtr, isStr := dest.(*string); isStr {
		*strPtr = v
		return nil
	}
	return pkgcache.ErrCacheMiss
}

func (s *stringStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	for _, k := range keys {
		delete(s.data, k)
	}
	s.mu.Unlock()
	return nil
}

func (s *stringStore) Exists(context.Context, ...string) (bool, error) { return false, nil }

func (s *stringStore) MSet(ctx context.Context, values map[string]interface{}, ttl time.Duration) error {
	for k, v := range values {
		if err := s.Set(ctx, k, v, ttl); err != nil {
			return err
		}
	}
	return nil
}

func newTestServer(p repository.DataProvider) *echo.Echo {
	log := xlogger.Nop()
	cacheSvc := svccache.NewService(newStringStore(), nopMetrics{}, log, time.Minute, time.Hour)
	aliases := svccache.NewAliasUpdater(cacheSvc, stubDirectory{}, log)
	data := usecase.NewDataService([]repository.DataProvider{p}, cacheSvc, aliases, nopMetrics{}, log)
	scores := usecase.NewScoreService(data, stubRepoSource{}, usecase.StaticConcentration{Value: 0.15}, nopMetrics{}, log)
	refresh := usecase.NewCacheUpdater(data, []string{"bitcoin", "ethereum", "tether"}, log)

	e := echo.New()
	NewCoinsHandler(log, data, scores, refresh, aliases, cacheSvc).RegisterRoutes(e)
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func okCoinData() *models.CoinData {
	return &models.CoinData{
		ID:     "obscure-token",
		Symbol: "obt",
		Name:   "Obscure",
		MarketData: models.MarketData{
			MarketCap:   map[string]float64{"usd": 5e7},
			TotalVolume: map[string]float64{"usd": 5e5},
		},
	}
}

func TestScoreEndpoint(t *testing.T) {
	e := newTestServer(&stubProvider{coinData: okCoinData()})

	rec := doRequest(e, http.MethodGet, "/api/score/obscure-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data models.ScoreBreakdown `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "obscure-token", resp.Data.CoinID)
	assert.Equal(t, 37.25, resp.Data.Score)
	assert.Nil(t, resp.Data.Breakdown.GitHubActivity.Metrics)
}

func TestScoreRateLimitedReturns429(t *testing.T) {
	e := newTestServer(&stubProvider{err: provider.ErrRateLimited})

	rec := doRequest(e, http.MethodGet, "/api/score/bitcoin", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_RATE_LIMITED")
}

func TestScoreUnknownCoinReturns404(t *testing.T) {
	e := newTestServer(&stubProvider{err: provider.ErrNotFound})

	rec := doRequest(e, http.MethodGet, "/api/score/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScoreUpstreamFailureReturns502(t *testing.T) {
	e := newTestServer(&stubProvider{err: assert.AnError})

	rec := doRequest(e, http.MethodGet, "/api/score/bitcoin", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_UPSTREAM")
}

func TestTokenomicsEndpoint(t *testing.T) {
	cap := 1e9
	e := newTestServer(&stubProvider{tokenomics: &models.Tokenomics{Name: "Bitcoin", MarketCap: &cap}})

	rec := doRequest(e, http.MethodGet, "/api/tokenomics/bitcoin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bitcoin")
}

func TestUpdateCacheRequiresTarget(t *testing.T) {
	e := newTestServer(&stubProvider{tokenomics: &models.Tokenomics{Name: "x"}})

	rec := doRequest(e, http.MethodPost, "/api/update-cache", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCacheBatch(t *testing.T) {
	e := newTestServer(&stubProvider{tokenomics: &models.Tokenomics{Name: "x"}})

	rec := doRequest(e, http.MethodPost, "/api/update-cache", `{"coin_ids":["bitcoin","ethereum"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data models.RefreshSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 2, resp.Data.Succeeded)
	assert.Zero(t, resp.Data.Failed)
}

func TestUpdateCachePopularHonorsLimit(t *testing.T) {
	e := newTestServer(&stubProvider{tokenomics: &models.Tokenomics{Name: "x"}})

	rec := doRequest(e, http.MethodPost, "/api/update-cache", `{"popular":true,"limit":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data models.RefreshSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Total)
}

func TestUpdateAliasesAndLookup(t *testing.T) {
	e := newTestServer(&stubProvider{})

	rec := doRequest(e, http.MethodPost, "/api/update-aliases", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data models.AliasSyncResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Success)
	assert.Equal(t, 3, resp.Data.AliasesUpdated)

	rec = doRequest(e, http.MethodGet, "/api/alias/BTC", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"coin_id":"bitcoin"`)

	rec = doRequest(e, http.MethodGet, "/api/alias/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProvidersHealth(t *testing.T) {
	e := newTestServer(&stubProvider{healthy: true})

	rec := doRequest(e, http.MethodGet, "/api/providers/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Stub":true`)
}

func TestCacheStats(t *testing.T) {
	e := newTestServer(&stubProvider{})

	rec := doRequest(e, http.MethodGet, "/api/cache-stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"connected":true`)
}
