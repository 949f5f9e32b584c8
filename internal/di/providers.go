package di

import (
	"fmt"

	"CoinPulse/internal/domain/repository"
	"CoinPulse/internal/handler/api"
	"CoinPulse/internal/provider/coingecko"
	svccache "CoinPulse/internal/service/cache"
	"CoinPulse/internal/service/github"
	"CoinPulse/internal/usecase"
	pkgcache "CoinPulse/pkg/cache"
	"CoinPulse/pkg/config"
	xhttp "CoinPulse/pkg/http"
	xlogger "CoinPulse/pkg/logger"
	"CoinPulse/pkg/metrics"
	"CoinPulse/pkg/server"
)

// topHolderPlaceholder stands in for on-chain concentration data until a
// chain indexer is wired. See usecase.StaticConcentration.
const topHolderPlaceholder = 0.15

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	l, err := xlogger.New(&xlogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRedisCache creates the Redis store. Fails fast if Redis is
// unreachable: serving with no cache would hammer the rate-limited
// upstreams on every request.
func ProvideRedisCache(cfg *config.Config) (*pkgcache.RedisCache, error) {
	store, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Redis.Host),
		pkgcache.WithRedisPort(cfg.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
		pkgcache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return store, nil
}

// ProvideCacheService wraps the store with domain keys and TTL policy.
func ProvideCacheService(store *pkgcache.RedisCache, m repository.Metrics, l *xlogger.Logger, cfg *config.Config) *svccache.Service {
	return svccache.NewService(store, m, l, cfg.Cache.TokenomicsTTL, cfg.Cache.AliasTTL)
}

// ProvideCoinGecko creates the primary market data provider.
func ProvideCoinGecko(cfg *config.Config, l *xlogger.Logger) *coingecko.Client {
	return coingecko.New(&coingecko.Config{
		BaseURL:         cfg.CoinGecko.BaseURL,
		RequestTimeout:  cfg.CoinGecko.RequestTimeout,
		RateLimitRPS:    cfg.CoinGecko.RateLimitRPS,
		RateLimitBurst:  cfg.CoinGecko.RateLimitBurst,
		BreakerFailures: cfg.CoinGecko.BreakerFailures,
		BreakerCooldown: cfg.CoinGecko.BreakerCooldown,
	}, l)
}

// ProvideProviders assembles the ordered fallback chain.
func ProvideProviders(cg *coingecko.Client) []repository.DataProvider {
	return []repository.DataProvider{cg}
}

// ProvideCoinDirectory creates the full-list client used by alias resyncs.
// It gets its own long timeout: /coins/list returns tens of thousands of
// rows.
func ProvideCoinDirectory(cfg *config.Config, l *xlogger.Logger) repository.CoinDirectory {
	return coingecko.NewListClient(cfg.CoinGecko.BaseURL, cfg.CoinGecko.ListTimeout, l)
}

// ProvideRepoMetrics creates the GitHub activity source.
func ProvideRepoMetrics(cfg *config.Config, l *xlogger.Logger) repository.RepoMetricsSource {
	return github.New(cfg.GitHub.BaseURL, cfg.GitHub.Token, cfg.GitHub.RequestTimeout, l)
}

// ProvideAliasUpdater creates the bulk alias resync service.
func ProvideAliasUpdater(cache *svccache.Service, directory repository.CoinDirectory, l *xlogger.Logger) *svccache.AliasUpdater {
	return svccache.NewAliasUpdater(cache, directory, l)
}

// ProvideDataService creates the provider fallback orchestrator.
func ProvideDataService(
	providers []repository.DataProvider,
	cache *svccache.Service,
	aliases *svccache.AliasUpdater,
	m repository.Metrics,
	l *xlogger.Logger,
) *usecase.DataService {
	return usecase.NewDataService(providers, cache, aliases, m, l)
}

// ProvideScoreService creates the trust score calculator.
func ProvideScoreService(
	data *usecase.DataService,
	repos repository.RepoMetricsSource,
	m repository.Metrics,
	l *xlogger.Logger,
) *usecase.ScoreService {
	concentration := usecase.StaticConcentration{Value: topHolderPlaceholder}
	return usecase.NewScoreService(data, repos, concentration, m, l)
}

// ProvideCacheUpdater creates the batch refresh coordinator.
func ProvideCacheUpdater(data *usecase.DataService, cfg *config.Config, l *xlogger.Logger) *usecase.CacheUpdater {
	return usecase.NewCacheUpdater(data, cfg.Popular, l)
}

// ProvideHandler creates the API handler.
func ProvideHandler(
	l *xlogger.Logger,
	data *usecase.DataService,
	scores *usecase.ScoreService,
	refresh *usecase.CacheUpdater,
	aliases *svccache.AliasUpdater,
	cache *svccache.Service,
) xhttp.Handler {
	return api.NewCoinsHandler(l, data, scores, refresh, aliases, cache)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *xlogger.Logger, h xhttp.Handler) *server.App {
	return server.New(cfg, l, h)
}
