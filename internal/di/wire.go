//go:build wireinject
// +build wireinject

package di

import (
	"CoinPulse/pkg/config"
	"CoinPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideRedisCache,
		ProvideCoinGecko,
		ProvideCoinDirectory,
		ProvideRepoMetrics,

		// Domain services
		ProvideCacheService,
		ProvideAliasUpdater,
		ProvideProviders,

		// Use cases
		ProvideDataService,
		ProvideScoreService,
		ProvideCacheUpdater,

		// HTTP surface
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
