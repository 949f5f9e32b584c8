// Command refresher warms the tokenomics cache and rebuilds alias mappings
// from the command line, for cron-driven refreshes outside the API server.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"CoinPulse/internal/di"
	"CoinPulse/internal/service/cache"
	"CoinPulse/internal/usecase"
	"CoinPulse/pkg/config"
)

var (
	configPath string
	coin       string
	coins      []string
	popular    bool
	limit      int
	aliases    bool
)

func main() {
	root := &cobra.Command{
		Use:          "refresher",
		Short:        "Refresh cached coin data and alias mappings",
		SilenceUsage: true,
		RunE:         run,
	}

	root.Flags().StringVar(&configPath, "config", "config/config.yaml", "config file path")
	root.Flags().StringVar(&coin, "coin", "", "refresh a single coin by ID")
	root.Flags().StringSliceVar(&coins, "coins", nil, "refresh a comma-separated list of coin IDs")
	root.Flags().BoolVar(&popular, "popular", false, "refresh the popular warm-up list")
	root.Flags().IntVar(&limit, "limit", 10, "popular list size limit")
	root.Flags().BoolVar(&aliases, "aliases", false, "rebuild the alias map from the coin directory")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if coin == "" && len(coins) == 0 && !popular && !aliases {
		return fmt.Errorf("nothing to do: pass --coin, --coins, --popular or --aliases")
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	updater, aliasUpdater, err := buildServices(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	if aliases {
		res := aliasUpdater.UpdateAllAliases(ctx)
		if err := printJSON(res); err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("alias resync failed: %s", res.Error)
		}
	}

	switch {
	case coin != "":
		return printJSON(updater.RefreshOne(ctx, coin))
	case len(coins) > 0:
		return printJSON(updater.RefreshMany(ctx, coins))
	case popular:
		return printJSON(updater.RefreshPopular(ctx, limit))
	}
	return nil
}

// buildServices assembles the refresh path by hand: the CLI has no HTTP
// surface, so the full app injector is more than it needs.
func buildServices(cfg *config.Config) (*usecase.CacheUpdater, *cache.AliasUpdater, error) {
	logger, err := di.ProvideLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	store, err := di.ProvideRedisCache(cfg)
	if err != nil {
		return nil, nil, err
	}

	metrics := di.ProvideMetrics()
	cacheSvc := di.ProvideCacheService(store, metrics, logger, cfg)
	directory := di.ProvideCoinDirectory(cfg, logger)
	aliasUpdater := di.ProvideAliasUpdater(cacheSvc, directory, logger)
	providers := di.ProvideProviders(di.ProvideCoinGecko(cfg, logger))
	data := di.ProvideDataService(providers, cacheSvc, aliasUpdater, metrics, logger)

	return di.ProvideCacheUpdater(data, cfg, logger), aliasUpdater, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
