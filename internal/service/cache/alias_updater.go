package cache

import (
	"context"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/domain/repository"
	xlogger "CoinPulse/pkg/logger"
)

// AliasUpdater rebuilds the alias map from the upstream coin directory.
// A resync is all-or-nothing: if the directory fetch fails, nothing is
// written.
type AliasUpdater struct {
	cache     *Service
	directory repository.CoinDirectory
	logger    *xlogger.Logger
}

// NewAliasUpdater creates the bulk alias updater.
func NewAliasUpdater(cache *Service, directory repository.CoinDirectory, l *xlogger.Logger) *AliasUpdater {
	return &AliasUpdater{cache: cache, directory: directory, logger: l}
}

// UpdateAllAliases fetches the complete coin directory and rewrites every
// alias mapping in one bulk operation. For each coin it creates up to three
// mappings: id -> id (canonical, so resolution is idempotent), symbol -> id
// and name -> id. Entries without an id are skipped; entries with identical
// symbols overwrite each other, last write wins.
func (u *AliasUpdater) UpdateAllAliases(ctx context.Context) *models.AliasSyncResult {
	coins, err := u.directory.FetchCoinsList(ctx)
	if err != nil {
		u.logger.Error("alias resync: directory fetch failed", xlogger.Error(err))
		return &models.AliasSyncResult{Success: false, Error: err.Error()}
	}

	aliases := make(map[string]string, 3*len(coins))
	for _, coin := range coins {
		if coin.ID == "" {
			continue
		}
		aliases[coin.ID] = coin.ID
		if coin.Symbol != "" {
			aliases[coin.Symbol] = coin.ID
		}
		if coin.Name != "" {
			aliases[coin.Name] = coin.ID
		}
	}

	updated, err := u.cache.SetBulkAliases(ctx, aliases)
	if err != nil {
		u.logger.Error("alias resync: bulk write failed", xlogger.Error(err))
		return &models.AliasSyncResult{Success: false, Error: err.Error(), CoinsProcessed: len(coins)}
	}

	u.logger.Info("alias resync complete",
		xlogger.Int("aliases", updated), xlogger.Int("coins", len(coins)))
	return &models.AliasSyncResult{
		Success:        true,
		AliasesUpdated: updated,
		CoinsProcessed: len(coins),
	}
}

// UpdateSingleCoin persists the three mappings for one coin. Used by the
// orchestrator to self-heal aliases discovered through a live search.
func (u *AliasUpdater) UpdateSingleCoin(ctx context.Context, coinID, symbol, name string) {
	if coinID == "" {
		return
	}
	u.cache.SetAlias(ctx, coinID, coinID)
	if symbol != "" {
		u.cache.SetAlias(ctx, symbol, coinID)
	}
	if name != "" {
		u.cache.SetAlias(ctx, name, coinID)
	}
}
