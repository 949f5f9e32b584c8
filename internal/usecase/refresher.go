package usecase

import (
	"context"

	"CoinPulse/internal/domain/models"
	xlogger "CoinPulse/pkg/logger"
)

// CacheUpdater proactively refreshes cached tokenomics so interactive
// requests land on warm entries.
type CacheUpdater struct {
	data    *DataService
	popular []string
	logger  *xlogger.Logger
}

// NewCacheUpdater creates the refresh coordinator over the given warm-up
// list. The list order decides which coins a limited popular refresh keeps.
func NewCacheUpdater(data *DataService, popular []string, l *xlogger.Logger) *CacheUpdater {
	return &CacheUpdater{data: data, popular: popular, logger: l}
}

// RefreshOne force-refreshes a single coin, bypassing any cached entry and
// writing the fresh snapshot through the cache.
func (u *CacheUpdater) RefreshOne(ctx context.Context, coinID string) models.RefreshResult {
	result := models.RefreshResult{CoinID: coinID, Errors: []string{}}

	if _, err := u.data.GetTokenomics(ctx, coinID, true); err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Updated = true
	return result
}

// RefreshMany refreshes each coin in order. Coins are processed one at a
// time so a batch never bursts past the provider rate limits; one coin
// failing never stops the rest.
func (u *CacheUpdater) RefreshMany(ctx context.Context, coinIDs []string) *models.RefreshSummary {
	summary := &models.RefreshSummary{
		Total:   len(coinIDs),
		Results: make([]models.RefreshResult, 0, len(coinIDs)),
	}

	for _, coinID := range coinIDs {
		result := u.RefreshOne(ctx, coinID)
		if result.Updated {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		summary.Results = append(summary.Results, result)
	}

	u.logger.Info("batch refresh complete",
		xlogger.Int("total", summary.Total),
		xlogger.Int("succeeded", summary.Succeeded),
		xlogger.Int("failed", summary.Failed))
	return summary
}

// RefreshPopular refreshes the first limit coins of the configured popular
// list. A non-positive or oversized limit refreshes the entire list.
func (u *CacheUpdater) RefreshPopular(ctx context.Context, limit int) *models.RefreshSummary {
	coins := u.popular
	if limit > 0 && limit < len(coins) {
		coins = coins[:limit]
	}
	return u.RefreshMany(ctx, coins)
}

// PopularCoins exposes the configured warm-up list.
func (u *CacheUpdater) PopularCoins() []string {
	return u.popular
}
