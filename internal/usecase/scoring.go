package usecase

import (
	"context"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/domain/repository"
	"CoinPulse/internal/scoring"
	xlogger "CoinPulse/pkg/logger"
)

// ConcentrationSource supplies the top-holder concentration used by the
// holder-diversity factor. Returns nil when no figure is available.
type ConcentrationSource interface {
	TopHolderPercentage(ctx context.Context, coinID string) *float64
}

// StaticConcentration returns the same concentration for every coin.
// On-chain holder data needs a per-chain indexer we do not run yet, so a
// representative constant stands in until one is wired.
type StaticConcentration struct {
	Value float64
}

func (s StaticConcentration) TopHolderPercentage(_ context.Context, _ string) *float64 {
	v := s.Value
	return &v
}

// ScoreService computes the weighted trust score for a coin from live
// market data and repository activity.
type ScoreService struct {
	data          *DataService
	repos         repository.RepoMetricsSource
	concentration ConcentrationSource
	metrics       repository.Metrics
	logger        *xlogger.Logger
}

func NewScoreService(
	data *DataService,
	repos repository.RepoMetricsSource,
	concentration ConcentrationSource,
	m repository.Metrics,
	l *xlogger.Logger,
) *ScoreService {
	return &ScoreService{
		data:          data,
		repos:         repos,
		concentration: concentration,
		metrics:       m,
		logger:        l,
	}
}

// GetScore scores a coin across all factors. Market data failure is fatal;
// a missing or unreadable repository only zeroes the activity factor.
func (s *ScoreService) GetScore(ctx context.Context, coinID string) (*models.ScoreBreakdown, error) {
	start := time.Now()

	data, err := s.data.GetCoinData(ctx, coinID)
	if err != nil {
		return nil, err
	}

	marketCap := data.MarketCapUSD()
	volume := data.TotalVolumeUSD()
	concentration := s.concentration.TopHolderPercentage(ctx, data.ID)

	marketCapScore := scoring.ScoreMarketCap(marketCap)
	volumeScore := scoring.ScoreVolume(volume, marketCap)
	holderScore := scoring.ScoreHolderDiversity(concentration)

	activity := s.scoreActivity(ctx, data)

	final := scoring.CalculateFinalScore(marketCapScore, volumeScore, holderScore, activity.Score)

	s.metrics.RecordScoreComputed()
	s.metrics.RecordLatency("score_compute", time.Since(start).Seconds())
	s.logger.Info("score computed",
		xlogger.String("coin_id", data.ID),
		xlogger.Any("score", final))

	holderValue := 0.0
	if concentration != nil {
		holderValue = *concentration
	}

	return &models.ScoreBreakdown{
		CoinID: data.ID,
		Score:  final,
		Breakdown: models.Breakdown{
			MarketCap: models.FactorScore{
				Value:  marketCap,
				Score:  marketCapScore,
				Weight: scoring.WeightMarketCap,
			},
			Volume24h: models.FactorScore{
				Value:  volume,
				Score:  volumeScore,
				Weight: scoring.WeightVolume,
			},
			HolderDiversity: models.FactorScore{
				Value:  holderValue,
				Score:  holderScore,
				Weight: scoring.WeightHolderDiversity,
			},
			GitHubActivity: activity,
		},
	}, nil
}

// scoreActivity resolves the coin's repository and scores its activity.
// Any failure along the way degrades to a zero score with nil metrics.
func (s *ScoreService) scoreActivity(ctx context.Context, data *models.CoinData) models.ActivityScore {
	zero := models.ActivityScore{Score: 0, Weight: scoring.WeightGitHubActivity}

	repo, ok := scoring.RepoForCoin(data.ID, firstGitHubURL(data))
	if !ok {
		s.logger.Debug("no repository resolved", xlogger.String("coin_id", data.ID))
		return zero
	}

	metrics := s.repos.GetMetrics(ctx, repo.Owner, repo.Name)
	if metrics == nil {
		s.logger.Warn("repository metrics unavailable",
			xlogger.String("coin_id", data.ID),
			xlogger.String("repo", repo.Owner+"/"+repo.Name))
		return zero
	}

	return models.ActivityScore{
		Score:   scoring.CalculateGitHubScore(metrics.Stars, metrics.CommitsYear, metrics.Contributors),
		Weight:  scoring.WeightGitHubActivity,
		Metrics: metrics,
	}
}

func firstGitHubURL(data *models.CoinData) string {
	for _, url := range data.Links.ReposURL.GitHub {
		if url != "" {
			return url
		}
	}
	return ""
}
