// Package scoring contains the pure scoring functions: breakpoint ladders
// mapping raw metrics to 0-100 tier scores and the weighted combination
// into a final trust score. No I/O happens here.
package scoring

import "math"

// Final score weights. Fixed configuration, not derived.
const (
	WeightMarketCap       = 0.25
	WeightVolume          = 0.15
	WeightHolderDiversity = 0.25
	WeightGitHubActivity  = 0.35
)

// NeutralHolderScore is used when concentration data is unavailable.
const NeutralHolderScore = 50

// ScoreMarketCap maps a USD market cap to a tier score.
func ScoreMarketCap(marketCap float64) float64 {
	if marketCap <= 0 {
		return 0
	}

	switch {
	case marketCap >= 1_000_000_000_000: // $1T+
		return 100
	case marketCap >= 100_000_000_000: // $100B+
		return 95
	case marketCap >= 10_000_000_000: // $10B+
		return 85
	case marketCap >= 1_000_000_000: // $1B+
		return 75
	case marketCap >= 100_000_000: // $100M+
		return 60
	case marketCap >= 10_000_000: // $10M+
		return 45
	default:
		return 30
	}
}

// ScoreVolume scores 24h volume relative to market cap, not absolute
// volume: turnover is what indicates a liquid market.
func ScoreVolume(volume24h, marketCap float64) float64 {
	if marketCap <= 0 || volume24h <= 0 {
		return 0
	}

	ratio := volume24h / marketCap

	switch {
	case ratio >= 0.5:
		return 100
	case ratio >= 0.25:
		return 85
	case ratio >= 0.10:
		return 70
	case ratio >= 0.05:
		return 55
	case ratio >= 0.01:
		return 40
	default:
		return 20
	}
}

// ScoreHolderDiversity scores inversely on top-holder concentration: lower
// concentration means higher score. A nil input scores the neutral default
// rather than failing.
func ScoreHolderDiversity(topHolderPercentage *float64) float64 {
	if topHolderPercentage == nil {
		return NeutralHolderScore
	}

	concentration := *topHolderPercentage

	switch {
	case concentration <= 0.05:
		return 100
	case concentration <= 0.10:
		return 90
	case concentration <= 0.15:
		return 80
	case concentration <= 0.20:
		return 70
	case concentration <= 0.30:
		return 60
	case concentration <= 0.50:
		return 40
	default:
		return 20
	}
}

// CalculateFinalScore combines the four factor scores with fixed weights
// and rounds to 2 decimal places.
func CalculateFinalScore(marketCapScore, volumeScore, holderDiversityScore, githubScore float64) float64 {
	final := marketCapScore*WeightMarketCap +
		volumeScore*WeightVolume +
		holderDiversityScore*WeightHolderDiversity +
		githubScore*WeightGitHubActivity

	return round2(final)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
