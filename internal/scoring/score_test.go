package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreMarketCapTiers(t *testing.T) {
	cases := []struct {
		marketCap float64
		want      float64
	}{
		{2_000_000_000_000, 100},
		{1_000_000_000_000, 100},
		{150_000_000_000, 95},
		{15_000_000_000, 85},
		{1_000_000_000, 75},
		{500_000_000, 60},
		{50_000_000, 45},
		{1_000_000, 30},
		{0, 0},
		{-10, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ScoreMarketCap(tc.marketCap), "market cap %v", tc.marketCap)
	}
}

func TestScoreVolumeUsesRatio(t *testing.T) {
	// Identical ratio, wildly different absolute volume: same score.
	assert.Equal(t, ScoreVolume(500, 1000), ScoreVolume(500_000_000, 1_000_000_000))

	cases := []struct {
		volume, marketCap float64
		want              float64
	}{
		{600, 1000, 100}, // 0.60
		{300, 1000, 85},  // 0.30
		{100, 1000, 70},  // 0.10
		{50, 1000, 55},   // 0.05
		{10, 1000, 40},   // 0.01
		{1, 1000, 20},    // 0.001
		{0, 1000, 0},     // no volume
		{100, 0, 0},      // no market cap
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ScoreVolume(tc.volume, tc.marketCap), "%v / %v", tc.volume, tc.marketCap)
	}
}

func TestScoreHolderDiversityInverse(t *testing.T) {
	pct := func(v float64) *float64 { return &v }

	cases := []struct {
		concentration *float64
		want          float64
	}{
		{nil, 50}, // unknown concentration is neutral, not zero
		{pct(0.03), 100},
		{pct(0.08), 90},
		{pct(0.15), 80},
		{pct(0.18), 70},
		{pct(0.25), 60},
		{pct(0.45), 40},
		{pct(0.80), 20},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ScoreHolderDiversity(tc.concentration))
	}
}

func TestLaddersAreMonotonic(t *testing.T) {
	caps := []float64{1, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12, 1e13}
	prev := 0.0
	for _, c := range caps {
		score := ScoreMarketCap(c)
		assert.GreaterOrEqual(t, score, prev, "market cap ladder dipped at %v", c)
		prev = score
	}

	ratios := []float64{0.001, 0.01, 0.05, 0.10, 0.25, 0.5, 0.9}
	prev = 0
	for _, r := range ratios {
		score := ScoreVolume(r*1000, 1000)
		assert.GreaterOrEqual(t, score, prev, "volume ladder dipped at %v", r)
		prev = score
	}
}

func TestCalculateFinalScoreWeights(t *testing.T) {
	// 80*0.25 + 60*0.15 + 70*0.25 + 90*0.35 = 78.0
	assert.Equal(t, 78.0, CalculateFinalScore(80, 60, 70, 90))

	assert.Equal(t, 0.0, CalculateFinalScore(0, 0, 0, 0))
	assert.Equal(t, 100.0, CalculateFinalScore(100, 100, 100, 100))
}

func TestFinalScoreRoundsToTwoDecimals(t *testing.T) {
	got := CalculateFinalScore(33.333, 33.333, 33.333, 33.333)
	assert.Equal(t, 33.33, got)
}
