package models

import "time"

// RepoMetrics is the activity snapshot for a project's main repository.
// Fetched fresh per scoring request, never cached.
type RepoMetrics struct {
	URL          string     `json:"url"`
	Stars        int        `json:"stars"`
	Forks        int        `json:"forks"`
	Watchers     int        `json:"watchers"`
	OpenIssues   int        `json:"open_issues"`
	CreatedAt    *time.Time `json:"created_at"`
	LastCommit   *time.Time `json:"last_commit"`
	License      *string    `json:"license"`
	IsFork       bool       `json:"is_fork"`
	CommitsYear  int        `json:"commits_year"`
	Contributors int        `json:"contributors"`
}

// FactorScore is one scored factor: the raw metric, its tier score and the
// weight it contributes to the final score.
type FactorScore struct {
	Value  float64 `json:"value"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// ActivityScore is the repository-activity factor. Metrics is nil when no
// repository could be resolved for the coin.
type ActivityScore struct {
	Score   float64      `json:"score"`
	Weight  float64      `json:"weight"`
	Metrics *RepoMetrics `json:"metrics"`
}

// Breakdown itemizes every factor behind a final score so consumers can
// audit how the number was derived.
type Breakdown struct {
	MarketCap       FactorScore   `json:"market_cap"`
	Volume24h       FactorScore   `json:"volume_24h"`
	HolderDiversity FactorScore   `json:"holder_diversity"`
	GitHubActivity  ActivityScore `json:"github_activity"`
}

// ScoreBreakdown is the full scoring result for one coin.
type ScoreBreakdown struct {
	CoinID    string    `json:"coin_id"`
	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
}
