package scoring

// Repository activity sub-score weights.
const (
	weightStars        = 0.40
	weightCommits      = 0.40
	weightContributors = 0.20
)

// ScoreStars maps star count to a tier score. Below the lowest rung the
// score degrades sub-linearly (one point per star) so small projects are
// not all scored identically.
func ScoreStars(stars int) float64 {
	switch {
	case stars >= 50000:
		return 100
	case stars >= 10000:
		return 90
	case stars >= 5000:
		return 80
	case stars >= 1000:
		return 70
	case stars >= 500:
		return 60
	case stars >= 100:
		return 50
	case stars >= 10:
		return 40
	default:
		return max(0, float64(stars))
	}
}

// ScoreCommits maps commits in the last year to a tier score.
func ScoreCommits(commitsYear int) float64 {
	switch {
	case commitsYear >= 5000:
		return 100
	case commitsYear >= 2000:
		return 90
	case commitsYear >= 1000:
		return 80
	case commitsYear >= 500:
		return 70
	case commitsYear >= 200:
		return 60
	case commitsYear >= 50:
		return 50
	case commitsYear >= 10:
		return 40
	default:
		return max(0, float64(commitsYear)*2)
	}
}

// ScoreContributors maps contributor count to a tier score.
func ScoreContributors(contributors int) float64 {
	switch {
	case contributors >= 1000:
		return 100
	case contributors >= 500:
		return 90
	case contributors >= 200:
		return 80
	case contributors >= 100:
		return 70
	case contributors >= 50:
		return 60
	case contributors >= 20:
		return 50
	case contributors >= 5:
		return 40
	default:
		return max(0, float64(contributors)*5)
	}
}

// CalculateGitHubScore blends the three activity sub-scores: stars 40%,
// commits 40%, contributors 20%. Rounded to 2 decimal places.
func CalculateGitHubScore(stars, commitsYear, contributors int) float64 {
	score := ScoreStars(stars)*weightStars +
		ScoreCommits(commitsYear)*weightCommits +
		ScoreContributors(contributors)*weightContributors

	return round2(score)
}
