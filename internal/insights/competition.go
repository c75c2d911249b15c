package insights

// Competition difficulty scores.
const (
	DifficultyEasy     = "Easy"
	DifficultyMedium   = "Medium"
	DifficultyHard     = "Hard"
	DifficultyVeryHard = "Very Hard"
)

// CompetitionInsight estimates how hard this video is to outrank.
type CompetitionInsight struct {
	Score   string   `json:"score"`
	Reasons []string `json:"reasons"`
}

// AssessCompetition buckets difficulty by absolute view count, then appends
// qualitative reasons the bucket alone doesn't capture.
func AssessCompetition(viewCount, likeCount, durationSec int64) CompetitionInsight {
	insight := CompetitionInsight{Reasons: []string{}}

	switch {
	case viewCount > 1_000_000:
		insight.Score = DifficultyVeryHard
		insight.Reasons = append(insight.Reasons, "Over 1M views puts this in algorithmic favorite territory")
	case viewCount > 100_000:
		insight.Score = DifficultyHard
		insight.Reasons = append(insight.Reasons, "Six-figure view count means an established audience")
	case viewCount > 10_000:
		insight.Score = DifficultyMedium
		insight.Reasons = append(insight.Reasons, "Moderate traction; beatable with a stronger angle")
	default:
		insight.Score = DifficultyEasy
		insight.Reasons = append(insight.Reasons, "Low view count leaves the topic open")
	}

	if viewCount > 0 {
		likeRate := float64(likeCount) / float64(viewCount) * 100
		if likeRate >= 6 {
			insight.Reasons = append(insight.Reasons, "Exceptional like rate signals a loyal audience")
		}
	}
	if durationSec > 1200 {
		insight.Reasons = append(insight.Reasons, "Long runtime raises the production bar for competing content")
	}

	return insight
}
