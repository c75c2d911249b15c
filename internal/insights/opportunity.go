package insights

import (
	"math"
	"regexp"
)

var timestampPattern = regexp.MustCompile(`\d{1,2}:\d{2}`)

// OpportunityInsight scores how exploitable this video's weaknesses are.
type OpportunityInsight struct {
	Score   int      `json:"score"`
	Verdict string   `json:"verdict"`
	Signals []string `json:"signals"`
}

// ScoreOpportunity starts at 5 and rewards each gap the competitor left open:
// thin tagging, a short description, a long video without chapter timestamps,
// and unanswered viewer requests surfaced by the comments analysis.
func ScoreOpportunity(tags []string, description string, durationSec int, viewerAsks []string) OpportunityInsight {
	score := 5.0
	insight := OpportunityInsight{Signals: []string{}}

	if len(tags) < 10 {
		score++
		insight.Signals = append(insight.Signals, "Sparse tagging leaves search terms unclaimed")
	}
	if len(description) < 200 {
		score++
		insight.Signals = append(insight.Signals, "Thin description; richer metadata could outrank it")
	}
	if durationSec > 300 && !timestampPattern.MatchString(description) {
		score += 0.5
		insight.Signals = append(insight.Signals, "No chapter timestamps on a long video hurts its navigability")
	}
	if len(viewerAsks) > 0 {
		score++
		insight.Signals = append(insight.Signals, "Viewers asked for content the creator hasn't delivered")
	}

	insight.Score = clampScore(int(math.Round(score)))
	insight.Verdict = opportunityVerdict(insight.Score)
	return insight
}

func opportunityVerdict(score int) string {
	switch {
	case score >= 8:
		return "Strong opportunity: clear gaps to exploit"
	case score >= 6:
		return "Good opportunity with a differentiated angle"
	case score >= 4:
		return "Moderate opportunity; execution quality will decide"
	default:
		return "Limited opportunity: the competitor covered this well"
	}
}
