package insights

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// TitleInsight is the rule-based quality assessment of a video title.
type TitleInsight struct {
	Score        int      `json:"score"`
	HasNumber    bool     `json:"hasNumber"`
	HasTimeframe bool     `json:"hasTimeframe"`
	Length       int      `json:"length"`
	Signals      []string `json:"signals"`
}

// Power words that reliably lift click-through on growth content. Matched
// case-insensitively as substrings.
var powerWords = []string{
	"secret", "proven", "ultimate", "insane", "crazy", "easy", "free",
	"mistake", "doubled", "tripled", "viral", "blew up", "exposed",
	"honest", "brutal", "underrated",
}

var (
	digitPattern     = regexp.MustCompile(`\d`)
	curiosityPattern = regexp.MustCompile(`(?i)(\?|\.\.\.|\b(how|why|what|secret|truth|reveal|nobody|everyone)\b)`)
	timeframePattern = regexp.MustCompile(`(?i)(\b202\d\b|\b(today|now|this year)\b|\b\d+\s*(day|week|month|hour)s?\b)`)
)

// ScoreTitle scores a title on a 1-10 scale from a base of 5. Each signal
// contributes a fixed delta; the raw score is rounded, then clamped.
func ScoreTitle(title string) TitleInsight {
	score := 5.0
	insight := TitleInsight{Length: len(title), Signals: []string{}}

	switch {
	case len(title) >= 40 && len(title) <= 60:
		score++
		insight.Signals = append(insight.Signals, "Title length is in the 40-60 character sweet spot")
	case len(title) < 30:
		score--
		insight.Signals = append(insight.Signals, "Title is short; consider adding a specific hook")
	case len(title) > 70:
		insight.Signals = append(insight.Signals, "Title may be truncated in search results")
	}

	if digitPattern.MatchString(title) {
		score++
		insight.HasNumber = true
		insight.Signals = append(insight.Signals, "Contains a number, which draws the eye in browse")
	}

	if word := matchPowerWord(title); word != "" {
		score++
		insight.Signals = append(insight.Signals, fmt.Sprintf("Uses power word %q", word))
	}

	if curiosityPattern.MatchString(title) {
		score++
		insight.Signals = append(insight.Signals, "Opens a curiosity gap")
	}

	if timeframePattern.MatchString(title) {
		score += 0.5
		insight.HasTimeframe = true
		insight.Signals = append(insight.Signals, "References a timeframe, signaling recency")
	}

	insight.Score = clampScore(int(math.Round(score)))
	return insight
}

func matchPowerWord(title string) string {
	lower := strings.ToLower(title)
	for _, w := range powerWords {
		if strings.Contains(lower, w) {
			return w
		}
	}
	return ""
}

func clampScore(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}
