package insights

// LengthInsight categorizes video runtime.
type LengthInsight struct {
	Category        string  `json:"category"`
	Minutes         float64 `json:"minutes"`
	Insight         string  `json:"insight"`
	OptimalForTopic bool    `json:"optimalForTopic"`
}

// AnalyzeLength buckets duration into fixed categories. The 5-12 minute band
// is treated as the optimal range for mid-form topical content.
func AnalyzeLength(durationSec int) LengthInsight {
	minutes := float64(durationSec) / 60

	insight := LengthInsight{
		Minutes:         minutes,
		OptimalForTopic: minutes >= 5 && minutes <= 12,
	}

	switch {
	case minutes < 3:
		insight.Category = "Short"
		insight.Insight = "Short videos trade watch time for completion rate; fine for high-frequency posting"
	case minutes < 10:
		insight.Category = "Medium"
		insight.Insight = "Mid-length content balances watch time and completion, the safest competitive band"
	case minutes < 20:
		insight.Category = "Long"
		insight.Insight = "Long-form favors depth; retention in the first two minutes decides its fate"
	default:
		insight.Category = "Very Long"
		insight.Insight = "Very long runtime suggests documentary or livestream pacing; hard to beat on effort alone"
	}

	return insight
}
