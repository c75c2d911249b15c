package insights

import "regexp"

// FormatInsight estimates the video's content format and production style
// from metadata alone.
type FormatInsight struct {
	LikelyFormat    string `json:"likelyFormat"`
	ProductionLevel string `json:"productionLevel"`
	PaceEstimate    string `json:"paceEstimate"`
}

// formatRule pairs a format label with its detection pattern. Order matters:
// the first match wins.
type formatRule struct {
	label   string
	pattern *regexp.Regexp
}

var formatRules = []formatRule{
	{"Tutorial", regexp.MustCompile(`(?i)\b(how to|tutorial|guide|step[- ]by[- ]step|learn)\b`)},
	{"Review", regexp.MustCompile(`(?i)\b(review|unboxing|vs\.?|versus|comparison|compared)\b`)},
	{"Vlog", regexp.MustCompile(`(?i)\b(vlog|day in (the|my) life|week in my life)\b`)},
	{"Reaction", regexp.MustCompile(`(?i)\b(react(s|ion)?|responds? to)\b`)},
	{"Story/Documentary", regexp.MustCompile(`(?i)\b(story|documentary|the (rise|fall) of|history of)\b`)},
	{"Listicle", regexp.MustCompile(`(?i)(\btop \d+|\b\d+ (ways|things|tips|reasons|mistakes)\b|\bbest \d+)`)},
	{"Explainer", regexp.MustCompile(`(?i)\b(explained|what is|why (does|do|is)|science of)\b`)},
}

// DetectFormat classifies the video by scanning title and description against
// a fixed priority order of format patterns.
func DetectFormat(title, description string, durationSec int, viewCount int64) FormatInsight {
	text := title + " " + description

	insight := FormatInsight{LikelyFormat: "General"}
	for _, rule := range formatRules {
		if rule.pattern.MatchString(text) {
			insight.LikelyFormat = rule.label
			break
		}
	}

	switch {
	case viewCount > 500_000 || durationSec > 1200:
		insight.ProductionLevel = "High"
	case viewCount > 50_000:
		insight.ProductionLevel = "Medium"
	default:
		insight.ProductionLevel = "Basic"
	}

	switch {
	case durationSec < 180:
		insight.PaceEstimate = "Fast-paced"
	case durationSec < 600:
		insight.PaceEstimate = "Moderate"
	default:
		insight.PaceEstimate = "Measured"
	}

	return insight
}
