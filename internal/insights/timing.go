package insights

import "time"

// TimingInsight describes when the video was published relative to known
// engagement windows.
type TimingInsight struct {
	Message   string `json:"message"`
	Hour      int    `json:"hour"`
	DayOfWeek string `json:"dayOfWeek"`
	DaysAgo   int    `json:"daysAgo"`
	IsWeekend bool   `json:"isWeekend"`
}

// AnalyzeTiming buckets the publish hour into categorical posting-time advice.
func AnalyzeTiming(now, publishedAt time.Time) TimingInsight {
	hour := publishedAt.Hour()
	day := publishedAt.Weekday()

	insight := TimingInsight{
		Hour:      hour,
		DayOfWeek: day.String(),
		DaysAgo:   int(now.Sub(publishedAt).Hours() / 24),
		IsWeekend: day == time.Saturday || day == time.Sunday,
	}

	switch {
	case hour >= 9 && hour <= 11:
		insight.Message = "Published mid-morning, a strong window for search-driven traffic"
	case hour >= 14 && hour <= 17:
		insight.Message = "Published in the afternoon engagement window"
	case hour >= 18 && hour <= 21:
		insight.Message = "Published in prime evening hours, the peak browse window"
	default:
		insight.Message = "Published off-peak; performance likely relies on search and suggested traffic"
	}

	return insight
}
