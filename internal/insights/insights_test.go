package insights

import (
	"strings"
	"testing"
	"time"

	"creatorlens/internal/core"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestAssessCompetition_Buckets(t *testing.T) {
	cases := []struct {
		views int64
		want  string
	}{
		{1_500_000, DifficultyVeryHard},
		{1_000_001, DifficultyVeryHard},
		{500_000, DifficultyHard},
		{50_000, DifficultyMedium},
		{5_000, DifficultyEasy},
		{0, DifficultyEasy},
	}
	for _, tc := range cases {
		got := AssessCompetition(tc.views, 0, 0)
		if got.Score != tc.want {
			t.Errorf("AssessCompetition(%d) = %s, want %s", tc.views, got.Score, tc.want)
		}
		if len(got.Reasons) == 0 {
			t.Errorf("AssessCompetition(%d) should always include a reason", tc.views)
		}
	}
}

func TestAssessCompetition_QualitativeReasons(t *testing.T) {
	// 8% like rate and a 25-minute runtime add two extra reasons
	got := AssessCompetition(100_000, 8_000, 1500)
	if len(got.Reasons) != 3 {
		t.Errorf("expected 3 reasons (bucket + like rate + runtime), got %d: %v", len(got.Reasons), got.Reasons)
	}
}

func TestBenchmarkEngagement_Buckets(t *testing.T) {
	cases := []struct {
		views, likes, comments int64
		likeBucket             string
		commentBucket          string
	}{
		{10_000, 100, 5, BucketBelowAverage, BucketBelowAverage},  // 1%, 0.5‰
		{10_000, 300, 20, BucketAverage, BucketAverage},           // 3%, 2‰
		{10_000, 500, 40, BucketAboveAverage, BucketAboveAverage}, // 5%, 4‰
		{10_000, 700, 80, BucketExceptional, BucketExceptional},   // 7%, 8‰
	}
	for _, tc := range cases {
		got := BenchmarkEngagement(tc.views, tc.likes, tc.comments)
		if got.LikeRateBucket != tc.likeBucket {
			t.Errorf("likes=%d views=%d: like bucket %s, want %s", tc.likes, tc.views, got.LikeRateBucket, tc.likeBucket)
		}
		if got.CommentRateBucket != tc.commentBucket {
			t.Errorf("comments=%d views=%d: comment bucket %s, want %s", tc.comments, tc.views, got.CommentRateBucket, tc.commentBucket)
		}
	}
}

func TestBenchmarkEngagement_ZeroViews(t *testing.T) {
	got := BenchmarkEngagement(0, 50, 10)
	if got.LikeRate != 0 || got.CommentRate != 0 {
		t.Error("zero views must yield zero rates, not a division error")
	}
	if got.LikeRateBucket != BucketBelowAverage {
		t.Errorf("zero-view like bucket = %s, want %s", got.LikeRateBucket, BucketBelowAverage)
	}
}

func TestAnalyzeLength_Categories(t *testing.T) {
	cases := []struct {
		sec      int
		category string
		optimal  bool
	}{
		{120, "Short", false},
		{420, "Medium", true},
		{900, "Long", false}, // 15 min, outside 5-12
		{660, "Long", true},  // 11 min
		{1500, "Very Long", false},
	}
	for _, tc := range cases {
		got := AnalyzeLength(tc.sec)
		if got.Category != tc.category {
			t.Errorf("AnalyzeLength(%d).Category = %s, want %s", tc.sec, got.Category, tc.category)
		}
		if got.OptimalForTopic != tc.optimal {
			t.Errorf("AnalyzeLength(%d).OptimalForTopic = %v, want %v", tc.sec, got.OptimalForTopic, tc.optimal)
		}
		if got.Insight == "" {
			t.Errorf("AnalyzeLength(%d) should carry an insight string", tc.sec)
		}
	}
}

func TestAnalyzeTiming_Buckets(t *testing.T) {
	cases := []struct {
		hour        int
		msgFragment string
	}{
		{10, "mid-morning"},
		{15, "afternoon"},
		{19, "evening"},
		{3, "off-peak"},
	}
	for _, tc := range cases {
		published := time.Date(2026, 3, 10, tc.hour, 30, 0, 0, time.UTC)
		got := AnalyzeTiming(now, published)
		if got.Hour != tc.hour {
			t.Errorf("hour = %d, want %d", got.Hour, tc.hour)
		}
		if !contains(got.Message, tc.msgFragment) {
			t.Errorf("hour %d message %q should mention %q", tc.hour, got.Message, tc.msgFragment)
		}
	}
}

func TestAnalyzeTiming_WeekendAndDaysAgo(t *testing.T) {
	published := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) // Saturday, 1 day before now
	got := AnalyzeTiming(now, published)

	if !got.IsWeekend {
		t.Error("March 14 2026 is a Saturday")
	}
	if got.DayOfWeek != "Saturday" {
		t.Errorf("dayOfWeek = %s, want Saturday", got.DayOfWeek)
	}
	if got.DaysAgo != 1 {
		t.Errorf("daysAgo = %d, want 1", got.DaysAgo)
	}
}

func TestScoreOpportunity_AllGapsOpen(t *testing.T) {
	got := ScoreOpportunity([]string{"one"}, "short desc", 600, []string{"make a part 2"})

	// 5 + 1 + 1 + 0.5 + 1 = 8.5, rounds to 8 or 9, clamped within range
	if got.Score < 8 {
		t.Errorf("score = %d, want >= 8 when every gap is open", got.Score)
	}
	if !contains(got.Verdict, "Strong") {
		t.Errorf("verdict %q should be the strong bucket", got.Verdict)
	}
	if len(got.Signals) != 4 {
		t.Errorf("expected 4 signals, got %d", len(got.Signals))
	}
}

func TestScoreOpportunity_WellCoveredVideo(t *testing.T) {
	tags := make([]string, 15)
	for i := range tags {
		tags[i] = "tag"
	}
	longDesc := make([]byte, 300)
	for i := range longDesc {
		longDesc[i] = 'd'
	}
	got := ScoreOpportunity(tags, string(longDesc)+" 0:00 intro", 600, nil)

	if got.Score != 5 {
		t.Errorf("score = %d, want base 5 with no gaps", got.Score)
	}
}

func TestDetectFormat_PriorityOrder(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"How to light a home studio", "Tutorial"},
		{"Honest review of the A7IV", "Review"},
		{"A day in the life of a streamer", "Vlog"},
		{"Editor reacts to my first video", "Reaction"},
		{"The rise of lo-fi channels", "Story/Documentary"},
		{"Top 10 editing shortcuts", "Listicle"},
		{"What is color grading, explained", "Explainer"},
		{"camera gear thoughts", "General"},
		// Tutorial outranks Listicle when both match
		{"How to win: top 5 tricks", "Tutorial"},
	}
	for _, tc := range cases {
		got := DetectFormat(tc.title, "", 300, 1000)
		if got.LikelyFormat != tc.want {
			t.Errorf("DetectFormat(%q) = %s, want %s", tc.title, got.LikelyFormat, tc.want)
		}
	}
}

func TestDetectFormat_ProductionAndPace(t *testing.T) {
	high := DetectFormat("t", "", 100, 600_000)
	if high.ProductionLevel != "High" {
		t.Errorf("600k views should map to High production, got %s", high.ProductionLevel)
	}
	basic := DetectFormat("t", "", 100, 900)
	if basic.ProductionLevel != "Basic" {
		t.Errorf("900 views should map to Basic production, got %s", basic.ProductionLevel)
	}
	if DetectFormat("t", "", 120, 0).PaceEstimate != "Fast-paced" {
		t.Error("2-minute video should be Fast-paced")
	}
	if DetectFormat("t", "", 1500, 0).PaceEstimate != "Measured" {
		t.Error("25-minute video should be Measured")
	}
}

func TestKeywordFallback(t *testing.T) {
	got := KeywordFallback(
		"Editing tutorial for beginners",
		"This editing tutorial covers editing basics. Editing for beginners.",
	)

	if len(got) == 0 {
		t.Fatal("expected keywords from a non-empty title/description")
	}
	if got[0] != "editing" {
		t.Errorf("most frequent keyword = %q, want %q", got[0], "editing")
	}
	for _, w := range got {
		if _, stop := stopwords[w]; stop {
			t.Errorf("stopword %q leaked into keyword fallback", w)
		}
	}
}

func TestKeywordFallback_CapsAtTen(t *testing.T) {
	got := KeywordFallback("alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu", "")
	if len(got) > 10 {
		t.Errorf("keyword fallback returned %d entries, cap is 10", len(got))
	}
}

func TestBuild_NeverNilChecklist(t *testing.T) {
	video := core.Video{
		Title:       "some video",
		DurationSec: 400,
		PublishedAt: now.Add(-48 * time.Hour),
	}

	got := Build(now, video, nil, nil)

	if len(got.BeatThisVideo) < 4 || len(got.BeatThisVideo) > 6 {
		t.Errorf("fallback checklist has %d items, want 4-6", len(got.BeatThisVideo))
	}
	for _, item := range got.BeatThisVideo {
		if item.Action == "" || item.Difficulty == "" || item.Impact == "" {
			t.Errorf("checklist item incomplete: %+v", item)
		}
	}
}

func TestBuild_PrefersProvidedChecklist(t *testing.T) {
	video := core.Video{Title: "t", PublishedAt: now}
	provided := []core.ChecklistItem{{Action: "a sufficiently long provided action", Difficulty: "Easy", Impact: "High"}}

	got := Build(now, video, nil, provided)

	if len(got.BeatThisVideo) != 1 || got.BeatThisVideo[0].Action != provided[0].Action {
		t.Error("a provided checklist must pass through untouched")
	}
}

func TestBuild_ZeroValueVideoDoesNotPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Build panicked on zero-value video: %v", r)
		}
	}()
	_ = Build(now, core.Video{}, nil, nil)
}

func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}
