// Package insights is the deterministic, rule-based scoring engine for
// competitor videos. It never calls an LLM, never errors, and treats every
// missing optional input as absent rather than invalid, so strategic insights
// are always available even when every external collaborator fails.
package insights

import (
	"time"

	"creatorlens/internal/core"
)

// DescriptionInsight summarizes the description's metadata quality.
type DescriptionInsight struct {
	Length        int    `json:"length"`
	HasTimestamps bool   `json:"hasTimestamps"`
	Insight       string `json:"insight"`
}

// StrategicInsights is the full heuristic output, recomputed on every request
// and never persisted.
type StrategicInsights struct {
	Title         TitleInsight         `json:"title"`
	Timing        TimingInsight        `json:"timing"`
	Length        LengthInsight        `json:"length"`
	Engagement    EngagementInsight    `json:"engagement"`
	Competition   CompetitionInsight   `json:"competition"`
	Opportunity   OpportunityInsight   `json:"opportunity"`
	Description   DescriptionInsight   `json:"description"`
	Format        FormatInsight        `json:"format"`
	BeatThisVideo []core.ChecklistItem `json:"beatThisVideo"`
}

// Build runs every sub-scorer over the video metadata. commentsAnalysis may be
// nil; checklist is the already-normalized LLM checklist, and the heuristic
// fallback fills in when it is empty.
func Build(now time.Time, video core.Video, commentsAnalysis *core.CommentsAnalysis, checklist []core.ChecklistItem) StrategicInsights {
	var viewerAsks []string
	if commentsAnalysis != nil {
		viewerAsks = commentsAnalysis.ViewersAskedFor
	}

	if len(checklist) == 0 {
		checklist = FallbackChecklist(video, viewerAsks)
	}

	return StrategicInsights{
		Title:         ScoreTitle(video.Title),
		Timing:        AnalyzeTiming(now, video.PublishedAt),
		Length:        AnalyzeLength(video.DurationSec),
		Engagement:    BenchmarkEngagement(video.ViewCount, video.LikeCount, video.CommentCount),
		Competition:   AssessCompetition(video.ViewCount, video.LikeCount, int64(video.DurationSec)),
		Opportunity:   ScoreOpportunity(video.Tags, video.Description, video.DurationSec, viewerAsks),
		Description:   analyzeDescription(video.Description),
		Format:        DetectFormat(video.Title, video.Description, video.DurationSec, video.ViewCount),
		BeatThisVideo: checklist,
	}
}

func analyzeDescription(description string) DescriptionInsight {
	insight := DescriptionInsight{
		Length:        len(description),
		HasTimestamps: timestampPattern.MatchString(description),
	}

	switch {
	case insight.Length == 0:
		insight.Insight = "No description at all; any metadata effort beats this"
	case insight.Length < 200:
		insight.Insight = "Minimal description leaves search intent uncovered"
	case insight.HasTimestamps:
		insight.Insight = "Well-structured description with chapters"
	default:
		insight.Insight = "Substantial description but no chapter structure"
	}

	return insight
}
