package analysis

import (
	"time"

	"creatorlens/internal/core"
	"creatorlens/internal/insights"
	"creatorlens/internal/metrics"
)

// DemoFixture returns a fixed assembled document for demo mode. No external
// collaborator is touched; everything derived is computed from canned inputs
// so the document stays internally consistent.
func DemoFixture(now time.Time) *Response {
	video := core.Video{
		ID:           "demo0video0",
		Title:        "How I Grew From 0 to 100K Subscribers in 12 Months",
		Description:  "The exact strategy I used to grow my channel from nothing. Timestamps:\n0:00 Intro\n1:45 Finding a niche\n5:30 Thumbnails\n9:10 Consistency",
		Tags:         []string{"youtube growth", "channel strategy", "creator tips"},
		DurationSec:  754,
		CategoryID:   "27",
		ChannelID:    "UCdemochannel0000000000",
		ChannelTitle: "Creator Playbook",
		PublishedAt:  now.Add(-45 * 24 * time.Hour),
		ViewCount:    182000,
		LikeCount:    9400,
		CommentCount: 1240,
	}

	snapshots := []core.VideoSnapshot{
		{VideoID: video.ID, CapturedAt: now.Add(-1 * time.Hour), ViewCount: 182000},
		{VideoID: video.ID, CapturedAt: now.Add(-24 * time.Hour), ViewCount: 176500},
		{VideoID: video.ID, CapturedAt: now.Add(-7 * 24 * time.Hour), ViewCount: 151000},
	}

	commentsAnalysis := &core.CommentsAnalysis{
		Sentiment: core.SentimentBreakdown{Positive: 78, Neutral: 15, Negative: 7},
		Themes:    []string{"niche selection", "thumbnail strategy", "upload consistency"},
		ViewersAskedFor: []string{
			"a deep dive on thumbnail A/B testing",
			"the analytics dashboard walkthrough",
		},
		Praise:     []string{"concrete numbers instead of vague advice", "clear chapter structure"},
		Complaints: []string{"wanted more detail on the first 1000 subscribers"},
		TopComments: []core.Comment{
			{Author: "GrowthWatcher", Text: "The niche section alone was worth it. Please do a thumbnail deep dive!", LikeCount: 412, PublishedAt: now.Add(-40 * 24 * time.Hour)},
			{Author: "SmallCreatorDiaries", Text: "Finally someone shows real numbers.", LikeCount: 289, PublishedAt: now.Add(-38 * 24 * time.Hour)},
		},
	}

	fullAnalysis := &core.CompetitorAnalysis{
		WhatItsAbout:  "A month-by-month retrospective of a growth experiment, walking through niche selection, packaging changes, and the publishing cadence that compounded into six-figure subscriber growth.",
		WhyItsWorking: []string{"Specific numbers build credibility", "Chapters make it skimmable", "The promise in the title is fully delivered"},
		Themes:        []string{"channel growth", "packaging", "consistency"},
		TitlePatterns: []string{"How I [result] in [timeframe]", "From [low] to [high]"},
		RemixIdeas: []string{
			"Apply the same month-by-month format to your own niche",
			"A '0 to 1K' version targeting brand-new creators",
		},
	}

	checklist := []core.ChecklistItem{
		{Action: "Open with the end result in the first 10 seconds", Difficulty: "Easy", Impact: "High"},
		{Action: "Add chapter timestamps for every major section", Difficulty: "Easy", Impact: "Medium"},
		{Action: "Show real analytics screenshots instead of describing them", Difficulty: "Medium", Impact: "High"},
		{Action: "Cover the 0-to-1K phase the original skips over", Difficulty: "Medium", Impact: "High"},
	}

	return &Response{
		Video:            video,
		Metrics:          metrics.Derive(now, video, snapshots),
		CommentsAnalysis: commentsAnalysis,
		Analysis:         fullAnalysis,
		Insights:         insights.Build(now, video, commentsAnalysis, checklist),
		Keywords:         video.Tags,
		AnalyzedAt:       now,
	}
}
