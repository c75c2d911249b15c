// Package core defines the domain types shared across creatorlens.
package core

import (
	"encoding/json"
	"time"
)

// Video is the current public metadata of a YouTube video as returned by the
// Data API. Counter fields are volatile and excluded from content fingerprints.
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Tags         []string  `json:"tags"`
	DurationSec  int       `json:"durationSec"`
	CategoryID   string    `json:"categoryId"`
	ChannelID    string    `json:"channelId"`
	ChannelTitle string    `json:"channelTitle"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	PublishedAt  time.Time `json:"publishedAt"`
	ViewCount    int64     `json:"viewCount"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
}

// Comment is a single public comment on a video.
type Comment struct {
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	LikeCount   int64     `json:"likeCount"`
	PublishedAt time.Time `json:"publishedAt"`
}

// VideoSnapshot is an immutable point-in-time view-count capture for a tracked
// video, written by the snapshot collector and read newest-first by the
// velocity calculator.
type VideoSnapshot struct {
	VideoID    string    `json:"videoId"`
	CapturedAt time.Time `json:"capturedAt"`
	ViewCount  int64     `json:"viewCount"`
}

// CompetitorVideoRecord is the mutable per-video aggregate persisted in
// Postgres. The analysis cache slot (JSON + content hash + captured-at) is
// updated in place on every cache miss; rows are never versioned.
// AnalysisContentHash is nullable: rows written before fingerprinting was
// introduced have no hash and are trusted inside their TTL window.
type CompetitorVideoRecord struct {
	VideoID             string          `json:"videoId"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Tags                []string        `json:"tags"`
	DurationSec         int             `json:"durationSec"`
	CategoryID          string          `json:"categoryId"`
	ChannelID           string          `json:"channelId"`
	ChannelTitle        string          `json:"channelTitle"`
	ThumbnailURL        string          `json:"thumbnailUrl"`
	PublishedAt         time.Time       `json:"publishedAt"`
	AnalysisJSON        json.RawMessage `json:"analysisJson,omitempty"`
	AnalysisContentHash *string         `json:"analysisContentHash,omitempty"`
	AnalysisCapturedAt  *time.Time      `json:"analysisCapturedAt,omitempty"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// CommentAnalysisRecord is the persisted comments-analysis cache slot. It lives
// in its own row with its own content hash and TTL, independent of the full
// analysis cache.
type CommentAnalysisRecord struct {
	VideoID           string          `json:"videoId"`
	AnalysisJSON      json.RawMessage `json:"analysisJson"`
	ContentHash       string          `json:"contentHash"`
	CapturedAt        time.Time       `json:"capturedAt"`
	SentimentPositive int             `json:"sentimentPositive"`
	SentimentNeutral  int             `json:"sentimentNeutral"`
	SentimentNegative int             `json:"sentimentNegative"`
	ThemesJSON        json.RawMessage `json:"themesJson"`
}

// SentimentBreakdown is the percentage split of comment sentiment.
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// CommentsAnalysis is the LLM-derived (or sentinel) analysis of a video's
// comment section. Array fields are always non-nil after normalization.
// Error is set when the analysis is a degraded fallback so callers can tell
// "no themes found" apart from "analysis failed"; degraded results are never
// persisted.
type CommentsAnalysis struct {
	Sentiment        SentimentBreakdown `json:"sentiment"`
	Themes           []string           `json:"themes"`
	ViewersAskedFor  []string           `json:"viewersAskedFor"`
	Praise           []string           `json:"praise"`
	Complaints       []string           `json:"complaints"`
	TopComments      []Comment          `json:"topComments"`
	CommentsDisabled bool               `json:"commentsDisabled,omitempty"`
	Error            string             `json:"error,omitempty"`
}

// ChecklistItem is one suggested action for outperforming a competitor video.
// Difficulty is Easy/Medium/Hard, Impact is Low/Medium/High.
type ChecklistItem struct {
	Action     string `json:"action"`
	Difficulty string `json:"difficulty"`
	Impact     string `json:"impact"`
}

// CompetitorAnalysis is the LLM-derived strategic analysis of a competitor
// video. BeatThisVideo is stripped into a sibling artifact before the
// remainder is persisted as the analysis cache payload.
type CompetitorAnalysis struct {
	WhatItsAbout  string          `json:"whatItsAbout"`
	WhyItsWorking []string        `json:"whyItsWorking"`
	Themes        []string        `json:"themes"`
	TitlePatterns []string        `json:"titlePatterns"`
	RemixIdeas    []string        `json:"remixIdeas"`
	BeatThisVideo []ChecklistItem `json:"beatThisVideo,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// DerivedMetrics are per-request numeric signals computed from raw counters
// and snapshot history. Never persisted; pointer fields stay nil when the
// underlying data is missing.
type DerivedMetrics struct {
	ViewsPerDay       int64    `json:"viewsPerDay"`
	Velocity24h       *int64   `json:"velocity24h,omitempty"`
	Velocity7d        *int64   `json:"velocity7d,omitempty"`
	EngagementPerView *float64 `json:"engagementPerView,omitempty"`
	DataStatus        string   `json:"dataStatus"`
}

// Data status values for DerivedMetrics.
const (
	DataStatusReady    = "ready"
	DataStatusBuilding = "building"
)

// User is an authenticated account. Plan drives entitlement quotas.
type User struct {
	ID       string `json:"id"`
	APIToken string `json:"-"`
	Plan     string `json:"plan"`
}

// Channel is a creator channel linked to a user account. Ownership of the
// channel named in a request is verified against this record.
type Channel struct {
	ID               string `json:"id"`
	UserID           string `json:"userId"`
	YouTubeChannelID string `json:"youtubeChannelId"`
	Title            string `json:"title"`
}
