// Package analysis orchestrates the competitor video analysis pipeline:
// cache gating, LLM composition with fallbacks, heuristic insights, derived
// metrics, and best-effort persistence of newly computed cache state.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"creatorlens/internal/core"
	"creatorlens/internal/fingerprint"
	"creatorlens/internal/freshness"
	"creatorlens/internal/insights"
	"creatorlens/internal/llm"
	"creatorlens/internal/logger"
	"creatorlens/internal/metrics"
	"creatorlens/internal/persistence"
	"creatorlens/internal/ratelimit"
	"creatorlens/internal/youtube"
)

// FeatureComments is the rate-limited feature name for comment fetches.
const FeatureComments = "comments"

const (
	maxCommentsFetch   = 50
	maxCommentsPrompt  = 30
	maxTopComments     = 10
	maxSnapshots       = 5
	maxMoreFromChannel = 6
)

// ErrVideoNotFound mirrors the upstream fetcher's not-found condition so
// handlers need not import the youtube package to classify it.
var ErrVideoNotFound = youtube.ErrVideoNotFound

// Request carries everything one analysis run needs. Now is injected so every
// freshness and velocity computation inside a request sees the same instant.
type Request struct {
	UserID                 string
	VideoID                string
	ChannelTitle           string
	IncludeMoreFromChannel bool
	Now                    time.Time
}

// Response is the assembled analysis document returned to the caller.
type Response struct {
	Video            core.Video                 `json:"video"`
	Metrics          core.DerivedMetrics        `json:"metrics"`
	CommentsAnalysis *core.CommentsAnalysis     `json:"commentsAnalysis"`
	Analysis         *core.CompetitorAnalysis   `json:"analysis"`
	Insights         insights.StrategicInsights `json:"insights"`
	MoreFromChannel  []core.Video               `json:"moreFromChannel,omitempty"`
	Keywords         []string                   `json:"keywords"`
	AnalyzedAt       time.Time                  `json:"analyzedAt"`
}

// Composer runs the full pipeline. All external calls are sequential: comments
// fetch, comments LLM, analysis LLM, checklist LLM, more-from-channel fetch.
// Later steps consume earlier outputs, so there is nothing to parallelize.
type Composer struct {
	Videos      persistence.VideoRepository
	Comments    persistence.CommentAnalysisRepository
	Snapshots   persistence.SnapshotRepository
	Fetcher     youtube.Fetcher
	Provider    llm.Provider
	Limiter     *ratelimit.Limiter
	CommentsTTL time.Duration
	AnalysisTTL time.Duration

	log *slog.Logger
}

// NewComposer wires the pipeline against a database and live collaborators.
func NewComposer(db persistence.Database, fetcher youtube.Fetcher, provider llm.Provider, limiter *ratelimit.Limiter, commentsTTL, analysisTTL time.Duration) *Composer {
	return &Composer{
		Videos:      db.Videos(),
		Comments:    db.CommentAnalyses(),
		Snapshots:   db.Snapshots(),
		Fetcher:     fetcher,
		Provider:    provider,
		Limiter:     limiter,
		CommentsTTL: commentsTTL,
		AnalysisTTL: analysisTTL,
	}
}

func (c *Composer) logger() *slog.Logger {
	if c.log == nil {
		c.log = logger.Get()
	}
	return c.log
}

// Analyze runs the whole pipeline for one video. Only a missing video or a
// failed metadata fetch is a hard error; every degraded sub-result carries an
// explicit error marker inside the response instead.
func (c *Composer) Analyze(ctx context.Context, req Request) (*Response, error) {
	video, err := c.Fetcher.VideoDetail(ctx, req.VideoID)
	if err != nil {
		if errors.Is(err, youtube.ErrVideoNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to fetch video detail: %w", err)
	}

	videoHash := fingerprint.Video(*video)

	snapshots, err := c.Snapshots.ListRecent(ctx, video.ID, maxSnapshots)
	if err != nil {
		c.logger().Warn("Failed to load snapshots, velocity will be unavailable", "videoId", video.ID, "error", err)
		snapshots = nil
	}

	commentsAnalysis := c.composeComments(ctx, req, *video)

	fullAnalysis, checklist, analysisFresh := c.composeAnalysis(ctx, req, *video, videoHash, commentsAnalysis)

	backfilled := false
	if len(checklist) == 0 {
		checklist = c.backfillChecklist(ctx, *video)
		backfilled = len(checklist) > 0
	}

	resp := &Response{
		Video:            *video,
		Metrics:          metrics.Derive(req.Now, *video, snapshots),
		CommentsAnalysis: commentsAnalysis,
		Analysis:         fullAnalysis,
		Insights:         insights.Build(req.Now, *video, commentsAnalysis, checklist),
		Keywords:         keywords(*video),
		AnalyzedAt:       req.Now,
	}

	if req.IncludeMoreFromChannel {
		resp.MoreFromChannel = c.moreFromChannel(ctx, *video)
	}

	// Response is authoritative from here; cache writes are best-effort.
	c.persistAnalysis(ctx, req, *video, videoHash, fullAnalysis, checklist, analysisFresh, backfilled)

	return resp, nil
}

// composeComments resolves the comments analysis through its cache state
// machine. It never fails: disabled comments, fetch errors, rate limiting, and
// LLM errors all degrade to an explicit sentinel result.
func (c *Composer) composeComments(ctx context.Context, req Request, video core.Video) *core.CommentsAnalysis {
	cached, err := c.Comments.Get(ctx, video.ID)
	if err != nil && !errors.Is(err, persistence.ErrNotFound) {
		c.logger().Warn("Comment analysis cache read failed", "videoId", video.ID, "error", err)
		cached = nil
	}

	if cached != nil {
		state := freshness.Evaluate(req.Now, cached.CapturedAt, c.CommentsTTL, &cached.ContentHash, cached.ContentHash)
		if state.Usable() {
			if analysis := decodeCachedComments(cached.AnalysisJSON); analysis != nil {
				return analysis
			}
			c.logger().Warn("Cached comment analysis is malformed, refreshing", "videoId", video.ID)
		}
	}

	if c.Limiter != nil {
		if d := c.Limiter.Check(req.UserID, FeatureComments); !d.Allowed {
			c.logger().Warn("Comment fetch rate limited", "userId", req.UserID, "videoId", video.ID)
			return sentinelComments(false, "comment fetch rate limited", nil)
		}
	}

	comments, disabled, err := c.Fetcher.Comments(ctx, video.ID, maxCommentsFetch)
	if err != nil {
		c.logger().Warn("Comment fetch failed", "videoId", video.ID, "error", err)
		return sentinelComments(false, "comment fetch failed", nil)
	}
	if disabled {
		return sentinelComments(true, "", nil)
	}
	if len(comments) == 0 {
		return sentinelComments(false, "", nil)
	}

	hash := fingerprint.Comments(comments)

	// Same comment set as last time and a real analysis on file: reuse it,
	// but always surface the latest top comments.
	if cached != nil && cached.ContentHash == hash {
		if analysis := decodeCachedComments(cached.AnalysisJSON); analysis != nil && len(analysis.Themes) > 0 {
			analysis.TopComments = topComments(comments, maxTopComments)
			return analysis
		}
	}

	prompt := llm.BuildCommentsAnalysisPrompt(video.Title, topComments(comments, maxCommentsPrompt))
	text, err := c.Provider.Generate(ctx, prompt)
	if err == nil {
		var analysis *core.CommentsAnalysis
		analysis, err = llm.DecodeCommentsAnalysis(text)
		if err == nil {
			analysis.TopComments = topComments(comments, maxTopComments)
			if len(analysis.Themes) > 0 {
				c.persistComments(ctx, video.ID, analysis, hash, req.Now)
			}
			return analysis
		}
	}

	c.logger().Warn("Comments analysis failed, returning fallback", "videoId", video.ID, "error", err)
	return sentinelComments(false, "comment analysis failed", topComments(comments, maxTopComments))
}

// composeAnalysis resolves the full competitor analysis. The returned checklist
// is whatever the cache or LLM yielded after normalization (possibly empty);
// analysisFresh reports whether the payload was newly computed and should be
// written back to the cache.
func (c *Composer) composeAnalysis(ctx context.Context, req Request, video core.Video, videoHash string, comments *core.CommentsAnalysis) (analysis *core.CompetitorAnalysis, checklist []core.ChecklistItem, analysisFresh bool) {
	rec, err := c.Videos.Get(ctx, video.ID)
	if err != nil && !errors.Is(err, persistence.ErrNotFound) {
		c.logger().Warn("Video cache read failed", "videoId", video.ID, "error", err)
		rec = nil
	}

	if rec != nil && len(rec.AnalysisJSON) > 0 {
		var cachedAt time.Time
		if rec.AnalysisCapturedAt != nil {
			cachedAt = *rec.AnalysisCapturedAt
		}
		state := freshness.Evaluate(req.Now, cachedAt, c.AnalysisTTL, rec.AnalysisContentHash, videoHash)
		if state.Usable() {
			if cached := decodeCachedAnalysis(rec.AnalysisJSON); cached != nil {
				checklist = insights.NormalizeChecklist(llm.RecoverChecklist(rec.AnalysisJSON))
				cached.BeatThisVideo = nil
				return cached, checklist, false
			}
			c.logger().Warn("Cached analysis is malformed, regenerating", "videoId", video.ID)
		}
	}

	prompt := llm.BuildCompetitorAnalysisPrompt(video, comments, req.ChannelTitle)
	text, err := c.Provider.Generate(ctx, prompt)
	if err == nil {
		analysis, err = llm.DecodeCompetitorAnalysis(text)
	}
	if err != nil {
		c.logger().Warn("Full analysis failed, returning fixed fallback", "videoId", video.ID, "error", err)
		return fallbackAnalysis(video.Title), nil, false
	}

	checklist = insights.NormalizeChecklist(analysis.BeatThisVideo)
	analysis.BeatThisVideo = nil

	if echoesTitle(video.Title, analysis.WhatItsAbout) {
		if rewritten, err := c.Provider.Generate(ctx, llm.BuildRewriteAboutPrompt(video.Title, analysis.WhatItsAbout)); err == nil {
			if rewritten = strings.TrimSpace(rewritten); rewritten != "" {
				analysis.WhatItsAbout = rewritten
			}
		} else {
			c.logger().Warn("Corrective rewrite failed, keeping original summary", "videoId", video.ID, "error", err)
		}
	}

	return analysis, checklist, true
}

// backfillChecklist issues the dedicated checklist call. Failure leaves the
// list empty; the heuristic fallback covers it downstream.
func (c *Composer) backfillChecklist(ctx context.Context, video core.Video) []core.ChecklistItem {
	text, err := c.Provider.Generate(ctx, llm.BuildChecklistPrompt(video))
	if err == nil {
		var items []core.ChecklistItem
		items, err = llm.DecodeChecklist(text)
		if err == nil {
			return insights.NormalizeChecklist(items)
		}
	}
	c.logger().Warn("Checklist backfill failed", "videoId", video.ID, "error", err)
	return nil
}

func (c *Composer) moreFromChannel(ctx context.Context, video core.Video) []core.Video {
	videos, err := c.Fetcher.RecentChannelVideos(ctx, video.ChannelID, maxMoreFromChannel+2)
	if err != nil {
		c.logger().Warn("More-from-channel fetch failed", "channelId", video.ChannelID, "error", err)
		return nil
	}

	out := make([]core.Video, 0, maxMoreFromChannel)
	for _, v := range videos {
		if v.ID == video.ID {
			continue
		}
		out = append(out, v)
		if len(out) == maxMoreFromChannel {
			break
		}
	}
	return out
}

func (c *Composer) persistComments(ctx context.Context, videoID string, analysis *core.CommentsAnalysis, hash string, now time.Time) {
	payload, err := json.Marshal(analysis)
	if err != nil {
		c.logger().Error("Failed to marshal comment analysis", "videoId", videoID, "error", err)
		return
	}
	themesJSON, err := json.Marshal(analysis.Themes)
	if err != nil {
		themesJSON = []byte("[]")
	}

	rec := &core.CommentAnalysisRecord{
		VideoID:           videoID,
		AnalysisJSON:      payload,
		ContentHash:       hash,
		CapturedAt:        now,
		SentimentPositive: analysis.Sentiment.Positive,
		SentimentNeutral:  analysis.Sentiment.Neutral,
		SentimentNegative: analysis.Sentiment.Negative,
		ThemesJSON:        themesJSON,
	}
	if err := c.Comments.Upsert(ctx, rec); err != nil {
		c.logger().Warn("Comment analysis cache write failed", "videoId", videoID, "error", err)
	}
}

// persistAnalysis writes newly computed cache state after the response is
// built. A fresh analysis gets a full slot write with the new content hash; a
// backfilled checklist on a still-fresh cache entry only touches the payload.
// Degraded fallback results are never written.
func (c *Composer) persistAnalysis(ctx context.Context, req Request, video core.Video, videoHash string, analysis *core.CompetitorAnalysis, checklist []core.ChecklistItem, analysisFresh, backfilled bool) {
	if analysis == nil || analysis.Error != "" {
		return
	}

	rec := recordFromVideo(video)
	if err := c.Videos.UpsertMetadata(ctx, rec); err != nil {
		c.logger().Warn("Video metadata write failed", "videoId", video.ID, "error", err)
		return
	}

	if !analysisFresh && !backfilled {
		return
	}

	stored := *analysis
	stored.BeatThisVideo = checklist
	stored.Error = ""
	payload, err := json.Marshal(stored)
	if err != nil {
		c.logger().Error("Failed to marshal analysis", "videoId", video.ID, "error", err)
		return
	}

	if analysisFresh {
		if err := c.Videos.UpsertAnalysis(ctx, video.ID, payload, videoHash, req.Now); err != nil {
			c.logger().Warn("Analysis cache write failed", "videoId", video.ID, "error", err)
		}
		return
	}

	// Cached analysis plus a backfilled checklist: refresh the payload only,
	// leaving the original hash and captured-at so the TTL is not extended.
	if err := c.Videos.UpdateAnalysisPayload(ctx, video.ID, payload); err != nil {
		c.logger().Warn("Checklist backfill write failed", "videoId", video.ID, "error", err)
	}
}

func recordFromVideo(v core.Video) *core.CompetitorVideoRecord {
	return &core.CompetitorVideoRecord{
		VideoID:      v.ID,
		Title:        v.Title,
		Description:  v.Description,
		Tags:         v.Tags,
		DurationSec:  v.DurationSec,
		CategoryID:   v.CategoryID,
		ChannelID:    v.ChannelID,
		ChannelTitle: v.ChannelTitle,
		ThumbnailURL: v.ThumbnailURL,
		PublishedAt:  v.PublishedAt,
	}
}

func keywords(v core.Video) []string {
	if len(v.Tags) > 0 {
		return v.Tags
	}
	return insights.KeywordFallback(v.Title, v.Description)
}

func topComments(comments []core.Comment, n int) []core.Comment {
	if len(comments) < n {
		n = len(comments)
	}
	out := make([]core.Comment, n)
	copy(out, comments[:n])
	return out
}

func sentinelComments(disabled bool, errMsg string, top []core.Comment) *core.CommentsAnalysis {
	if top == nil {
		top = []core.Comment{}
	}
	return &core.CommentsAnalysis{
		Themes:           []string{},
		ViewersAskedFor:  []string{},
		Praise:           []string{},
		Complaints:       []string{},
		TopComments:      top,
		CommentsDisabled: disabled,
		Error:            errMsg,
	}
}

func decodeCachedComments(raw json.RawMessage) *core.CommentsAnalysis {
	var a core.CommentsAnalysis
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil
	}
	normalizeCommentsArrays(&a)
	return &a
}

func decodeCachedAnalysis(raw json.RawMessage) *core.CompetitorAnalysis {
	var a core.CompetitorAnalysis
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil
	}
	normalizeAnalysisArrays(&a)
	return &a
}

func normalizeCommentsArrays(a *core.CommentsAnalysis) {
	if a.Themes == nil {
		a.Themes = []string{}
	}
	if a.ViewersAskedFor == nil {
		a.ViewersAskedFor = []string{}
	}
	if a.Praise == nil {
		a.Praise = []string{}
	}
	if a.Complaints == nil {
		a.Complaints = []string{}
	}
	if a.TopComments == nil {
		a.TopComments = []core.Comment{}
	}
}

func normalizeAnalysisArrays(a *core.CompetitorAnalysis) {
	if a.WhyItsWorking == nil {
		a.WhyItsWorking = []string{}
	}
	if a.Themes == nil {
		a.Themes = []string{}
	}
	if a.TitlePatterns == nil {
		a.TitlePatterns = []string{}
	}
	if a.RemixIdeas == nil {
		a.RemixIdeas = []string{}
	}
}

// fallbackAnalysis is the fixed template used when the analysis LLM call
// fails. It depends only on the video's own title.
func fallbackAnalysis(title string) *core.CompetitorAnalysis {
	return &core.CompetitorAnalysis{
		WhatItsAbout:  fmt.Sprintf("A video titled %q. A detailed breakdown is temporarily unavailable.", title),
		WhyItsWorking: []string{"Analysis unavailable right now; judge from the engagement numbers"},
		Themes:        []string{},
		TitlePatterns: []string{},
		RemixIdeas:    []string{},
		Error:         "analysis generation failed",
	}
}
