package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"creatorlens/internal/analysis"
	"creatorlens/internal/entitlement"
	"creatorlens/internal/persistence"
	"creatorlens/internal/youtube"
)

// rateLimitedResponse is the 429 payload; ResetAt tells the client when to retry.
type rateLimitedResponse struct {
	Error   string `json:"error"`
	ResetAt string `json:"resetAt"`
}

type serverErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// handleVideoAnalysis handles GET /api/videos/{videoID}/analysis.
// Only blocking failures (bad input, missing resource, exhausted quota)
// produce non-200 responses; degraded sub-results ride inside the document.
func (s *Server) handleVideoAnalysis(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	if s.demoActive() {
		s.respondJSON(w, http.StatusOK, analysis.DemoFixture(now))
		return
	}

	user := userFrom(r.Context())
	if user == nil {
		s.respondError(w, http.StatusUnauthorized, "Missing authenticated user")
		return
	}

	videoID := chi.URLParam(r, "videoID")
	if !youtube.ValidVideoID(videoID) {
		s.respondError(w, http.StatusBadRequest, "Invalid video id")
		return
	}

	channelID := r.URL.Query().Get("channelId")
	if channelID == "" {
		s.respondError(w, http.StatusBadRequest, "channelId query parameter is required")
		return
	}

	channel, err := s.db.Channels().GetForUser(r.Context(), user.ID, channelID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			// An account with no linked channels is a setup problem, not a
			// wrong channel id.
			if n, countErr := s.db.Channels().CountForUser(r.Context(), user.ID); countErr == nil && n == 0 {
				s.respondError(w, http.StatusBadRequest, "No linked channel on this account")
				return
			}
			s.respondError(w, http.StatusNotFound, "Channel not found for this account")
			return
		}
		s.log.Error("Channel lookup failed", "error", err)
		s.respondJSON(w, http.StatusInternalServerError, serverErrorResponse{
			Error:  "Failed to resolve channel",
			Detail: err.Error(),
		})
		return
	}

	if s.cfg.RateLimit.Enabled {
		if d := s.limiter.Check(user.ID, entitlement.FeatureAnalyze); !d.Allowed {
			s.respondJSON(w, http.StatusTooManyRequests, rateLimitedResponse{
				Error:   "Rate limit exceeded",
				ResetAt: d.ResetAt.UTC().Format(time.RFC3339),
			})
			return
		}
	}

	if err := s.entitlements.Check(r.Context(), user, now); err != nil {
		if errors.Is(err, entitlement.ErrQuotaExceeded) {
			s.respondJSON(w, http.StatusTooManyRequests, rateLimitedResponse{
				Error:   "Monthly analysis quota exceeded",
				ResetAt: nextMonthStart(now).Format(time.RFC3339),
			})
			return
		}
		s.log.Error("Entitlement check failed", "error", err)
		s.respondJSON(w, http.StatusInternalServerError, serverErrorResponse{
			Error:  "Failed to check quota",
			Detail: err.Error(),
		})
		return
	}

	req := analysis.Request{
		UserID:                 user.ID,
		VideoID:                videoID,
		ChannelTitle:           channel.Title,
		IncludeMoreFromChannel: r.URL.Query().Get("includeMoreFromChannel") != "0",
		Now:                    now,
	}

	resp, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		if errors.Is(err, analysis.ErrVideoNotFound) {
			s.respondError(w, http.StatusNotFound, "Video not found")
			return
		}
		s.log.Error("Analysis failed", "videoId", videoID, "error", err)
		s.respondJSON(w, http.StatusInternalServerError, serverErrorResponse{
			Error:  "Analysis failed",
			Detail: err.Error(),
		})
		return
	}

	// Count the analysis after it succeeded; a failed request costs nothing.
	if err := s.entitlements.Consume(r.Context(), user, now); err != nil {
		s.log.Warn("Failed to record usage", "userId", user.ID, "error", err)
	}

	s.respondJSON(w, http.StatusOK, resp)
}

func nextMonthStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}
