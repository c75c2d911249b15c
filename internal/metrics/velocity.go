// Package metrics computes derived numeric signals for a video from its raw
// counters and historical view-count snapshots. Everything here is a pure
// function of its inputs; missing data degrades to nil fields, never errors.
package metrics

import (
	"math"
	"time"

	"creatorlens/internal/core"
)

// Snapshot age windows. A 24h velocity needs a snapshot roughly a day old,
// with slack for collector jitter.
const (
	window24hMin = 20 * time.Hour
	window24hMax = 28 * time.Hour
	window7dMin  = 6 * 24 * time.Hour
	window7dMax  = 8 * 24 * time.Hour
)

// Derive computes all per-request metrics. snapshots must be ordered newest
// first (the repository guarantees this); at most the first 5 are considered.
func Derive(now time.Time, video core.Video, snapshots []core.VideoSnapshot) core.DerivedMetrics {
	if len(snapshots) > 5 {
		snapshots = snapshots[:5]
	}

	m := core.DerivedMetrics{
		ViewsPerDay: viewsPerDay(now, video.PublishedAt, video.ViewCount),
		DataStatus:  core.DataStatusBuilding,
	}

	latest := video.ViewCount
	if len(snapshots) > 0 {
		latest = snapshots[0].ViewCount
	}

	if base := snapshotInWindow(now, snapshots, window24hMin, window24hMax); base != nil {
		v := latest - base.ViewCount
		m.Velocity24h = &v
	}
	if base := snapshotInWindow(now, snapshots, window7dMin, window7dMax); base != nil {
		v := latest - base.ViewCount
		m.Velocity7d = &v
	}

	if video.ViewCount > 0 {
		e := float64(video.LikeCount+video.CommentCount) / float64(video.ViewCount)
		m.EngagementPerView = &e
	}

	if m.Velocity24h != nil {
		m.DataStatus = core.DataStatusReady
	}

	return m
}

func viewsPerDay(now, publishedAt time.Time, viewCount int64) int64 {
	days := now.Sub(publishedAt).Hours() / 24
	if days < 1 {
		days = 1
	}
	return int64(math.Round(float64(viewCount) / days))
}

// snapshotInWindow returns the first snapshot whose age falls inside
// [min, max], or nil when none does.
func snapshotInWindow(now time.Time, snapshots []core.VideoSnapshot, min, max time.Duration) *core.VideoSnapshot {
	for i := range snapshots {
		age := now.Sub(snapshots[i].CapturedAt)
		if age >= min && age <= max {
			return &snapshots[i]
		}
	}
	return nil
}
