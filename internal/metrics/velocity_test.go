package metrics

import (
	"testing"
	"time"

	"creatorlens/internal/core"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestDerive_ViewsPerDay(t *testing.T) {
	video := core.Video{
		ViewCount:   70000,
		PublishedAt: now.Add(-7 * 24 * time.Hour),
	}

	m := Derive(now, video, nil)

	if m.ViewsPerDay != 10000 {
		t.Errorf("viewsPerDay = %d, want 10000", m.ViewsPerDay)
	}
}

func TestDerive_ViewsPerDay_NewVideo(t *testing.T) {
	// Published an hour ago: days since publish clamps to 1
	video := core.Video{
		ViewCount:   5000,
		PublishedAt: now.Add(-time.Hour),
	}

	m := Derive(now, video, nil)

	if m.ViewsPerDay != 5000 {
		t.Errorf("viewsPerDay = %d, want 5000 for a brand-new video", m.ViewsPerDay)
	}
}

func TestDerive_Velocity24h(t *testing.T) {
	video := core.Video{ViewCount: 50000, PublishedAt: now.Add(-30 * 24 * time.Hour)}
	snapshots := []core.VideoSnapshot{
		{VideoID: "v1", CapturedAt: now, ViewCount: 50000},
		{VideoID: "v1", CapturedAt: now.Add(-24 * time.Hour), ViewCount: 40000},
	}

	m := Derive(now, video, snapshots)

	if m.Velocity24h == nil {
		t.Fatal("velocity24h should be defined with a snapshot in [20h,28h]")
	}
	if *m.Velocity24h != 10000 {
		t.Errorf("velocity24h = %d, want 10000", *m.Velocity24h)
	}
	if m.DataStatus != core.DataStatusReady {
		t.Errorf("dataStatus = %s, want ready", m.DataStatus)
	}
}

// A lone snapshot in the 24h window yields a 24h velocity but no 7d velocity,
// and the overall status stays "building" only when 24h itself is missing.
func TestDerive_PartialSnapshotHistory(t *testing.T) {
	video := core.Video{ViewCount: 50000, PublishedAt: now.Add(-30 * 24 * time.Hour)}
	snapshots := []core.VideoSnapshot{
		{VideoID: "v1", CapturedAt: now.Add(-22 * time.Hour), ViewCount: 47000},
	}

	m := Derive(now, video, snapshots)

	if m.Velocity24h == nil {
		t.Fatal("velocity24h should be defined")
	}
	if m.Velocity7d != nil {
		t.Error("velocity7d should be undefined without a snapshot in [6d,8d]")
	}
	if m.DataStatus != core.DataStatusReady {
		t.Errorf("dataStatus = %s, want ready when 24h velocity is computable", m.DataStatus)
	}
}

func TestDerive_NoSnapshots_Building(t *testing.T) {
	video := core.Video{ViewCount: 50000, PublishedAt: now.Add(-30 * 24 * time.Hour)}

	m := Derive(now, video, nil)

	if m.Velocity24h != nil || m.Velocity7d != nil {
		t.Error("velocities should be undefined without snapshots")
	}
	if m.DataStatus != core.DataStatusBuilding {
		t.Errorf("dataStatus = %s, want building", m.DataStatus)
	}
}

func TestDerive_Velocity7d(t *testing.T) {
	video := core.Video{ViewCount: 80000, PublishedAt: now.Add(-60 * 24 * time.Hour)}
	snapshots := []core.VideoSnapshot{
		{CapturedAt: now, ViewCount: 80000},
		{CapturedAt: now.Add(-25 * time.Hour), ViewCount: 76000},
		{CapturedAt: now.Add(-7 * 24 * time.Hour), ViewCount: 60000},
	}

	m := Derive(now, video, snapshots)

	if m.Velocity7d == nil {
		t.Fatal("velocity7d should be defined with a snapshot in [6d,8d]")
	}
	if *m.Velocity7d != 20000 {
		t.Errorf("velocity7d = %d, want 20000", *m.Velocity7d)
	}
}

func TestDerive_EngagementPerView(t *testing.T) {
	video := core.Video{
		ViewCount:    10000,
		LikeCount:    400,
		CommentCount: 100,
		PublishedAt:  now.Add(-10 * 24 * time.Hour),
	}

	m := Derive(now, video, nil)

	if m.EngagementPerView == nil {
		t.Fatal("engagementPerView should be defined for viewCount > 0")
	}
	if *m.EngagementPerView != 0.05 {
		t.Errorf("engagementPerView = %f, want 0.05", *m.EngagementPerView)
	}
}

func TestDerive_ZeroViews_NoEngagement(t *testing.T) {
	video := core.Video{PublishedAt: now.Add(-24 * time.Hour)}

	m := Derive(now, video, nil)

	if m.EngagementPerView != nil {
		t.Error("engagementPerView should be undefined for zero views")
	}
}

func TestDerive_CapsSnapshotsAtFive(t *testing.T) {
	video := core.Video{ViewCount: 100, PublishedAt: now.Add(-90 * 24 * time.Hour)}
	// Six snapshots; the sixth is the only one in the 7d window and must be ignored
	snapshots := []core.VideoSnapshot{
		{CapturedAt: now.Add(-1 * time.Hour), ViewCount: 100},
		{CapturedAt: now.Add(-2 * time.Hour), ViewCount: 99},
		{CapturedAt: now.Add(-3 * time.Hour), ViewCount: 98},
		{CapturedAt: now.Add(-4 * time.Hour), ViewCount: 97},
		{CapturedAt: now.Add(-5 * time.Hour), ViewCount: 96},
		{CapturedAt: now.Add(-7 * 24 * time.Hour), ViewCount: 50},
	}

	m := Derive(now, video, snapshots)

	if m.Velocity7d != nil {
		t.Error("snapshots beyond the first 5 must not be considered")
	}
}
