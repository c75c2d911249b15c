package fingerprint

import (
	"testing"
	"time"

	"creatorlens/internal/core"
)

func sampleVideo() core.Video {
	return core.Video{
		ID:          "dQw4w9WgXcQ",
		Title:       "How I Edit My Videos",
		Description: "A walkthrough of my editing process.",
		Tags:        []string{"editing", "tutorial"},
		DurationSec: 612,
		CategoryID:  "27",
		ViewCount:   120000,
		LikeCount:   4800,
	}
}

func TestVideo_Deterministic(t *testing.T) {
	v := sampleVideo()
	first := Video(v)
	for i := 0; i < 10; i++ {
		if got := Video(v); got != first {
			t.Fatalf("fingerprint changed across calls: %s != %s", got, first)
		}
	}
}

func TestVideo_IgnoresVolatileCounters(t *testing.T) {
	a := sampleVideo()
	b := sampleVideo()
	b.ViewCount = 999999
	b.LikeCount = 1
	b.CommentCount = 42

	if Video(a) != Video(b) {
		t.Error("fingerprint should not change when only counters change")
	}
}

func TestVideo_ChangesWithIdentityFields(t *testing.T) {
	base := Video(sampleVideo())

	cases := []struct {
		name   string
		mutate func(*core.Video)
	}{
		{"title", func(v *core.Video) { v.Title = "How I Edit My Videos (2026)" }},
		{"description", func(v *core.Video) { v.Description = "Updated description" }},
		{"tags", func(v *core.Video) { v.Tags = append(v.Tags, "vlog") }},
		{"duration", func(v *core.Video) { v.DurationSec = 613 }},
		{"category", func(v *core.Video) { v.CategoryID = "28" }},
	}

	for _, tc := range cases {
		v := sampleVideo()
		tc.mutate(&v)
		if Video(v) == base {
			t.Errorf("fingerprint should change when %s changes", tc.name)
		}
	}
}

func TestVideo_TagBoundariesDoNotCollide(t *testing.T) {
	a := sampleVideo()
	a.Tags = []string{"ab", "c"}
	b := sampleVideo()
	b.Tags = []string{"a", "bc"}

	if Video(a) == Video(b) {
		t.Error("different tag sets must not share a fingerprint")
	}
}

func TestComments_IgnoresVolatileFields(t *testing.T) {
	now := time.Now()
	a := []core.Comment{{Author: "alice", Text: "great video", LikeCount: 3, PublishedAt: now}}
	b := []core.Comment{{Author: "alice", Text: "great video", LikeCount: 90, PublishedAt: now.Add(time.Hour)}}

	if Comments(a) != Comments(b) {
		t.Error("comment fingerprint should ignore like counts and timestamps")
	}
}

func TestComments_ChangesWithContent(t *testing.T) {
	a := []core.Comment{{Author: "alice", Text: "great video"}}
	b := []core.Comment{{Author: "alice", Text: "terrible video"}}

	if Comments(a) == Comments(b) {
		t.Error("comment fingerprint should change when text changes")
	}

	if Comments(a) == Comments(nil) {
		t.Error("empty comment set should not match a non-empty one")
	}
}
