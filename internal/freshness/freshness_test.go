package freshness

import (
	"testing"
	"time"
)

var (
	now     = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	hashA   = "aaa"
	hashB   = "bbb"
	ttl7d   = 7 * 24 * time.Hour
	ttl30d  = 30 * 24 * time.Hour
)

func TestEvaluate_Empty(t *testing.T) {
	if got := Evaluate(now, time.Time{}, ttl7d, nil, hashA); got != StateEmpty {
		t.Errorf("expected empty, got %s", got)
	}
}

func TestEvaluate_FreshWithMatchingHash(t *testing.T) {
	cachedAt := now.Add(-2 * 24 * time.Hour)
	got := Evaluate(now, cachedAt, ttl7d, &hashA, hashA)
	if got != StateFresh {
		t.Errorf("expected fresh, got %s", got)
	}
	if !got.Usable() {
		t.Error("fresh state must be usable")
	}
}

func TestEvaluate_ExpiredRegardlessOfHash(t *testing.T) {
	cachedAt := now.Add(-8 * 24 * time.Hour)
	if got := Evaluate(now, cachedAt, ttl7d, &hashA, hashA); got != StateExpired {
		t.Errorf("expected expired even with matching hash, got %s", got)
	}

	// Exactly at the boundary is also expired
	cachedAt = now.Add(-ttl7d)
	if got := Evaluate(now, cachedAt, ttl7d, &hashA, hashA); got != StateExpired {
		t.Errorf("expected expired at exact ttl boundary, got %s", got)
	}
}

func TestEvaluate_ContentChangedInsideWindow(t *testing.T) {
	cachedAt := now.Add(-24 * time.Hour)
	got := Evaluate(now, cachedAt, ttl30d, &hashA, hashB)
	if got != StateContentChanged {
		t.Errorf("expected content_changed, got %s", got)
	}
	if got.Usable() {
		t.Error("content_changed state must not be usable")
	}
}

// Legacy tolerance: a row cached 10 days ago with no stored hash is treated as
// fresh inside a 30-day window even though the current fingerprint differs.
func TestEvaluate_LegacyNullHashTolerance(t *testing.T) {
	cachedAt := now.Add(-10 * 24 * time.Hour)
	got := Evaluate(now, cachedAt, ttl30d, nil, hashB)
	if got != StateLegacyFresh {
		t.Errorf("expected legacy_fresh, got %s", got)
	}
	if !got.Usable() {
		t.Error("legacy_fresh state must be usable")
	}
}

func TestEvaluate_LegacyNullHashStillExpires(t *testing.T) {
	cachedAt := now.Add(-31 * 24 * time.Hour)
	if got := Evaluate(now, cachedAt, ttl30d, nil, hashB); got != StateExpired {
		t.Errorf("legacy rows must still expire, got %s", got)
	}
}

func TestStateStrings(t *testing.T) {
	states := map[State]string{
		StateEmpty:          "empty",
		StateFresh:          "fresh",
		StateLegacyFresh:    "legacy_fresh",
		StateExpired:        "expired",
		StateContentChanged: "content_changed",
	}
	for s, want := range states {
		if s.String() != want {
			t.Errorf("State(%d).String() = %s, want %s", s, s.String(), want)
		}
	}
}
