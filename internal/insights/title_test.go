package insights

import (
	"strings"
	"testing"
)

func TestScoreTitle_Bounded(t *testing.T) {
	titles := []string{
		"",
		"a",
		"Why Everyone Is Wrong About This Secret Proven Ultimate Insane Trick in 2026...?",
		strings.Repeat("x", 200),
		"5 Proven Secrets... How Everyone Doubled Views This Year?",
		"plain title with no signals whatsoever here",
	}
	for _, title := range titles {
		got := ScoreTitle(title)
		if got.Score < 1 || got.Score > 10 {
			t.Errorf("ScoreTitle(%q).Score = %d, want within [1,10]", title, got.Score)
		}
	}
}

func TestScoreTitle_GrowthTitleScenario(t *testing.T) {
	got := ScoreTitle("5 Ways I Doubled My Views in 30 Days")

	if !got.HasNumber {
		t.Error("expected hasNumber=true")
	}
	if !got.HasTimeframe {
		t.Error("expected hasTimeframe=true for '30 Days'")
	}
	// digit +1, power word "doubled" +1, timeframe +0.5: at least 2.5 over base
	if got.Score < 8 {
		t.Errorf("score = %d, want >= 8 (base 5 + 2.5 rounded)", got.Score)
	}
}

func TestScoreTitle_ShortTitlePenalized(t *testing.T) {
	short := ScoreTitle("hello world")
	neutral := ScoreTitle("a perfectly ordinary neutral title here")

	if short.Score >= neutral.Score {
		t.Errorf("short title (%d) should score below an equivalent neutral one (%d)", short.Score, neutral.Score)
	}
}

func TestScoreTitle_SweetSpotLengthRewarded(t *testing.T) {
	// 47 chars, no other signals
	got := ScoreTitle("an ordinary sentence about filming better b-roll")
	if got.Score != 6 {
		t.Errorf("score = %d, want 6 (base 5 + length bonus)", got.Score)
	}
}

func TestScoreTitle_OverlongFlaggedWithoutPenalty(t *testing.T) {
	long := ScoreTitle(strings.Repeat("word ", 16) + "tail") // > 70 chars, no signals

	found := false
	for _, s := range long.Signals {
		if strings.Contains(s, "truncated") {
			found = true
		}
	}
	if !found {
		t.Error("overlong title should carry a truncation warning signal")
	}
	if long.Score != 5 {
		t.Errorf("score = %d, want 5 (flag only, no score change)", long.Score)
	}
}

func TestScoreTitle_CuriosityGap(t *testing.T) {
	plain := ScoreTitle("recording equipment overview for beginners")
	curious := ScoreTitle("recording equipment nobody talks about, truth")

	if curious.Score <= plain.Score {
		t.Errorf("curiosity-gap title (%d) should beat plain title (%d)", curious.Score, plain.Score)
	}
}
