package llm

import (
	"encoding/json"
	"testing"
)

func TestExtractJSON_Plain(t *testing.T) {
	raw, err := ExtractJSON(`{"a": 1}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"a": 1}` {
		t.Errorf("got %s", raw)
	}
}

func TestExtractJSON_MarkdownFence(t *testing.T) {
	text := "```json\n{\"themes\": [\"pacing\"]}\n```"
	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"themes": ["pacing"]}` {
		t.Errorf("got %s", raw)
	}
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	text := `Here is the analysis you asked for:

{"sentiment": {"positive": 70, "neutral": 20, "negative": 10}, "themes": []}

Let me know if you need more detail.`
	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw[0] != '{' || raw[len(raw)-1] != '}' {
		t.Errorf("extraction did not isolate the object: %s", raw)
	}
}

func TestExtractJSON_Array(t *testing.T) {
	raw, err := ExtractJSON(`The checklist: [{"action": "do the thing properly this time"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw[0] != '[' {
		t.Errorf("expected array extraction, got %s", raw)
	}
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw, err := ExtractJSON(`{"whatItsAbout": "uses {curly} braces and \"quotes\" inside"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !jsonValid(raw) {
		t.Errorf("extracted invalid JSON: %s", raw)
	}
}

func TestExtractJSON_NoPayload(t *testing.T) {
	if _, err := ExtractJSON("I could not produce an analysis, sorry."); err == nil {
		t.Error("expected an error for prose-only output")
	}
}

func TestDecodeCommentsAnalysis_Normalizes(t *testing.T) {
	text := `{"sentiment": {"positive": 150, "negative": -5}, "themes": [" pacing ", ""], "viewersAskedFor": null}`

	got, err := DecodeCommentsAnalysis(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Sentiment.Positive != 100 {
		t.Errorf("positive should clamp to 100, got %d", got.Sentiment.Positive)
	}
	if got.Sentiment.Negative != 0 {
		t.Errorf("negative should clamp to 0, got %d", got.Sentiment.Negative)
	}
	if len(got.Themes) != 1 || got.Themes[0] != "pacing" {
		t.Errorf("themes should be trimmed and filtered, got %v", got.Themes)
	}
	if got.ViewersAskedFor == nil || got.Praise == nil || got.Complaints == nil || got.TopComments == nil {
		t.Error("no array field may come back nil")
	}
}

func TestDecodeCommentsAnalysis_NotJSON(t *testing.T) {
	if _, err := DecodeCommentsAnalysis("no structure here"); err == nil {
		t.Error("expected an error for non-JSON output")
	}
}

func TestDecodeCompetitorAnalysis_Normalizes(t *testing.T) {
	text := `{"whatItsAbout": "  a breakdown of budget lighting  ", "whyItsWorking": ["strong hook"], "remixIdeas": null}`

	got, err := DecodeCompetitorAnalysis(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.WhatItsAbout != "a breakdown of budget lighting" {
		t.Errorf("whatItsAbout should be trimmed, got %q", got.WhatItsAbout)
	}
	if got.RemixIdeas == nil || got.Themes == nil || got.TitlePatterns == nil {
		t.Error("array fields must be non-nil after normalization")
	}
}

func TestDecodeChecklist(t *testing.T) {
	text := `[{"action": "restructure the intro entirely", "difficulty": "Hard", "impact": "High"}]`

	got, err := DecodeChecklist(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Action != "restructure the intro entirely" {
		t.Errorf("unexpected decode: %+v", got)
	}
}

func TestRecoverChecklist(t *testing.T) {
	payload := []byte(`{"whatItsAbout": "x", "beatThisVideo": [{"action": "a recovered checklist entry", "difficulty": "Easy", "impact": "High"}]}`)
	got := RecoverChecklist(payload)
	if len(got) != 1 {
		t.Fatalf("expected 1 recovered item, got %d", len(got))
	}

	if RecoverChecklist([]byte(`not json`)) != nil {
		t.Error("malformed payload should recover to nil, not error")
	}
	if RecoverChecklist(nil) != nil {
		t.Error("empty payload should recover to nil")
	}
}

func jsonValid(raw []byte) bool {
	var v any
	return len(raw) > 0 && json.Unmarshal(raw, &v) == nil
}
