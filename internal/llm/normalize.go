package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"creatorlens/internal/core"
)

// ExtractJSON pulls the first JSON object or array out of free-form model
// output. Models wrap JSON in markdown fences or prose often enough that
// decoding the raw text directly is not reliable.
func ExtractJSON(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)

	// Strip a markdown fence if the whole payload is fenced
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return nil, fmt.Errorf("no JSON payload in model output")
	}

	open := text[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				candidate := json.RawMessage(text[start : i+1])
				if !json.Valid(candidate) {
					return nil, fmt.Errorf("model output is not valid JSON")
				}
				return candidate, nil
			}
		}
	}
	return nil, fmt.Errorf("unbalanced JSON in model output")
}

// rawCommentsAnalysis mirrors the prompt's requested shape with every field
// optional, so a half-conforming response still decodes.
type rawCommentsAnalysis struct {
	Sentiment struct {
		Positive int `json:"positive"`
		Neutral  int `json:"neutral"`
		Negative int `json:"negative"`
	} `json:"sentiment"`
	Themes          []string `json:"themes"`
	ViewersAskedFor []string `json:"viewersAskedFor"`
	Praise          []string `json:"praise"`
	Complaints      []string `json:"complaints"`
}

// DecodeCommentsAnalysis parses and normalizes a comments-analysis response.
// Array fields come back non-nil and sentiment values are clamped to [0,100];
// a response that is not JSON at all is an error.
func DecodeCommentsAnalysis(text string) (*core.CommentsAnalysis, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var parsed rawCommentsAnalysis
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("comments analysis did not match expected shape: %w", err)
	}

	return &core.CommentsAnalysis{
		Sentiment: core.SentimentBreakdown{
			Positive: clampPercent(parsed.Sentiment.Positive),
			Neutral:  clampPercent(parsed.Sentiment.Neutral),
			Negative: clampPercent(parsed.Sentiment.Negative),
		},
		Themes:          cleanStrings(parsed.Themes),
		ViewersAskedFor: cleanStrings(parsed.ViewersAskedFor),
		Praise:          cleanStrings(parsed.Praise),
		Complaints:      cleanStrings(parsed.Complaints),
		TopComments:     []core.Comment{},
	}, nil
}

// rawCompetitorAnalysis tolerates the checklist arriving with arbitrary
// casing or shape; items that don't decode are dropped by normalization.
type rawCompetitorAnalysis struct {
	WhatItsAbout  string               `json:"whatItsAbout"`
	WhyItsWorking []string             `json:"whyItsWorking"`
	Themes        []string             `json:"themes"`
	TitlePatterns []string             `json:"titlePatterns"`
	RemixIdeas    []string             `json:"remixIdeas"`
	BeatThisVideo []core.ChecklistItem `json:"beatThisVideo"`
}

// DecodeCompetitorAnalysis parses and normalizes a full-analysis response.
// The embedded checklist is returned as-is (un-normalized); the composer runs
// it through the insights normalizer alongside every other checklist source.
func DecodeCompetitorAnalysis(text string) (*core.CompetitorAnalysis, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var parsed rawCompetitorAnalysis
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("competitor analysis did not match expected shape: %w", err)
	}

	return &core.CompetitorAnalysis{
		WhatItsAbout:  strings.TrimSpace(parsed.WhatItsAbout),
		WhyItsWorking: cleanStrings(parsed.WhyItsWorking),
		Themes:        cleanStrings(parsed.Themes),
		TitlePatterns: cleanStrings(parsed.TitlePatterns),
		RemixIdeas:    cleanStrings(parsed.RemixIdeas),
		BeatThisVideo: parsed.BeatThisVideo,
	}, nil
}

// DecodeChecklist parses a standalone checklist response (a bare JSON array).
func DecodeChecklist(text string) ([]core.ChecklistItem, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var items []core.ChecklistItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("checklist did not match expected shape: %w", err)
	}
	return items, nil
}

// RecoverChecklist extracts a beatThisVideo list embedded in a cached
// analysis payload. Malformed payloads yield nil, never an error: the cache
// entry itself remains usable.
func RecoverChecklist(analysisJSON json.RawMessage) []core.ChecklistItem {
	if len(analysisJSON) == 0 {
		return nil
	}
	var probe struct {
		BeatThisVideo []core.ChecklistItem `json:"beatThisVideo"`
	}
	if err := json.Unmarshal(analysisJSON, &probe); err != nil {
		return nil
	}
	return probe.BeatThisVideo
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
