package insights

import (
	"fmt"
	"strings"

	"creatorlens/internal/core"
)

// Checklist enum domains.
const (
	ImpactLow    = "Low"
	ImpactMedium = "Medium"
	ImpactHigh   = "High"

	maxChecklistItems = 10
	minActionLength   = 16
)

// FallbackChecklist builds a deterministic beat-this-video checklist when no
// LLM-provided one exists. A fixed decision tree over the video's observable
// weaknesses yields 4-6 items.
func FallbackChecklist(video core.Video, viewerAsks []string) []core.ChecklistItem {
	items := []core.ChecklistItem{
		{
			Action:     "Open with the payoff in the first 15 seconds instead of a channel intro",
			Difficulty: "Easy",
			Impact:     ImpactHigh,
		},
		{
			Action:     "Design a thumbnail that contrasts directly with this video's framing",
			Difficulty: "Medium",
			Impact:     ImpactHigh,
		},
		{
			Action:     "Write a description over 200 words targeting the same search terms",
			Difficulty: "Easy",
			Impact:     ImpactMedium,
		},
	}

	if !digitPattern.MatchString(video.Title) {
		items = append(items, core.ChecklistItem{
			Action:     "Lead your title with a concrete number to anchor the promise",
			Difficulty: "Easy",
			Impact:     ImpactMedium,
		})
	}

	if video.DurationSec > 300 && !timestampPattern.MatchString(video.Description) {
		items = append(items, core.ChecklistItem{
			Action:     "Add chapter timestamps so viewers can navigate, which this video lacks",
			Difficulty: "Easy",
			Impact:     ImpactMedium,
		})
	}

	if video.DurationSec >= 1200 {
		items = append(items, core.ChecklistItem{
			Action:     "Cover the same ground in under half the runtime with tighter editing",
			Difficulty: "Hard",
			Impact:     ImpactHigh,
		})
	} else {
		items = append(items, core.ChecklistItem{
			Action:     "Go deeper on the one subtopic this video only skims",
			Difficulty: "Medium",
			Impact:     ImpactMedium,
		})
	}

	if len(viewerAsks) > 0 {
		items = append(items, core.ChecklistItem{
			Action:     fmt.Sprintf("Answer the request viewers left unaddressed: %s", truncate(viewerAsks[0], 80)),
			Difficulty: "Medium",
			Impact:     ImpactHigh,
		})
	}

	if len(items) > 6 {
		items = items[:6]
	}
	return items
}

// NormalizeChecklist sanitizes an LLM-provided checklist: entries with actions
// shorter than 16 characters are dropped, difficulty and impact are coerced
// into their enum domains (defaulting Medium/High), and the list is capped at
// 10 items. Returns a non-nil slice.
func NormalizeChecklist(items []core.ChecklistItem) []core.ChecklistItem {
	out := make([]core.ChecklistItem, 0, len(items))
	for _, item := range items {
		action := strings.TrimSpace(item.Action)
		if len(action) < minActionLength {
			continue
		}
		out = append(out, core.ChecklistItem{
			Action:     action,
			Difficulty: coerceDifficulty(item.Difficulty),
			Impact:     coerceImpact(item.Impact),
		})
		if len(out) == maxChecklistItems {
			break
		}
	}
	return out
}

func coerceDifficulty(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return "Easy"
	case "hard":
		return "Hard"
	default:
		return "Medium"
	}
}

func coerceImpact(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return ImpactLow
	case "medium":
		return ImpactMedium
	default:
		return ImpactHigh
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
