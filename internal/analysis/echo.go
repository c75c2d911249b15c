package analysis

import (
	"regexp"
	"strings"
)

var echoWordPattern = regexp.MustCompile(`[a-z0-9']+`)

// echoesTitle reports whether the generated "what it's about" text is just a
// restatement of the title: either the full title appears verbatim (titles of
// 18+ chars only, shorter ones collide too easily) or the significant-word
// overlap is 75% or more.
func echoesTitle(title, about string) bool {
	title = strings.ToLower(strings.TrimSpace(title))
	about = strings.ToLower(about)
	if title == "" || about == "" {
		return false
	}

	if len(title) >= 18 && strings.Contains(about, title) {
		return true
	}

	titleWords := significantWords(title)
	aboutWords := significantWords(about)
	if len(titleWords) == 0 || len(aboutWords) == 0 {
		return false
	}

	return jaccard(titleWords, aboutWords) >= 0.75
}

// significantWords keeps tokens of 4+ characters; short connective words say
// nothing about topical overlap.
func significantWords(s string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range echoWordPattern.FindAllString(s, -1) {
		if len(w) >= 4 {
			words[w] = struct{}{}
		}
	}
	return words
}

func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
