package insights

import (
	"regexp"
	"sort"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-z0-9']+`)

// stopwords excluded from the keyword fallback ranking.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "how": {}, "i": {}, "in": {},
	"is": {}, "it": {}, "my": {}, "of": {}, "on": {}, "or": {}, "our": {},
	"so": {}, "that": {}, "the": {}, "this": {}, "to": {}, "was": {},
	"we": {}, "what": {}, "when": {}, "why": {}, "will": {}, "with": {},
	"you": {}, "your": {}, "video": {}, "youtube": {},
}

// KeywordFallback derives up to 10 frequency-ranked keywords from title and
// description, used when a video carries no tags. Ties break alphabetically
// so the output is deterministic.
func KeywordFallback(title, description string) []string {
	counts := map[string]int{}
	for _, w := range wordPattern.FindAllString(strings.ToLower(title+" "+description), -1) {
		if len(w) < 3 {
			continue
		}
		if _, skip := stopwords[w]; skip {
			continue
		}
		counts[w]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > 10 {
		words = words[:10]
	}
	return words
}
