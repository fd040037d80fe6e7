// Package gate decides whether a candidate field is worth scoring at all.
package gate

import (
	"strings"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/words"
)

// MinPrefixRatio is the minimum query-word to text-word length ratio for a
// prefix hit to count. It keeps "tech" from matching "technique".
const MinPrefixRatio = 0.6

const minWordLen = 2

// IsRelevant reports whether text is a plausible match for query.
// A whole-word phrase hit is enough; otherwise at least half of the query
// words (rounded up) must match a text word exactly or as a close prefix.
func IsRelevant(text, query string) bool {
	q := words.Normalize(query)
	if q == "" {
		return false
	}

	lower := strings.ToLower(text)
	if words.ContainsWhole(lower, q) {
		return true
	}

	var queryWords []string
	for _, w := range words.Split(q) {
		if words.Len(w) >= minWordLen {
			queryWords = append(queryWords, w)
		}
	}
	if len(queryWords) == 0 {
		return false
	}

	textWords := words.Split(lower)
	matched := 0
	for _, qw := range queryWords {
		if wordMatches(textWords, qw) {
			matched++
		}
	}

	required := (len(queryWords) + 1) / 2
	return matched >= required
}

func wordMatches(textWords []string, qw string) bool {
	qLen := float64(words.Len(qw))
	for _, w := range textWords {
		if w == qw {
			return true
		}
		if strings.HasPrefix(w, qw) && qLen/float64(words.Len(w)) >= MinPrefixRatio {
			return true
		}
	}
	return false
}

// AnyRelevant reports whether any of the texts is relevant to query.
func AnyRelevant(query string, texts ...string) bool {
	for _, t := range texts {
		if IsRelevant(t, query) {
			return true
		}
	}
	return false
}
