package search

import (
	"strings"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/words"
)

// Autocomplete tiers.
const (
	SuggestExact    = 100
	SuggestPrefix   = 80
	SuggestContains = 60
)

// SuggestScore rates a title or name against an autocomplete query.
func SuggestScore(field, query string) float64 {
	f := words.Normalize(field)
	q := words.Normalize(query)
	switch {
	case q == "":
		return 0
	case f == q:
		return SuggestExact
	case strings.HasPrefix(f, q):
		return SuggestPrefix
	case strings.Contains(f, q):
		return SuggestContains
	}
	return 0
}
