// Package analyzer scores a single text field against a free-text query and
// explains the score as a list of matches.
package analyzer

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/match"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/words"
)

// Rule scores.
const (
	ExactScore         = 1000
	PhraseScore        = 500
	PartialPhraseScore = 100
	WordScore          = 200
	PrefixScale        = 100
	FuzzyScore         = 50
	LeadingPrefixScore = 300
)

// Long fields are damped so that a short title hit outranks a long description.
const (
	LongTextThreshold = 200
	LongTextFactor    = 0.8
)

const (
	minWordLen       = 2
	maxFuzzyDistance = 1
)

// Analysis is the immutable outcome of matching one field against a query.
type Analysis struct {
	score   float64
	matches []match.Info
}

// Score returns the accumulated field score.
func (a Analysis) Score() float64 { return a.score }

// Matches returns a copy of the match explanations in rule order.
func (a Analysis) Matches() []match.Info { return slices.Clone(a.matches) }

// scaled applies factor to the total and to every match, flooring each.
func (a Analysis) scaled(factor float64) Analysis {
	return Analysis{
		score:   math.Floor(a.score * factor),
		matches: match.Scale(a.matches, factor),
	}
}

// Analyze scores text against query for the given field.
// An exact match short-circuits every other rule, including the long-text penalty.
func Analyze(text, query string, field match.Field) Analysis {
	q := words.Normalize(query)
	if q == "" {
		return Analysis{}
	}

	if words.Normalize(text) == q {
		return Analysis{
			score: ExactScore,
			matches: []match.Info{{
				Reason: fmt.Sprintf("exact match on %s", field),
				Field:  field,
				Type:   match.Exact,
				Text:   text,
				Score:  ExactScore,
			}},
		}
	}

	lower := strings.ToLower(text)
	phrase := strings.TrimSpace(query)

	var matches []match.Info
	matches = append(matches, phraseMatches(lower, q, phrase, field)...)
	matches = append(matches, termMatches(words.Split(lower), words.Split(q), field)...)
	matches = append(matches, leadingMatches(lower, q, phrase, field)...)

	a := Analysis{score: match.Sum(matches), matches: matches}
	// Length is in runes, so a character outside the BMP counts once.
	if words.Len(text) > LongTextThreshold {
		a = a.scaled(LongTextFactor)
	}
	return a
}

func phraseMatches(lower, q, phrase string, field match.Field) []match.Info {
	switch {
	case words.ContainsWhole(lower, q):
		return []match.Info{{
			Reason: fmt.Sprintf("%s contains the full phrase", field),
			Field:  field,
			Type:   match.Phrase,
			Text:   phrase,
			Score:  PhraseScore,
		}}
	case strings.Contains(lower, q):
		return []match.Info{{
			Reason: fmt.Sprintf("%s contains the search text", field),
			Field:  field,
			Type:   match.Phrase,
			Text:   phrase,
			Score:  PartialPhraseScore,
		}}
	}
	return nil
}

// termMatches applies the word, prefix and fuzzy rules to each query word.
// The first rule that applies wins for that word.
func termMatches(textWords, queryWords []string, field match.Field) []match.Info {
	var out []match.Info
	for _, qw := range queryWords {
		qLen := words.Len(qw)
		if qLen < minWordLen {
			continue
		}

		if slices.Contains(textWords, qw) {
			out = append(out, match.Info{
				Reason: fmt.Sprintf("%s contains the word %q", field, qw),
				Field:  field,
				Type:   match.Word,
				Text:   qw,
				Score:  WordScore,
			})
			continue
		}

		if w, ok := shortestExtension(textWords, qw, qLen); ok {
			out = append(out, match.Info{
				Reason: fmt.Sprintf("%s has a word starting with %q", field, qw),
				Field:  field,
				Type:   match.Prefix,
				Text:   w,
				Score:  math.Floor(float64(PrefixScale*qLen) / float64(words.Len(w))),
			})
			continue
		}

		for _, w := range textWords {
			if words.Len(w) < qLen {
				continue
			}
			if words.Levenshtein(qw, w) <= maxFuzzyDistance {
				out = append(out, match.Info{
					Reason: fmt.Sprintf("%s has a word similar to %q", field, qw),
					Field:  field,
					Type:   match.Fuzzy,
					Text:   w,
					Score:  FuzzyScore,
				})
				break
			}
		}
	}
	return out
}

// shortestExtension picks the shortest text word strictly longer than qw that
// starts with it. Ties go to the earliest word.
func shortestExtension(textWords []string, qw string, qLen int) (string, bool) {
	best, bestLen := "", 0
	for _, w := range textWords {
		wLen := words.Len(w)
		if wLen <= qLen || !strings.HasPrefix(w, qw) {
			continue
		}
		if best == "" || wLen < bestLen {
			best, bestLen = w, wLen
		}
	}
	return best, best != ""
}

func leadingMatches(lower, q, phrase string, field match.Field) []match.Info {
	if !strings.HasPrefix(lower, q) {
		return nil
	}
	return []match.Info{{
		Reason: fmt.Sprintf("%s starts with search term", field),
		Field:  field,
		Type:   match.Prefix,
		Text:   phrase,
		Score:  LeadingPrefixScore,
	}}
}
