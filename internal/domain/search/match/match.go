package match

import (
	"math"
	"sort"
)

// Field names the candidate attribute a match explains.
type Field string

// Text fields are analyzed; the remaining fields tag scorer signals.
const (
	FieldTitle       Field = "title"
	FieldName        Field = "name"
	FieldDescription Field = "description"

	FieldStartDate    Field = "startDate"
	FieldLocation     Field = "location"
	FieldMemberCount  Field = "memberCount"
	FieldRecentEvents Field = "recentEventCount"
)

// IsValid checks if the field is one of the supported values.
func (f Field) IsValid() bool {
	switch f {
	case FieldTitle, FieldName, FieldDescription,
		FieldStartDate, FieldLocation, FieldMemberCount, FieldRecentEvents:
		return true
	}
	return false
}

// Type is the kind of evidence behind a match.
type Type string

// Match type constants.
const (
	Exact  Type = "exact"
	Phrase Type = "phrase"
	Word   Type = "word"
	Prefix Type = "prefix"
	Fuzzy  Type = "fuzzy"
	// Signal marks a non-textual boost such as recency or activity.
	Signal Type = "signal"
)

// Textual reports whether the match came from text analysis.
func (t Type) Textual() bool {
	switch t {
	case Exact, Phrase, Word, Prefix, Fuzzy:
		return true
	case Signal:
		return false
	}
	return false
}

// Info explains why a candidate scored as it did.
type Info struct {
	Reason string  `json:"reason"`
	Field  Field   `json:"matchedField"`
	Type   Type    `json:"matchType"`
	Text   string  `json:"matchedText"`
	Score  float64 `json:"score"`
}

// Scale returns a copy of matches with every score multiplied by factor and
// floored.
func Scale(matches []Info, factor float64) []Info {
	if len(matches) == 0 {
		return nil
	}
	out := make([]Info, len(matches))
	for i, m := range matches {
		m.Score = math.Floor(m.Score * factor)
		out[i] = m
	}
	return out
}

// Merge concatenates the lists into a new slice sorted by score descending.
// Equal scores keep their input order.
func Merge(lists ...[]Info) []Info {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make([]Info, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Sum adds up the scores of matches.
func Sum(matches []Info) float64 {
	var total float64
	for _, m := range matches {
		total += m.Score
	}
	return total
}
