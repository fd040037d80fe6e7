package postgres

import (
	"fmt"
	"strings"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/filter"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/match"
)

// Columns maps predicate fields to SQL column expressions.
type Columns map[match.Field]string

// Where renders pred as a parenthesized SQL boolean expression using ILIKE.
// Placeholders are numbered from argBase+1. An empty predicate renders TRUE.
func Where(pred filter.Predicate, cols Columns, argBase int) (string, []any, error) {
	if pred.IsEmpty() {
		return "TRUE", nil, nil
	}

	parts := make([]string, 0, len(pred.Clauses()))
	args := make([]any, 0, len(pred.Clauses()))
	for _, c := range pred.Clauses() {
		col, ok := cols[c.Field()]
		if !ok {
			return "", nil, fmt.Errorf("no column for field %q", c.Field())
		}
		pattern, err := likePattern(c)
		if err != nil {
			return "", nil, err
		}
		args = append(args, pattern)
		parts = append(parts, fmt.Sprintf("COALESCE(%s, '') ILIKE $%d", col, argBase+len(args)))
	}
	return "(" + strings.Join(parts, " OR ") + ")", args, nil
}

func likePattern(c filter.Clause) (string, error) {
	v := escapeLike(c.Value())
	switch c.Op() {
	case filter.Contains:
		return "%" + v + "%", nil
	case filter.Equals:
		return v, nil
	case filter.HasPrefix:
		return v + "%", nil
	case filter.HasSuffix:
		return "%" + v, nil
	}
	return "", fmt.Errorf("unsupported operator %q", c.Op())
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards using the default backslash escape.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
