// Package filter builds the coarse, store-neutral predicate used to shrink the
// candidate universe before in-memory scoring. Store adapters translate a
// Predicate into their own query language or evaluate it in-process.
package filter

import (
	"fmt"
	"strings"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/match"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/words"
)

// MaxBoundaryWords is the longest query, in words, that gets word-boundary
// clauses. Longer queries fall back to a plain substring test to bound the
// predicate size.
const MaxBoundaryWords = 3

// Op is a case-insensitive string comparison.
type Op string

// Comparison operators.
const (
	Contains  Op = "contains"
	Equals    Op = "equals"
	HasPrefix Op = "prefix"
	HasSuffix Op = "suffix"
)

// IsValid checks if the operator is one of the supported values.
func (o Op) IsValid() bool {
	return o == Contains || o == Equals || o == HasPrefix || o == HasSuffix
}

// Clause compares one field against a lower-cased value.
type Clause struct {
	field match.Field
	op    Op
	value string
}

// NewClause validates and creates a Clause. The value is lower-cased.
func NewClause(field match.Field, op Op, value string) (Clause, error) {
	if field == "" {
		return Clause{}, fmt.Errorf("clause field is required")
	}
	if !field.IsValid() {
		return Clause{}, fmt.Errorf("invalid clause field: %q", field)
	}
	if !op.IsValid() {
		return Clause{}, fmt.Errorf("invalid clause operator: %q", op)
	}
	if value == "" {
		return Clause{}, fmt.Errorf("clause value is required for field %q", field)
	}
	return Clause{field: field, op: op, value: strings.ToLower(value)}, nil
}

// Field returns the compared field.
func (c Clause) Field() match.Field { return c.field }

// Op returns the comparison operator.
func (c Clause) Op() Op { return c.op }

// Value returns the lower-cased operand.
func (c Clause) Value() string { return c.value }

// Matches evaluates the clause against a field value, ignoring case.
func (c Clause) Matches(v string) bool {
	v = strings.ToLower(v)
	switch c.op {
	case Contains:
		return strings.Contains(v, c.value)
	case Equals:
		return v == c.value
	case HasPrefix:
		return strings.HasPrefix(v, c.value)
	case HasSuffix:
		return strings.HasSuffix(v, c.value)
	}
	return false
}

// Predicate is a disjunction of clauses. The zero value matches everything.
type Predicate struct {
	anyOf []Clause
}

// NewPredicate creates a Predicate matching when any clause matches.
func NewPredicate(clauses ...Clause) Predicate {
	return Predicate{anyOf: clauses}
}

// Clauses returns the disjuncts.
func (p Predicate) Clauses() []Clause { return p.anyOf }

// IsEmpty reports whether the predicate has no clauses.
func (p Predicate) IsEmpty() bool { return len(p.anyOf) == 0 }

// Fields returns the distinct fields referenced by the predicate, in first-use order.
func (p Predicate) Fields() []match.Field {
	var out []match.Field
	seen := make(map[match.Field]bool)
	for _, c := range p.anyOf {
		if !seen[c.field] {
			seen[c.field] = true
			out = append(out, c.field)
		}
	}
	return out
}

// Matches evaluates the predicate against a record's field values.
// Missing fields compare as the empty string.
func (p Predicate) Matches(values map[match.Field]string) bool {
	if p.IsEmpty() {
		return true
	}
	for _, c := range p.anyOf {
		if c.Matches(values[c.field]) {
			return true
		}
	}
	return false
}

// Build returns the candidate predicate for query over fields.
//
// For queries of up to MaxBoundaryWords words every word contributes, per
// field, the clauses "surrounded by spaces", "starts the field followed by a
// space", "ends the field preceded by a space" and "equals the field". A
// substring test for the whole query is always added. Unknown fields are
// skipped.
//
// The predicate is coarse: fields the gate would accept only through a
// prefix extension or a single-edit fuzzy match may not be fetched.
func Build(query string, fields ...match.Field) Predicate {
	q := words.Normalize(query)
	if q == "" || len(fields) == 0 {
		return Predicate{}
	}

	var clauses []Clause
	terms := strings.Fields(q)
	if len(terms) <= MaxBoundaryWords {
		for _, w := range terms {
			for _, f := range fields {
				clauses = appendClauses(clauses, f,
					opValue{Contains, " " + w + " "},
					opValue{HasPrefix, w + " "},
					opValue{HasSuffix, " " + w},
					opValue{Equals, w},
				)
			}
		}
	}

	return Predicate{anyOf: append(clauses, Substring(q, fields...).anyOf...)}
}

// Substring returns a predicate matching records whose fields contain query.
func Substring(query string, fields ...match.Field) Predicate {
	q := words.Normalize(query)
	if q == "" {
		return Predicate{}
	}
	clauses := make([]Clause, 0, len(fields))
	for _, f := range fields {
		clauses = appendClauses(clauses, f, opValue{Contains, q})
	}
	return Predicate{anyOf: clauses}
}

type opValue struct {
	op    Op
	value string
}

// appendClauses adds a clause on field per pair. Pairs NewClause rejects are dropped.
func appendClauses(dst []Clause, field match.Field, pairs ...opValue) []Clause {
	for _, p := range pairs {
		if c, err := NewClause(field, p.op, p.value); err == nil {
			dst = append(dst, c)
		}
	}
	return dst
}
