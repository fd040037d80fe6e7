// Package catalog describes the outcome of importing candidate records.
package catalog

import "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/entity"

// Status is the processing outcome of a single catalog record.
type Status string

// Record status values.
const (
	StatusImported Status = "imported"
	StatusRejected Status = "rejected"
)

// Outcome is the result of processing one record.
type Outcome struct {
	kind   entity.Kind
	index  int
	id     string
	status Status
	err    error
}

// Imported creates a successful outcome.
func Imported(kind entity.Kind, index int, id string) Outcome {
	return Outcome{kind: kind, index: index, id: id, status: StatusImported}
}

// Rejected creates a failed outcome. id may be empty when the record had none.
func Rejected(kind entity.Kind, index int, id string, err error) Outcome {
	return Outcome{kind: kind, index: index, id: id, status: StatusRejected, err: err}
}

// Kind returns the record type.
func (o Outcome) Kind() entity.Kind { return o.kind }

// Index returns the record position in its source list.
func (o Outcome) Index() int { return o.index }

// ID returns the record identifier.
func (o Outcome) ID() string { return o.id }

// Status returns the processing outcome.
func (o Outcome) Status() Status { return o.status }

// Err returns the error, if any.
func (o Outcome) Err() error { return o.err }

// Summary aggregates an import run.
type Summary struct {
	Outcomes []Outcome
	// Removed is the number of keys deleted before import (replace mode).
	Removed int
}

// Count returns how many outcomes have the given kind and status.
func (s Summary) Count(kind entity.Kind, status Status) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.kind == kind && o.status == status {
			n++
		}
	}
	return n
}

// Rejected returns the failed outcomes in input order.
func (s Summary) Rejected() []Outcome {
	var out []Outcome
	for _, o := range s.Outcomes {
		if o.status == StatusRejected {
			out = append(out, o)
		}
	}
	return out
}
