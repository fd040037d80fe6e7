// Package pgtest provides in-memory pgx fakes for repository tests.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Rows is a pgx.Rows over fixed values.
type Rows struct {
	data   [][]any
	pos    int
	err    error
	closed bool
}

var _ pgx.Rows = (*Rows)(nil)

// NewRows creates Rows yielding data in order.
func NewRows(data ...[]any) *Rows {
	return &Rows{data: data, pos: -1}
}

// WithErr makes Err return err after iteration.
func (r *Rows) WithErr(err error) *Rows {
	r.err = err
	return r
}

// Closed reports whether Close was called.
func (r *Rows) Closed() bool { return r.closed }

func (r *Rows) Close() { r.closed = true }

func (r *Rows) Err() error { return r.err }

func (r *Rows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (r *Rows) Next() bool {
	if r.closed || r.pos+1 >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

// Scan copies the current row into dest. Supported targets: *string,
// *int, *int64, *time.Time.
func (r *Rows) Scan(dest ...any) error {
	row := r.data[r.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d targets for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		if err := assign(d, row[i]); err != nil {
			return fmt.Errorf("scan column %d: %w", i, err)
		}
	}
	return nil
}

func assign(dest, v any) error {
	switch d := dest.(type) {
	case *string:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("want string, got %T", v)
		}
		*d = s
	case *int64:
		n, ok := v.(int64)
		if !ok {
			return fmt.Errorf("want int64, got %T", v)
		}
		*d = n
	case *int:
		n, ok := v.(int)
		if !ok {
			return fmt.Errorf("want int, got %T", v)
		}
		*d = n
	case *time.Time:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("want time.Time, got %T", v)
		}
		*d = t
	default:
		return fmt.Errorf("unsupported target %T", dest)
	}
	return nil
}

func (r *Rows) Values() ([]any, error) { return r.data[r.pos], nil }

func (r *Rows) RawValues() [][]byte { return nil }

func (r *Rows) Conn() *pgx.Conn { return nil }

// Query is a recorded call to Querier.Query.
type Query struct {
	SQL  string
	Args []any
}

// Querier returns canned rows and records every query.
type Querier struct {
	Rows  *Rows
	Err   error
	Calls []Query
}

// Query implements the repositories' querier interface.
func (q *Querier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.Calls = append(q.Calls, Query{SQL: sql, Args: args})
	if q.Err != nil {
		return nil, q.Err
	}
	if q.Rows == nil {
		return NewRows(), nil
	}
	return q.Rows, nil
}
