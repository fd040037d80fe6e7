package event

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/db"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/db/postgres"
	domevent "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/filter"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/match"
)

// querier is the consumer interface for SQL reads (ISP).
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var columns = postgres.Columns{
	match.FieldTitle:       "e.title",
	match.FieldDescription: "e.description",
}

const selectEvents = `
SELECT e.id, COALESCE(e.slug, ''), e.title, COALESCE(e.description, ''), e.start_date,
       COALESCE(e.location_id, ''), COALESCE(e.community_id, '')
FROM events e
WHERE %s
ORDER BY e.start_date DESC, e.id
LIMIT $1`

const countEvents = `SELECT count(*) FROM events`

// PostgresRepo serves events from a read-only Postgres schema.
type PostgresRepo struct {
	q querier
}

// NewPostgres creates a Postgres-backed event repository.
func NewPostgres(q querier) *PostgresRepo {
	return &PostgresRepo{q: q}
}

// FindEvents returns up to take events matching pred, newest start first.
func (r *PostgresRepo) FindEvents(ctx context.Context, pred filter.Predicate, take int) ([]domevent.Event, error) {
	if take <= 0 {
		return nil, nil
	}

	where, args, err := postgres.Where(pred, columns, 1)
	if err != nil {
		return nil, fmt.Errorf("render filter: %w", err)
	}

	rows, err := r.q.Query(ctx, fmt.Sprintf(selectEvents, where), append([]any{take}, args...)...)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	defer rows.Close()

	var out []domevent.Event
	for rows.Next() {
		var (
			id, slug, title, desc, loc, comm string
			start                            time.Time
		)
		if err := rows.Scan(&id, &slug, &title, &desc, &start, &loc, &comm); err != nil {
			return nil, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("scan event: %w", err)}
		}
		out = append(out, domevent.Reconstruct(id, slug, title, desc, start, loc, comm))
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	return out, nil
}

// CountEvents returns the number of events.
func (r *PostgresRepo) CountEvents(ctx context.Context) (int64, error) {
	rows, err := r.q.Query(ctx, countEvents)
	if err != nil {
		return 0, &db.Error{Op: db.OpQuery, Err: err}
	}
	defer rows.Close()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, &db.Error{Op: db.OpQuery, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return 0, &db.Error{Op: db.OpQuery, Err: err}
	}
	return n, nil
}
