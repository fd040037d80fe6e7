package community

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/db"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/db/postgres"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain"
	domcomm "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/community"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/filter"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/match"
)

// querier is the consumer interface for SQL reads (ISP).
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var columns = postgres.Columns{
	match.FieldName:        "c.name",
	match.FieldDescription: "c.description",
}

// $1 limit, $2..$3 recent activity window, filter args from $4.
const selectCommunities = `
SELECT c.id, COALESCE(c.slug, ''), c.name, COALESCE(c.description, ''),
       (SELECT count(*) FROM community_members m WHERE m.community_id = c.id),
       (SELECT count(*) FROM events e
         WHERE e.community_id = c.id AND e.start_date >= $2 AND e.start_date <= $3)
FROM communities c
WHERE %s
ORDER BY c.name ASC, c.id
LIMIT $1`

const countCommunities = `SELECT count(*) FROM communities`

// PostgresRepo serves communities from a read-only Postgres schema.
type PostgresRepo struct {
	q   querier
	now func() time.Time
}

// NewPostgres creates a Postgres-backed community repository.
func NewPostgres(q querier) *PostgresRepo {
	return &PostgresRepo{q: q, now: time.Now}
}

// FindCommunities returns up to take communities matching pred, by name.
func (r *PostgresRepo) FindCommunities(
	ctx context.Context, pred filter.Predicate, take int,
) ([]domcomm.Community, error) {
	if take <= 0 {
		return nil, nil
	}

	where, args, err := postgres.Where(pred, columns, 3)
	if err != nil {
		return nil, fmt.Errorf("render filter: %w", err)
	}

	now := r.now()
	params := append([]any{take, now.Add(-domain.RecentActivityWindow), now}, args...)
	rows, err := r.q.Query(ctx, fmt.Sprintf(selectCommunities, where), params...)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	defer rows.Close()

	var out []domcomm.Community
	for rows.Next() {
		var (
			id, slug, name, desc string
			members, recent      int64
		)
		if err := rows.Scan(&id, &slug, &name, &desc, &members, &recent); err != nil {
			return nil, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("scan community: %w", err)}
		}
		out = append(out, domcomm.Reconstruct(id, slug, name, desc, int(members), int(recent)))
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	return out, nil
}

// CountCommunities returns the number of communities.
func (r *PostgresRepo) CountCommunities(ctx context.Context) (int64, error) {
	rows, err := r.q.Query(ctx, countCommunities)
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
