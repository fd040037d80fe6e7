package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogCounter reports how many candidates the store holds.
type CatalogCounter interface {
	CountCandidates(ctx context.Context) (int64, error)
}
