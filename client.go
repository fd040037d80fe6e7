// Package rsvped is an embeddable client for relevance search over RSVPed
// events and communities.
package rsvped

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	dbPostgres "github.com/SrivastavaSrijan/rsvped-sub000/internal/db/postgres"
	dbRedis "github.com/SrivastavaSrijan/rsvped-sub000/internal/db/redis"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain"
	domcat "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/catalog"
	domcomm "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/community"
	domevent "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/request"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/result"
	catalogrepo "github.com/SrivastavaSrijan/rsvped-sub000/internal/repository/catalog"
	communityrepo "github.com/SrivastavaSrijan/rsvped-sub000/internal/repository/community"
	eventrepo "github.com/SrivastavaSrijan/rsvped-sub000/internal/repository/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/repository/keyspace"
	cataloguc "github.com/SrivastavaSrijan/rsvped-sub000/internal/usecase/catalog"
	searchuc "github.com/SrivastavaSrijan/rsvped-sub000/internal/usecase/search"
)

const (
	driverRedis    = "redis"
	driverPostgres = "postgres"

	defaultReadinessTimeout = 10 * time.Second
)

// Internal interfaces, swapped out in tests.
type searchUseCase interface {
	SearchEvents(ctx context.Context, q request.Search) (result.Page[domevent.Event], error)
	SearchCommunities(ctx context.Context, q request.Search) (result.Page[domcomm.Community], error)
	Autocomplete(ctx context.Context, q request.Autocomplete) ([]result.Suggestion, error)
}

type catalogUseCase interface {
	Import(ctx context.Context, doc cataloguc.Document, opts cataloguc.Options) (domcat.Summary, error)
}

type store interface {
	Ping(ctx context.Context) error
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Client is the rsvped SDK entry point.
type Client struct {
	store     store
	searchSvc searchUseCase
	// nil for read-only drivers
	catalogSvc catalogUseCase
}

// New creates a Client and waits for the store to become reachable.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{readiness: defaultReadinessTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	ctx := context.Background()
	switch cfg.driver {
	case driverRedis:
		if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
			return nil, errors.New("rsvped: redis address required")
		}
		s, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.addrs, Password: cfg.password})
		if err != nil {
			return nil, fmt.Errorf("rsvped: create redis store: %w", err)
		}
		if err := s.WaitForReady(ctx, cfg.readiness); err != nil {
			s.Close()
			return nil, fmt.Errorf("rsvped: database not ready: %w", err)
		}
		return wireRedis(s, cfg), nil

	case driverPostgres:
		if cfg.url == "" {
			return nil, errors.New("rsvped: postgres url required")
		}
		p, err := dbPostgres.NewPool(ctx, dbPostgres.Config{URL: cfg.url})
		if err != nil {
			return nil, fmt.Errorf("rsvped: create postgres pool: %w", err)
		}
		if err := p.WaitForReady(ctx, cfg.readiness); err != nil {
			p.Close()
			return nil, fmt.Errorf("rsvped: database not ready: %w", err)
		}
		return wirePostgres(p, cfg), nil

	case "":
		return nil, errors.New("rsvped: database required (use WithRedis or WithPostgres)")
	}
	return nil, fmt.Errorf("rsvped: unknown driver %q", cfg.driver)
}

func searchOptions(cfg *clientConfig) []searchuc.Option {
	if cfg.now == nil {
		return nil
	}
	return []searchuc.Option{searchuc.WithClock(cfg.now)}
}

func wireRedis(s *dbRedis.Store, cfg *clientConfig) *Client {
	keys := keyspace.New(cfg.keyPrefix)
	events := eventrepo.NewRedis(s, keys)
	communities := communityrepo.NewRedis(s, keys)
	return &Client{
		store:      s,
		searchSvc:  searchuc.New(events, communities, searchOptions(cfg)...),
		catalogSvc: cataloguc.New(events, communities, catalogrepo.New(s, keys)),
	}
}

func wirePostgres(p *dbPostgres.Pool, cfg *clientConfig) *Client {
	return &Client{
		store:     p,
		searchSvc: searchuc.New(eventrepo.NewPostgres(p), communityrepo.NewPostgres(p), searchOptions(cfg)...),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Import loads a YAML catalog. With replace set, the namespace is wiped first.
func (c *Client) Import(ctx context.Context, r io.Reader, replace bool) (ImportSummary, error) {
	if c.catalogSvc == nil {
		return ImportSummary{}, fmt.Errorf("%w: read-only driver", domain.ErrImportNotSupported)
	}
	doc, err := cataloguc.Parse(r)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("parse catalog: %w", err)
	}
	s, err := c.catalogSvc.Import(ctx, doc, cataloguc.Options{Replace: replace})
	if err != nil {
		return ImportSummary{}, fmt.Errorf("import: %w", err)
	}
	return fromSummary(s), nil
}
