package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/config"
	dbPostgres "github.com/SrivastavaSrijan/rsvped-sub000/internal/db/postgres"
	dbRedis "github.com/SrivastavaSrijan/rsvped-sub000/internal/db/redis"
	catalogrepo "github.com/SrivastavaSrijan/rsvped-sub000/internal/repository/catalog"
	communityrepo "github.com/SrivastavaSrijan/rsvped-sub000/internal/repository/community"
	eventrepo "github.com/SrivastavaSrijan/rsvped-sub000/internal/repository/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/repository/keyspace"
	cataloguc "github.com/SrivastavaSrijan/rsvped-sub000/internal/usecase/catalog"
	healthuc "github.com/SrivastavaSrijan/rsvped-sub000/internal/usecase/health"
	searchuc "github.com/SrivastavaSrijan/rsvped-sub000/internal/usecase/search"
)

// app is the composition root shared by every subcommand.
type app struct {
	search  *searchuc.Service
	health  *healthuc.Service
	counter *cataloguc.Counter
	// catalog and meta are nil for the read-only postgres driver.
	catalog *cataloguc.Service
	meta    *catalogrepo.Repo
	close   func()
}

func buildApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second

	switch cfg.Database.Driver {
	case config.DriverRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Username: cfg.Database.Username,
			Password: cfg.Database.Password,
			DB:       cfg.Database.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, readiness); err != nil {
			store.Close()
			return nil, fmt.Errorf("redis not ready: %w", err)
		}
		logger.Info("Connected to redis", zap.Strings("addrs", cfg.Database.Addrs))

		keys := keyspace.New(cfg.Storage.KeyPrefix)
		events := eventrepo.NewRedis(store, keys)
		communities := communityrepo.NewRedis(store, keys)
		meta := catalogrepo.New(store, keys)
		counter := cataloguc.NewCounter(events, communities)

		return &app{
			search:  searchuc.New(events, communities),
			health:  healthuc.New(store, counter),
			counter: counter,
			catalog: cataloguc.New(events, communities, meta),
			meta:    meta,
			close:   store.Close,
		}, nil

	case config.DriverPostgres:
		pool, err := dbPostgres.NewPool(ctx, dbPostgres.Config{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres pool: %w", err)
		}
		if err := pool.WaitForReady(ctx, readiness); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres not ready: %w", err)
		}
		logger.Info("Connected to postgres")

		events := eventrepo.NewPostgres(pool)
		communities := communityrepo.NewPostgres(pool)
		counter := cataloguc.NewCounter(events, communities)

		return &app{
			search:  searchuc.New(events, communities),
			health:  healthuc.New(pool, counter),
			counter: counter,
			close:   pool.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
}
