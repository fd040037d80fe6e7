package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/db"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/repository/keyspace"
)

// delBatch bounds the number of keys per DEL.
const delBatch = 500

const importedAtKey = "imported_at"

// store is the consumer interface for catalog housekeeping (ISP).
type store interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
	Del(ctx context.Context, keys ...string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo manages namespace-wide catalog state in Redis.
type Repo struct {
	store store
	keys  keyspace.Keyspace
}

// New creates a catalog repository.
func New(s store, keys keyspace.Keyspace) *Repo {
	return &Repo{store: s, keys: keys}
}

// Reset deletes every key in the namespace and returns how many were removed.
func (r *Repo) Reset(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.keys.All())
	if err != nil {
		return 0, fmt.Errorf("scan namespace: %w", err)
	}
	for start := 0; start < len(keys); start += delBatch {
		end := min(start+delBatch, len(keys))
		if err := r.store.Del(ctx, keys[start:end]...); err != nil {
			return start, fmt.Errorf("delete keys: %w", err)
		}
	}
	return len(keys), nil
}

// MarkImported records the time of the last successful import.
func (r *Repo) MarkImported(ctx context.Context, at time.Time) error {
	v := []byte(at.UTC().Format(time.RFC3339))
	if err := r.store.Set(ctx, r.keys.Meta(importedAtKey), v); err != nil {
		return fmt.Errorf("mark imported: %w", err)
	}
	return nil
}

// LastImport returns the time of the last import, zero if none was recorded.
func (r *Repo) LastImport(ctx context.Context) (time.Time, error) {
	v, err := r.store.Get(ctx, r.keys.Meta(importedAtKey))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("read import time: %w", err)
	}
	t, err := time.Parse(time.RFC3339, string(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse import time: %w", err)
	}
	return t, nil
}
