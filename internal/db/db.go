package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	HashStore
	SortedSetStore
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSetMulti(ctx context.Context, items []HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// ZAddItem holds a single key+score+member triple for pipelined ZADD.
type ZAddItem struct {
	Key    string
	Score  float64
	Member string
}

// ZRemItem names a single sorted-set member to remove.
type ZRemItem struct {
	Key    string
	Member string
}

// ScoreRange bounds a ZCOUNT. Min and Max use Redis range syntax
// ("-inf", "(1700000000", "+inf", ...).
type ScoreRange struct {
	Min string
	Max string
}

// SortedSetStore provides ordered index operations.
type SortedSetStore interface {
	ZAddMulti(ctx context.Context, items []ZAddItem) error
	ZRemMulti(ctx context.Context, items []ZRemItem) error
	// ZRange returns members by rank, inclusive on both ends. rev walks from
	// the highest score down.
	ZRange(ctx context.Context, key string, start, stop int64, rev bool) ([]string, error)
	ZCard(ctx context.Context, key string) (int64, error)
	ZCountMulti(ctx context.Context, keys []string, r ScoreRange) ([]int64, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
