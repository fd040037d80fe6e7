package community

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/db"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/repository/keyspace"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetMultiFn    func(ctx context.Context, items []db.HashSetItem) error
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	zaddMultiFn    func(ctx context.Context, items []db.ZAddItem) error
	zremMultiFn    func(ctx context.Context, items []db.ZRemItem) error
	zrangeFn       func(ctx context.Context, key string, start, stop int64, rev bool) ([]string, error)
	zcardFn        func(ctx context.Context, key string) (int64, error)
	zcountMultiFn  func(ctx context.Context, keys []string, r db.ScoreRange) ([]int64, error)
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return make([]map[string]string, len(keys)), nil
}

func (m *mockStore) ZAddMulti(ctx context.Context, items []db.ZAddItem) error {
	if m.zaddMultiFn != nil {
		return m.zaddMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) ZRemMulti(ctx context.Context, items []db.ZRemItem) error {
	if m.zremMultiFn != nil {
		return m.zremMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) ZRange(ctx context.Context, key string, start, stop int64, rev bool) ([]string, error) {
	if m.zrangeFn != nil {
		return m.zrangeFn(ctx, key, start, stop, rev)
	}
	return nil, nil
}

func (m *mockStore) ZCard(ctx context.Context, key string) (int64, error) {
	if m.zcardFn != nil {
		return m.zcardFn(ctx, key)
	}
	return 0, nil
}

func (m *mockStore) ZCountMulti(ctx context.Context, keys []string, r db.ScoreRange) ([]int64, error) {
	if m.zcountMultiFn != nil {
		return m.zcountMultiFn(ctx, keys, r)
	}
	return make([]int64, len(keys)), nil
}

var testKeys = keyspace.New("t")

var testNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

// memStore is an in-memory store that keeps hashes and sorted sets, for
// tests that need writes and reads to see each other.
type memStore struct {
	hashes map[string]map[string]string
	zsets  map[string]map[string]float64
}

func newMemStore() *memStore {
	return &memStore{
		hashes: make(map[string]map[string]string),
		zsets:  make(map[string]map[string]float64),
	}
}

func (m *memStore) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	for _, it := range items {
		h := m.hashes[it.Key]
		if h == nil {
			h = make(map[string]string)
			m.hashes[it.Key] = h
		}
		maps.Copy(h, it.Fields)
	}
	return nil
}

func (m *memStore) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i] = maps.Clone(m.hashes[k])
	}
	return out, nil
}

func (m *memStore) ZAddMulti(_ context.Context, items []db.ZAddItem) error {
	for _, it := range items {
		z := m.zsets[it.Key]
		if z == nil {
			z = make(map[string]float64)
			m.zsets[it.Key] = z
		}
		z[it.Member] = it.Score
	}
	return nil
}

func (m *memStore) ZRemMulti(_ context.Context, items []db.ZRemItem) error {
	for _, it := range items {
		delete(m.zsets[it.Key], it.Member)
	}
	return nil
}

func (m *memStore) ZRange(_ context.Context, key string, start, stop int64, rev bool) ([]string, error) {
	z := m.zsets[key]
	members := slices.Collect(maps.Keys(z))
	slices.SortFunc(members, func(a, b string) int {
		if c := cmp.Compare(z[a], z[b]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	if rev {
		slices.Reverse(members)
	}
	if start >= int64(len(members)) {
		return nil, nil
	}
	return members[start:min(stop+1, int64(len(members)))], nil
}

func (m *memStore) ZCard(_ context.Context, key string) (int64, error) {
	return int64(len(m.zsets[key])), nil
}

func (m *memStore) ZCountMulti(_ context.Context, keys []string, r db.ScoreRange) ([]int64, error) {
	lo, err := strconv.ParseFloat(r.Min, 64)
	if err != nil {
		return nil, err
	}
	hi, err := strconv.ParseFloat(r.Max, 64)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(keys))
	for i, k := range keys {
		for _, score := range m.zsets[k] {
			if score >= lo && score <= hi {
				out[i]++
			}
		}
	}
	return out, nil
}
