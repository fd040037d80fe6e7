package event

import (
	"context"
	"fmt"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/db"
	domevent "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/filter"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/repository/keyspace"
)

// scanBatch is how many index entries are fetched per round-trip.
const scanBatch = 200

// store is the consumer interface for events (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	ZAddMulti(ctx context.Context, items []db.ZAddItem) error
	ZRemMulti(ctx context.Context, items []db.ZRemItem) error
	ZRange(ctx context.Context, key string, start, stop int64, rev bool) ([]string, error)
	ZCard(ctx context.Context, key string) (int64, error)
}

// RedisRepo serves events from Redis hashes walked in start-date order.
type RedisRepo struct {
	store store
	keys  keyspace.Keyspace
}

// NewRedis creates a Redis-backed event repository.
func NewRedis(s store, keys keyspace.Keyspace) *RedisRepo {
	return &RedisRepo{store: s, keys: keys}
}

// FindEvents walks the start-date index newest first and returns up to take
// events matching pred.
func (r *RedisRepo) FindEvents(ctx context.Context, pred filter.Predicate, take int) ([]domevent.Event, error) {
	if take <= 0 {
		return nil, nil
	}

	var out []domevent.Event
	for start := int64(0); ; start += scanBatch {
		ids, err := r.store.ZRange(ctx, r.keys.EventsByStart(), start, start+scanBatch-1, true)
		if err != nil {
			return nil, fmt.Errorf("range events: %w", err)
		}
		if len(ids) == 0 {
			break
		}

		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = r.keys.Event(id)
		}
		hashes, err := r.store.HGetAllMulti(ctx, keys)
		if err != nil {
			return nil, fmt.Errorf("load events: %w", err)
		}

		for i, h := range hashes {
			if len(h) == 0 {
				continue // index entry without a record
			}
			e, err := parseHashFields(ids[i], h)
			if err != nil {
				return nil, err
			}
			if !pred.Matches(predicateValues(e)) {
				continue
			}
			out = append(out, e)
			if len(out) == take {
				return out, nil
			}
		}

		if len(ids) < scanBatch {
			break
		}
	}
	return out, nil
}

// SaveEvents writes events and their ordering indexes. An event that moved to
// another community is removed from the previous community's start index.
func (r *RedisRepo) SaveEvents(ctx context.Context, events []domevent.Event) error {
	if len(events) == 0 {
		return nil
	}

	stale, err := r.staleCommunityMembers(ctx, events)
	if err != nil {
		return err
	}

	hashes := make([]db.HashSetItem, 0, len(events))
	index := make([]db.ZAddItem, 0, len(events)*2)
	for _, e := range events {
		hashes = append(hashes, db.HashSetItem{Key: r.keys.Event(e.ID()), Fields: buildHashFields(e)})

		score := float64(e.StartDate().Unix())
		index = append(index, db.ZAddItem{Key: r.keys.EventsByStart(), Score: score, Member: e.ID()})
		if e.CommunityID() != "" {
			index = append(index, db.ZAddItem{
				Key: r.keys.CommunityEventStarts(e.CommunityID()), Score: score, Member: e.ID(),
			})
		}
	}

	if err := r.store.HSetMulti(ctx, hashes); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	if err := r.store.ZAddMulti(ctx, index); err != nil {
		return fmt.Errorf("index events: %w", err)
	}
	if len(stale) > 0 {
		if err := r.store.ZRemMulti(ctx, stale); err != nil {
			return fmt.Errorf("unindex moved events: %w", err)
		}
	}
	return nil
}

// staleCommunityMembers lists community start-index entries that events
// supersedes: the stored community of each event, plus earlier communities
// when an id repeats within events.
func (r *RedisRepo) staleCommunityMembers(ctx context.Context, events []domevent.Event) ([]db.ZRemItem, error) {
	keys := make([]string, len(events))
	final := make(map[string]string, len(events))
	for i, e := range events {
		keys[i] = r.keys.Event(e.ID())
		final[e.ID()] = e.CommunityID()
	}
	stored, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load stored events: %w", err)
	}

	var stale []db.ZRemItem
	queued := make(map[db.ZRemItem]struct{})
	drop := func(id, communityID string) {
		if communityID == "" || communityID == final[id] {
			return
		}
		item := db.ZRemItem{Key: r.keys.CommunityEventStarts(communityID), Member: id}
		if _, ok := queued[item]; ok {
			return
		}
		queued[item] = struct{}{}
		stale = append(stale, item)
	}
	for i, e := range events {
		drop(e.ID(), stored[i][fieldCommunityID])
		drop(e.ID(), e.CommunityID())
	}
	return stale, nil
}

// CountEvents returns the number of indexed events.
func (r *RedisRepo) CountEvents(ctx context.Context) (int64, error) {
	n, err := r.store.ZCard(ctx, r.keys.EventsByStart())
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
