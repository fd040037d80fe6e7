package community

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/db"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain"
	domcomm "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/community"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/filter"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/repository/keyspace"
)

// scanBatch is how many index entries are fetched per round-trip.
const scanBatch = 200

// store is the consumer interface for communities (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	ZAddMulti(ctx context.Context, items []db.ZAddItem) error
	ZRemMulti(ctx context.Context, items []db.ZRemItem) error
	ZRange(ctx context.Context, key string, start, stop int64, rev bool) ([]string, error)
	ZCard(ctx context.Context, key string) (int64, error)
	ZCountMulti(ctx context.Context, keys []string, r db.ScoreRange) ([]int64, error)
}

// RedisRepo serves communities from Redis hashes walked in name order.
type RedisRepo struct {
	store store
	keys  keyspace.Keyspace
	now   func() time.Time
}

// NewRedis creates a Redis-backed community repository.
func NewRedis(s store, keys keyspace.Keyspace) *RedisRepo {
	return &RedisRepo{store: s, keys: keys, now: time.Now}
}

// FindCommunities walks the name index and returns up to take communities
// matching pred, with RecentEventCount filled in.
func (r *RedisRepo) FindCommunities(
	ctx context.Context, pred filter.Predicate, take int,
) ([]domcomm.Community, error) {
	if take <= 0 {
		return nil, nil
	}

	var out []domcomm.Community
	seen := make(map[string]struct{})
	for start := int64(0); len(out) < take; start += scanBatch {
		members, err := r.store.ZRange(ctx, r.keys.CommunitiesByName(), start, start+scanBatch-1, false)
		if err != nil {
			return nil, fmt.Errorf("range communities: %w", err)
		}
		if len(members) == 0 {
			break
		}

		ids := make([]string, len(members))
		keys := make([]string, len(members))
		for i, m := range members {
			ids[i] = keyspace.IDFromNameMember(m)
			keys[i] = r.keys.Community(ids[i])
		}
		hashes, err := r.store.HGetAllMulti(ctx, keys)
		if err != nil {
			return nil, fmt.Errorf("load communities: %w", err)
		}

		for i, h := range hashes {
			if len(h) == 0 {
				continue
			}
			// a rename racing a read can leave two members for one id
			if _, dup := seen[ids[i]]; dup {
				continue
			}
			seen[ids[i]] = struct{}{}
			c, err := parseHashFields(ids[i], h)
			if err != nil {
				return nil, err
			}
			if pred.Matches(predicateValues(c)) {
				out = append(out, c)
				if len(out) == take {
					break
				}
			}
		}

		if len(members) < scanBatch {
			break
		}
	}

	return r.withRecentEvents(ctx, out)
}

// withRecentEvents counts each community's events that started within
// domain.RecentActivityWindow.
func (r *RedisRepo) withRecentEvents(ctx context.Context, cs []domcomm.Community) ([]domcomm.Community, error) {
	if len(cs) == 0 {
		return cs, nil
	}

	now := r.now()
	window := db.ScoreRange{
		Min: strconv.FormatInt(now.Add(-domain.RecentActivityWindow).Unix(), 10),
		Max: strconv.FormatInt(now.Unix(), 10),
	}
	keys := make([]string, len(cs))
	for i, c := range cs {
		keys[i] = r.keys.CommunityEventStarts(c.ID())
	}

	counts, err := r.store.ZCountMulti(ctx, keys, window)
	if err != nil {
		return nil, fmt.Errorf("count recent events: %w", err)
	}
	for i := range cs {
		cs[i] = cs[i].WithRecentEventCount(int(counts[i]))
	}
	return cs, nil
}

// SaveCommunities writes communities and the name index. A renamed
// community has its previous name member removed from the index.
func (r *RedisRepo) SaveCommunities(ctx context.Context, cs []domcomm.Community) error {
	if len(cs) == 0 {
		return nil
	}

	stale, err := r.staleNameMembers(ctx, cs)
	if err != nil {
		return err
	}

	hashes := make([]db.HashSetItem, len(cs))
	index := make([]db.ZAddItem, len(cs))
	for i, c := range cs {
		hashes[i] = db.HashSetItem{Key: r.keys.Community(c.ID()), Fields: buildHashFields(c)}
		index[i] = db.ZAddItem{
			Key: r.keys.CommunitiesByName(), Score: 0, Member: keyspace.NameMember(c.Name(), c.ID()),
		}
	}

	if err := r.store.HSetMulti(ctx, hashes); err != nil {
		return fmt.Errorf("save communities: %w", err)
	}
	if err := r.store.ZAddMulti(ctx, index); err != nil {
		return fmt.Errorf("index communities: %w", err)
	}
	if len(stale) > 0 {
		if err := r.store.ZRemMulti(ctx, stale); err != nil {
			return fmt.Errorf("unindex renamed communities: %w", err)
		}
	}
	return nil
}

// staleNameMembers lists name-index members that cs supersedes: the stored
// name of each community, plus earlier names when an id repeats within cs.
func (r *RedisRepo) staleNameMembers(ctx context.Context, cs []domcomm.Community) ([]db.ZRemItem, error) {
	keys := make([]string, len(cs))
	for i, c := range cs {
		keys[i] = r.keys.Community(c.ID())
	}
	stored, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load stored communities: %w", err)
	}

	final := make(map[string]string, len(cs))
	for _, c := range cs {
		final[c.ID()] = keyspace.NameMember(c.Name(), c.ID())
	}

	var stale []db.ZRemItem
	queued := make(map[string]struct{})
	drop := func(id, member string) {
		if member == final[id] {
			return
		}
		if _, ok := queued[member]; ok {
			return
		}
		queued[member] = struct{}{}
		stale = append(stale, db.ZRemItem{Key: r.keys.CommunitiesByName(), Member: member})
	}
	for i, c := range cs {
		if name, ok := stored[i][fieldName]; ok {
			drop(c.ID(), keyspace.NameMember(name, c.ID()))
		}
		drop(c.ID(), keyspace.NameMember(c.Name(), c.ID()))
	}
	return stale, nil
}

// CountCommunities returns the number of indexed communities.
func (r *RedisRepo) CountCommunities(ctx context.Context) (int64, error) {
	n, err := r.store.ZCard(ctx, r.keys.CommunitiesByName())
	if err != nil {
		return 0, fmt.Errorf("count communities: %w", err)
	}
	return n, nil
}
