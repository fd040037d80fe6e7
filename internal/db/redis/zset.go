package redis

import (
	"context"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/db"
)

// ZAddMulti adds one member per item, pipelined.
func (s *Store) ZAddMulti(ctx context.Context, items []db.ZAddItem) error {
	cmds := make([]rueidis.Completed, len(items))
	for i, item := range items {
		cmds[i] = s.b().Zadd().Key(item.Key).ScoreMember().ScoreMember(item.Score, item.Member).Build()
	}

	for i, res := range s.pipeline(ctx, cmds) {
		if err := res.Error(); err != nil {
			return keyError(db.OpZAdd, items[i].Key, err)
		}
	}
	return nil
}

// ZRemMulti removes one member per item, pipelined. Missing members are not
// an error.
func (s *Store) ZRemMulti(ctx context.Context, items []db.ZRemItem) error {
	cmds := make([]rueidis.Completed, len(items))
	for i, item := range items {
		cmds[i] = s.b().Zrem().Key(item.Key).Member(item.Member).Build()
	}

	for i, res := range s.pipeline(ctx, cmds) {
		if err := res.Error(); err != nil {
			return keyError(db.OpZRem, items[i].Key, err)
		}
	}
	return nil
}

// ZRange returns members between ranks start and stop, inclusive.
func (s *Store) ZRange(ctx context.Context, key string, start, stop int64, rev bool) ([]string, error) {
	args := []string{strconv.FormatInt(start, 10), strconv.FormatInt(stop, 10)}
	if rev {
		args = append(args, "REV")
	}
	cmd := s.b().Arbitrary("ZRANGE").Keys(key).Args(args...).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRange, Err: err}
	}
	return members, nil
}

// ZCard returns the number of members in a sorted set.
func (s *Store) ZCard(ctx context.Context, key string) (int64, error) {
	cmd := s.b().Zcard().Key(key).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpZCard, Err: err}
	}
	return n, nil
}

// ZCountMulti counts members within r for every key, pipelined.
func (s *Store) ZCountMulti(ctx context.Context, keys []string, r db.ScoreRange) ([]int64, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, len(keys))
	for i, key := range keys {
		cmds[i] = s.b().Zcount().Key(key).Min(r.Min).Max(r.Max).Build()
	}

	out := make([]int64, len(keys))
	for i, res := range s.pipeline(ctx, cmds) {
		n, err := res.AsInt64()
		if err != nil {
			return nil, keyError(db.OpZCount, keys[i], err)
		}
		out[i] = n
	}
	return out, nil
}
