package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/community"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/entity"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/filter"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/gate"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/match"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/request"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/result"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/scorer"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/logger"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/metrics"
)

// Service ranks events and communities for free-text queries.
type Service struct {
	events      EventSource
	communities CommunitySource
	sample      SamplePolicy
	now         func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithSamplePolicy overrides SampleSize.
func WithSamplePolicy(p SamplePolicy) Option {
	return func(s *Service) { s.sample = p }
}

// WithClock overrides time.Now for recency scoring.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a search service.
func New(events EventSource, communities CommunitySource, opts ...Option) *Service {
	s := &Service{
		events:      events,
		communities: communities,
		sample:      SampleSize,
		now:         time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SearchEvents runs retrieve, gate, score, sort and slice for events.
func (s *Service) SearchEvents(ctx context.Context, q request.Search) (result.Page[event.Event], error) {
	started := time.Now()
	take := s.sample(q.Size())
	pred := filter.Build(q.Text(), match.FieldTitle, match.FieldDescription)

	candidates, err := s.events.FindEvents(ctx, pred, take)
	if err != nil {
		metrics.SearchErrorsTotal.WithLabelValues(string(entity.Event)).Inc()
		return result.Page[event.Event]{}, fmt.Errorf("find events: %w", err)
	}
	candidates = truncate(candidates, take)

	now := s.now()
	ranked := rank(candidates, q.Text(),
		func(e event.Event) bool {
			return gate.AnyRelevant(q.Text(), e.Title(), e.Description())
		},
		func(e event.Event) scorer.Score {
			return scorer.Event(e, q.Text(), q.UserLocationID(), now)
		},
	)
	page := paginate(ranked, q)

	s.observe(ctx, entity.Event, started, take, len(candidates), len(ranked), len(page.Data))
	return page, nil
}

// SearchCommunities runs retrieve, gate, score, sort and slice for communities.
func (s *Service) SearchCommunities(
	ctx context.Context, q request.Search,
) (result.Page[community.Community], error) {
	started := time.Now()
	take := s.sample(q.Size())
	pred := filter.Build(q.Text(), match.FieldName, match.FieldDescription)

	candidates, err := s.communities.FindCommunities(ctx, pred, take)
	if err != nil {
		metrics.SearchErrorsTotal.WithLabelValues(string(entity.Community)).Inc()
		return result.Page[community.Community]{}, fmt.Errorf("find communities: %w", err)
	}
	candidates = truncate(candidates, take)

	ranked := rank(candidates, q.Text(),
		func(c community.Community) bool {
			return gate.AnyRelevant(q.Text(), c.Name(), c.Description())
		},
		func(c community.Community) scorer.Score {
			return scorer.Community(c, q.Text())
		},
	)
	page := paginate(ranked, q)

	s.observe(ctx, entity.Community, started, take, len(candidates), len(ranked), len(page.Data))
	return page, nil
}

// Autocomplete returns up to q.Limit() suggestions across events and
// communities. Both fetches must succeed.
func (s *Service) Autocomplete(ctx context.Context, q request.Autocomplete) ([]result.Suggestion, error) {
	if q.IsBlank() {
		return []result.Suggestion{}, nil
	}

	take := q.Limit() * 2
	var (
		events      []event.Event
		communities []community.Community
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.events.FindEvents(gctx, filter.Substring(q.Text(), match.FieldTitle), take)
		if err != nil {
			return fmt.Errorf("find events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		communities, err = s.communities.FindCommunities(gctx, filter.Substring(q.Text(), match.FieldName), take)
		if err != nil {
			return fmt.Errorf("find communities: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}

	events = truncate(events, take)
	communities = truncate(communities, take)

	out := make([]result.Suggestion, 0, len(events)+len(communities))
	for _, e := range events {
		out = append(out, result.Suggestion{
			ID: e.ID(), Title: e.Title(), Slug: e.Slug(), Type: entity.Event,
			Score: SuggestScore(e.Title(), q.Text()),
		})
	}
	for _, c := range communities {
		out = append(out, result.Suggestion{
			ID: c.ID(), Title: c.Name(), Slug: c.Slug(), Type: entity.Community,
			Score: SuggestScore(c.Name(), q.Text()),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > q.Limit() {
		out = out[:q.Limit()]
	}

	metrics.AutocompleteSuggestions.Observe(float64(len(out)))
	return out, nil
}

func (s *Service) observe(
	ctx context.Context, kind entity.Kind, started time.Time,
	take, sampled, relevant, returned int,
) {
	metrics.ObserveSearch(string(kind), started, sampled, relevant, returned)
	logger.FromContext(ctx).Debug("search completed",
		zap.String("entity", string(kind)),
		zap.Int("take", take),
		zap.Int("sampled", sampled),
		zap.Int("relevant", relevant),
		zap.Int("returned", returned),
		zap.Duration("took", time.Since(started)),
	)
}

func truncate[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
