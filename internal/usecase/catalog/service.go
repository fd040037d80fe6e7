package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain"
	domcat "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/catalog"
	domcomm "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/community"
	domevent "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/entity"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/logger"
)

// DefaultChunkSize is the number of records written per pipeline.
const DefaultChunkSize = 500

// Options tune an import run.
type Options struct {
	// Replace wipes the namespace before writing.
	Replace bool
}

// Service imports catalog documents into the candidate store.
type Service struct {
	events      EventWriter
	communities CommunityWriter
	ns          Namespace
	chunkSize   int
	now         func() time.Time
	newID       func() string
}

// New creates a catalog service.
func New(events EventWriter, communities CommunityWriter, ns Namespace) *Service {
	return &Service{
		events:      events,
		communities: communities,
		ns:          ns,
		chunkSize:   DefaultChunkSize,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// WithChunkSize configures the write chunk size.
func (s *Service) WithChunkSize(size int) *Service {
	if size > 0 {
		s.chunkSize = size
	}
	return s
}

// Import validates every record, writes the valid ones and reports per-record
// outcomes. Invalid records are skipped; a store failure aborts the run.
func (s *Service) Import(ctx context.Context, doc Document, opts Options) (domcat.Summary, error) {
	var summary domcat.Summary
	ctx, log := logger.With(ctx, zap.Bool("replace", opts.Replace))

	communities, outcomes := s.buildCommunities(doc.Communities)
	summary.Outcomes = append(summary.Outcomes, outcomes...)
	events, outcomes := s.buildEvents(doc.Events)
	summary.Outcomes = append(summary.Outcomes, outcomes...)

	if opts.Replace {
		n, err := s.ns.Reset(ctx)
		if err != nil {
			return summary, fmt.Errorf("reset catalog: %w", err)
		}
		summary.Removed = n
		log.Debug("catalog reset", zap.Int("removed", n))
	}

	for chunk := range chunks(communities, s.chunkSize) {
		if err := s.communities.SaveCommunities(ctx, chunk); err != nil {
			return summary, fmt.Errorf("import communities: %w", err)
		}
	}
	for chunk := range chunks(events, s.chunkSize) {
		if err := s.events.SaveEvents(ctx, chunk); err != nil {
			return summary, fmt.Errorf("import events: %w", err)
		}
	}

	if err := s.ns.MarkImported(ctx, s.now()); err != nil {
		return summary, err
	}

	log.Info("catalog imported",
		zap.Int("communities", len(communities)),
		zap.Int("events", len(events)),
		zap.Int("rejected", len(summary.Rejected())),
		zap.Int("removed", summary.Removed),
	)
	return summary, nil
}

func (s *Service) buildCommunities(recs []CommunityRecord) ([]domcomm.Community, []domcat.Outcome) {
	valid := make([]domcomm.Community, 0, len(recs))
	outcomes := make([]domcat.Outcome, 0, len(recs))
	for i, r := range recs {
		id := r.ID
		if id == "" {
			id = s.newID()
		}
		slug := r.Slug
		if slug == "" {
			slug = Slugify(r.Name)
		}
		c, err := domcomm.New(id, slug, r.Name, r.Description, r.MemberCount, 0)
		if err != nil {
			outcomes = append(outcomes, domcat.Rejected(entity.Community, i, r.ID,
				fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, err)))
			continue
		}
		valid = append(valid, c)
		outcomes = append(outcomes, domcat.Imported(entity.Community, i, id))
	}
	return valid, outcomes
}

func (s *Service) buildEvents(recs []EventRecord) ([]domevent.Event, []domcat.Outcome) {
	valid := make([]domevent.Event, 0, len(recs))
	outcomes := make([]domcat.Outcome, 0, len(recs))
	for i, r := range recs {
		id := r.ID
		if id == "" {
			id = s.newID()
		}
		slug := r.Slug
		if slug == "" {
			slug = Slugify(r.Title)
		}
		e, err := domevent.New(id, slug, r.Title, r.Description, r.StartDate, r.LocationID, r.CommunityID)
		if err != nil {
			outcomes = append(outcomes, domcat.Rejected(entity.Event, i, r.ID,
				fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, err)))
			continue
		}
		valid = append(valid, e)
		outcomes = append(outcomes, domcat.Imported(entity.Event, i, id))
	}
	return valid, outcomes
}

// chunks yields consecutive sub-slices of at most size elements.
func chunks[T any](items []T, size int) func(yield func([]T) bool) {
	return func(yield func([]T) bool) {
		for start := 0; start < len(items); start += size {
			if !yield(items[start:min(start+size, len(items))]) {
				return
			}
		}
	}
}
