package search

import (
	"context"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/community"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/filter"
)

// EventSource retrieves event candidates matching a coarse predicate,
// ordered by start date descending, at most take of them.
type EventSource interface {
	FindEvents(ctx context.Context, pred filter.Predicate, take int) ([]event.Event, error)
}

// CommunitySource retrieves community candidates matching a coarse predicate,
// ordered by name ascending, at most take of them. RecentEventCount must be
// populated.
type CommunitySource interface {
	FindCommunities(ctx context.Context, pred filter.Predicate, take int) ([]community.Community, error)
}
