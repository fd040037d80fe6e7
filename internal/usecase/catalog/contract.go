package catalog

import (
	"context"
	"time"

	domcomm "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/community"
	domevent "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/event"
)

// EventWriter persists events and their indexes.
type EventWriter interface {
	SaveEvents(ctx context.Context, events []domevent.Event) error
}

// CommunityWriter persists communities and their indexes.
type CommunityWriter interface {
	SaveCommunities(ctx context.Context, cs []domcomm.Community) error
}

// Namespace manages catalog-wide state.
type Namespace interface {
	Reset(ctx context.Context) (int, error)
	MarkImported(ctx context.Context, at time.Time) error
}

// EventCounter reports the stored event count.
type EventCounter interface {
	CountEvents(ctx context.Context) (int64, error)
}

// CommunityCounter reports the stored community count.
type CommunityCounter interface {
	CountCommunities(ctx context.Context) (int64, error)
}
