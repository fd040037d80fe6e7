package catalog

import (
	"context"
	"fmt"
)

// Counter sums candidates across entity types.
type Counter struct {
	events      EventCounter
	communities CommunityCounter
}

// NewCounter creates a Counter.
func NewCounter(events EventCounter, communities CommunityCounter) *Counter {
	return &Counter{events: events, communities: communities}
}

// CountCandidates returns the total number of searchable records.
func (c *Counter) CountCandidates(ctx context.Context) (int64, error) {
	ne, err := c.events.CountEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	nc, err := c.communities.CountCommunities(ctx)
	if err != nil {
		return 0, fmt.Errorf("count communities: %w", err)
	}
	return ne + nc, nil
}
