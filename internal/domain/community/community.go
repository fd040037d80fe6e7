package community

import "fmt"

// Community is a search candidate describing a group that hosts events.
// MemberCount and RecentEventCount are denormalized by the store.
type Community struct {
	id               string
	slug             string
	name             string
	description      string
	memberCount      int
	recentEventCount int
}

// New validates and creates a Community.
func New(id, slug, name, description string, memberCount, recentEventCount int) (Community, error) {
	if id == "" {
		return Community{}, fmt.Errorf("community ID is required")
	}
	if name == "" {
		return Community{}, fmt.Errorf("community %s: name is required", id)
	}
	if memberCount < 0 {
		return Community{}, fmt.Errorf("community %s: member count must be >= 0", id)
	}
	if recentEventCount < 0 {
		return Community{}, fmt.Errorf("community %s: recent event count must be >= 0", id)
	}
	return Reconstruct(id, slug, name, description, memberCount, recentEventCount), nil
}

// Reconstruct creates a Community without validation (storage hydration).
func Reconstruct(id, slug, name, description string, memberCount, recentEventCount int) Community {
	return Community{
		id:               id,
		slug:             slug,
		name:             name,
		description:      description,
		memberCount:      memberCount,
		recentEventCount: recentEventCount,
	}
}

// ID returns the community identifier.
func (c Community) ID() string { return c.id }

// Slug returns the URL slug.
func (c Community) Slug() string { return c.slug }

// Name returns the community name.
func (c Community) Name() string { return c.name }

// Description returns the description, empty when absent.
func (c Community) Description() string { return c.description }

// MemberCount returns the number of members.
func (c Community) MemberCount() int { return c.memberCount }

// RecentEventCount returns the number of events that started within the last 30 days.
func (c Community) RecentEventCount() int { return c.recentEventCount }

// WithRecentEventCount returns a copy with the recent event count replaced.
func (c Community) WithRecentEventCount(n int) Community {
	c.recentEventCount = n
	return c
}
