package event

import (
	"fmt"
	"time"
)

// Event is a search candidate describing a scheduled gathering (immutable value object).
type Event struct {
	id          string
	slug        string
	title       string
	description string
	startDate   time.Time
	locationID  string
	communityID string
}

// New validates and creates an Event. Description, location and community are optional.
func New(
	id, slug, title, description string,
	startDate time.Time,
	locationID, communityID string,
) (Event, error) {
	if id == "" {
		return Event{}, fmt.Errorf("event ID is required")
	}
	if title == "" {
		return Event{}, fmt.Errorf("event %s: title is required", id)
	}
	if startDate.IsZero() {
		return Event{}, fmt.Errorf("event %s: start date is required", id)
	}
	return Reconstruct(id, slug, title, description, startDate, locationID, communityID), nil
}

// Reconstruct creates an Event without validation (storage hydration).
func Reconstruct(
	id, slug, title, description string,
	startDate time.Time,
	locationID, communityID string,
) Event {
	return Event{
		id:          id,
		slug:        slug,
		title:       title,
		description: description,
		startDate:   startDate,
		locationID:  locationID,
		communityID: communityID,
	}
}

// ID returns the event identifier.
func (e Event) ID() string { return e.id }

// Slug returns the URL slug.
func (e Event) Slug() string { return e.slug }

// Title returns the event title.
func (e Event) Title() string { return e.title }

// Description returns the description, empty when absent.
func (e Event) Description() string { return e.description }

// StartDate returns when the event starts.
func (e Event) StartDate() time.Time { return e.startDate }

// LocationID returns the location identifier, empty when absent.
func (e Event) LocationID() string { return e.locationID }

// CommunityID returns the hosting community identifier, empty when absent.
func (e Event) CommunityID() string { return e.communityID }
