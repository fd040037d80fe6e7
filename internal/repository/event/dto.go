package event

import (
	"fmt"
	"time"

	domevent "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/match"
)

// Hash field names.
const (
	fieldID          = "id"
	fieldSlug        = "slug"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldStartDate   = "start_date"
	fieldLocationID  = "location_id"
	fieldCommunityID = "community_id"
)

// buildHashFields converts a domain Event into a flat map for HSET.
func buildHashFields(e domevent.Event) map[string]string {
	return map[string]string{
		fieldID:          e.ID(),
		fieldSlug:        e.Slug(),
		fieldTitle:       e.Title(),
		fieldDescription: e.Description(),
		fieldStartDate:   e.StartDate().UTC().Format(time.RFC3339Nano),
		fieldLocationID:  e.LocationID(),
		fieldCommunityID: e.CommunityID(),
	}
}

// parseHashFields converts a flat hash back into a domain Event.
func parseHashFields(id string, m map[string]string) (domevent.Event, error) {
	start, err := time.Parse(time.RFC3339Nano, m[fieldStartDate])
	if err != nil {
		return domevent.Event{}, fmt.Errorf("event %s: parse start date: %w", id, err)
	}
	return domevent.Reconstruct(
		id, m[fieldSlug], m[fieldTitle], m[fieldDescription],
		start, m[fieldLocationID], m[fieldCommunityID],
	), nil
}

// predicateValues exposes the filterable fields of an event.
func predicateValues(e domevent.Event) map[match.Field]string {
	return map[match.Field]string{
		match.FieldTitle:       e.Title(),
		match.FieldDescription: e.Description(),
	}
}
