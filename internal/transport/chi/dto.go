package chi

import (
	"time"

	domcomm "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/community"
	domevent "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/match"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/result"
)

// EventHit is one ranked event in a search response.
type EventHit struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	StartDate   time.Time    `json:"startDate"`
	LocationID  string       `json:"locationId,omitempty"`
	CommunityID string       `json:"communityId,omitempty"`
	Matches     []match.Info `json:"matches"`
	Score       float64      `json:"score"`
	Query       string       `json:"query"`
}

// CommunityHit is one ranked community in a search response.
type CommunityHit struct {
	ID               string       `json:"id"`
	Slug             string       `json:"slug"`
	Name             string       `json:"name"`
	Description      string       `json:"description,omitempty"`
	MemberCount      int          `json:"memberCount"`
	RecentEventCount int          `json:"recentEventCount"`
	Matches          []match.Info `json:"matches"`
	Score            float64      `json:"score"`
	Query            string       `json:"query"`
}

// PageResponse is a paginated search response.
type PageResponse[T any] struct {
	Data       []T         `json:"data"`
	Pagination result.Meta `json:"pagination"`
}

// SuggestionsResponse wraps autocomplete hits.
type SuggestionsResponse struct {
	Data []result.Suggestion `json:"data"`
}

// HealthResponse is the /health body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func eventHit(r result.Ranked[domevent.Event]) EventHit {
	e := r.Item
	return EventHit{
		ID:          e.ID(),
		Slug:        e.Slug(),
		Title:       e.Title(),
		Description: e.Description(),
		StartDate:   e.StartDate().UTC(),
		LocationID:  e.LocationID(),
		CommunityID: e.CommunityID(),
		Matches:     nonNilMatches(r.Matches),
		Score:       r.Score,
		Query:       r.Query,
	}
}

func communityHit(r result.Ranked[domcomm.Community]) CommunityHit {
	c := r.Item
	return CommunityHit{
		ID:               c.ID(),
		Slug:             c.Slug(),
		Name:             c.Name(),
		Description:      c.Description(),
		MemberCount:      c.MemberCount(),
		RecentEventCount: c.RecentEventCount(),
		Matches:          nonNilMatches(r.Matches),
		Score:            r.Score,
		Query:            r.Query,
	}
}

func toPageResponse[T, H any](p result.Page[T], conv func(result.Ranked[T]) H) PageResponse[H] {
	data := make([]H, len(p.Data))
	for i, r := range p.Data {
		data[i] = conv(r)
	}
	return PageResponse[H]{Data: data, Pagination: p.Pagination}
}

func nonNilMatches(m []match.Info) []match.Info {
	if m == nil {
		return []match.Info{}
	}
	return m
}
