package rsvped

import (
	"context"
	"fmt"
	"time"

	domcat "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/catalog"
	domcomm "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/community"
	domevent "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/entity"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/match"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/request"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/result"
)

// Query describes a ranked search. Zero Page and Size pick the defaults.
type Query struct {
	Text       string
	Page       int
	Size       int
	LocationID string
}

// Match explains part of a hit's score.
type Match = match.Info

// Pagination describes the returned page.
type Pagination = result.Meta

// Suggestion is an autocomplete hit.
type Suggestion = result.Suggestion

// Event is a searchable event.
type Event struct {
	ID          string
	Slug        string
	Title       string
	Description string
	StartDate   time.Time
	LocationID  string
	CommunityID string
}

// Community is a searchable community.
type Community struct {
	ID               string
	Slug             string
	Name             string
	Description      string
	MemberCount      int
	RecentEventCount int
}

// Hit is a ranked item with its score evidence.
type Hit[T any] struct {
	Item    T
	Matches []Match
	Score   float64
}

// Page is one page of ranked hits.
type Page[T any] struct {
	Hits       []Hit[T]
	Pagination Pagination
}

// ImportSummary reports an import run.
type ImportSummary struct {
	EventsImported      int
	CommunitiesImported int
	Removed             int
	Rejected            []ImportError
}

// ImportError describes one record that failed validation.
type ImportError struct {
	Kind  string
	Index int
	ID    string
	Err   error
}

// SearchEvents ranks events for q.
func (c *Client) SearchEvents(ctx context.Context, q Query) (Page[Event], error) {
	req, err := request.NewSearch(q.Text, q.Page, q.Size, q.LocationID)
	if err != nil {
		return Page[Event]{}, fmt.Errorf("search events: %w", err)
	}
	p, err := c.searchSvc.SearchEvents(ctx, req)
	if err != nil {
		return Page[Event]{}, fmt.Errorf("search events: %w", err)
	}
	return fromPage(p, fromEvent), nil
}

// SearchCommunities ranks communities for q. LocationID is ignored.
func (c *Client) SearchCommunities(ctx context.Context, q Query) (Page[Community], error) {
	req, err := request.NewSearch(q.Text, q.Page, q.Size, q.LocationID)
	if err != nil {
		return Page[Community]{}, fmt.Errorf("search communities: %w", err)
	}
	p, err := c.searchSvc.SearchCommunities(ctx, req)
	if err != nil {
		return Page[Community]{}, fmt.Errorf("search communities: %w", err)
	}
	return fromPage(p, fromCommunity), nil
}

// Autocomplete returns up to limit title/name suggestions. A zero limit picks the default.
func (c *Client) Autocomplete(ctx context.Context, text string, limit int) ([]Suggestion, error) {
	req, err := request.NewAutocomplete(text, limit)
	if err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}
	out, err := c.searchSvc.Autocomplete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}
	return out, nil
}

func fromPage[T, U any](p result.Page[T], conv func(T) U) Page[U] {
	hits := make([]Hit[U], len(p.Data))
	for i, r := range p.Data {
		hits[i] = Hit[U]{Item: conv(r.Item), Matches: r.Matches, Score: r.Score}
	}
	return Page[U]{Hits: hits, Pagination: p.Pagination}
}

func fromEvent(e domevent.Event) Event {
	return Event{
		ID:          e.ID(),
		Slug:        e.Slug(),
		Title:       e.Title(),
		Description: e.Description(),
		StartDate:   e.StartDate(),
		LocationID:  e.LocationID(),
		CommunityID: e.CommunityID(),
	}
}

func fromCommunity(c domcomm.Community) Community {
	return Community{
		ID:               c.ID(),
		Slug:             c.Slug(),
		Name:             c.Name(),
		Description:      c.Description(),
		MemberCount:      c.MemberCount(),
		RecentEventCount: c.RecentEventCount(),
	}
}

func fromSummary(s domcat.Summary) ImportSummary {
	out := ImportSummary{Removed: s.Removed}
	for _, o := range s.Outcomes {
		if o.Status() == domcat.StatusRejected {
			out.Rejected = append(out.Rejected, ImportError{
				Kind: string(o.Kind()), Index: o.Index(), ID: o.ID(), Err: o.Err(),
			})
			continue
		}
		switch o.Kind() {
		case entity.Event:
			out.EventsImported++
		case entity.Community:
			out.CommunitiesImported++
		}
	}
	return out
}
