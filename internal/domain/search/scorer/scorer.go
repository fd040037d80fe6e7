// Package scorer combines field analyses with domain signals into a single
// ranking score per candidate.
package scorer

import (
	"fmt"
	"math"
	"time"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/community"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/analyzer"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/match"
)

// Weights and boosts.
const (
	// PrimaryFieldWeight multiplies the title (events) or name (communities) analysis.
	PrimaryFieldWeight = 2
	RecencyWindowDays  = 30
	LocationBoost      = 10
	MemberWeight       = 2
	RecentEventWeight  = 3
	// popularMembers is the member count above which the popularity note is attached.
	popularMembers = 10
)

// Score is the outcome of scoring one candidate.
// Total is always Text + Secondary and Matches is sorted by score descending.
type Score struct {
	Text      float64
	Secondary float64
	Total     float64
	Matches   []match.Info
}

// Event scores an event for query. userLocationID may be empty.
func Event(ev event.Event, query, userLocationID string, now time.Time) Score {
	title := analyzer.Analyze(ev.Title(), query, match.FieldTitle)
	desc := analyzer.Analyze(ev.Description(), query, match.FieldDescription)
	text := PrimaryFieldWeight*title.Score() + desc.Score()

	var signals []match.Info

	recency := 0.0
	days := DaysUntil(ev.StartDate(), now)
	if days > 0 && days <= RecencyWindowDays {
		recency = float64(RecencyWindowDays - days)
	}
	if recency > 0 {
		signals = append(signals, match.Info{
			Reason: fmt.Sprintf("Upcoming event (%d days away)", days),
			Field:  match.FieldStartDate,
			Type:   match.Signal,
			Text:   ev.StartDate().Format(time.DateOnly),
			Score:  recency,
		})
	}

	location := 0.0
	if userLocationID != "" && userLocationID == ev.LocationID() {
		location = LocationBoost
		signals = append(signals, match.Info{
			Reason: "Event near your location",
			Field:  match.FieldLocation,
			Type:   match.Signal,
			Text:   ev.LocationID(),
			Score:  location,
		})
	}

	secondary := recency + location
	return Score{
		Text:      text,
		Secondary: secondary,
		Total:     text + secondary,
		Matches: match.Merge(
			match.Scale(title.Matches(), PrimaryFieldWeight),
			desc.Matches(),
			signals,
		),
	}
}

// Community scores a community for query.
func Community(c community.Community, query string) Score {
	name := analyzer.Analyze(c.Name(), query, match.FieldName)
	desc := analyzer.Analyze(c.Description(), query, match.FieldDescription)
	text := PrimaryFieldWeight*name.Score() + desc.Score()

	var signals []match.Info

	members := math.Log(float64(c.MemberCount()+1)) * MemberWeight
	if c.MemberCount() > popularMembers {
		signals = append(signals, match.Info{
			Reason: fmt.Sprintf("Popular community (%d members)", c.MemberCount()),
			Field:  match.FieldMemberCount,
			Type:   match.Signal,
			Text:   fmt.Sprint(c.MemberCount()),
			Score:  members,
		})
	}

	recent := float64(c.RecentEventCount() * RecentEventWeight)
	if c.RecentEventCount() > 0 {
		signals = append(signals, match.Info{
			Reason: fmt.Sprintf("Active community (%d recent events)", c.RecentEventCount()),
			Field:  match.FieldRecentEvents,
			Type:   match.Signal,
			Text:   fmt.Sprint(c.RecentEventCount()),
			Score:  recent,
		})
	}

	activity := members + recent
	return Score{
		Text:      text,
		Secondary: activity,
		Total:     text + activity,
		Matches: match.Merge(
			match.Scale(name.Matches(), PrimaryFieldWeight),
			desc.Matches(),
			signals,
		),
	}
}

// DaysUntil returns the number of whole days from now until t, rounded up.
// Past instants yield zero or a negative number.
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}
