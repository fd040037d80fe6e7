package search

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/community"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/entity"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/filter"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/match"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/request"
)

// --- Mocks ---

type mockEvents struct {
	events   []event.Event
	err      error
	called   bool
	lastTake int
	lastPred filter.Predicate
}

func (m *mockEvents) FindEvents(_ context.Context, pred filter.Predicate, take int) ([]event.Event, error) {
	m.called = true
	m.lastTake = take
	m.lastPred = pred
	return m.events, m.err
}

type mockCommunities struct {
	communities []community.Community
	err         error
	called      bool
	lastTake    int
	lastPred    filter.Predicate
}

func (m *mockCommunities) FindCommunities(
	_ context.Context, pred filter.Predicate, take int,
) ([]community.Community, error) {
	m.called = true
	m.lastTake = take
	m.lastPred = pred
	return m.communities, m.err
}

// --- Helpers ---

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// pastEvent starts well before fixedNow so recency never contributes.
func pastEvent(id, title string) event.Event {
	return event.Reconstruct(id, id, title, "", fixedNow.AddDate(-1, 0, 0), "", "")
}

func mustSearch(t *testing.T, text string, page, size int, loc string) request.Search {
	t.Helper()
	q, err := request.NewSearch(text, page, size, loc)
	if err != nil {
		t.Fatalf("NewSearch: %v", err)
	}
	return q
}

func mustAutocomplete(t *testing.T, text string, limit int) request.Autocomplete {
	t.Helper()
	q, err := request.NewAutocomplete(text, limit)
	if err != nil {
		t.Fatalf("NewAutocomplete: %v", err)
	}
	return q
}

func ids(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
}

// --- SearchEvents ---

func TestSearchEvents_GateFiltersAndRanks(t *testing.T) {
	events := &mockEvents{events: []event.Event{
		pastEvent("e3", "Weekly go hack night"),
		pastEvent("e2", "Pottery class"),
		pastEvent("e1", "Go Meetup"),
	}}
	svc := New(events, &mockCommunities{}, WithClock(fixedClock))

	page, err := svc.SearchEvents(context.Background(), mustSearch(t, "go", 1, 10, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, r := range page.Data {
		got = append(got, r.Item.ID())
	}
	ids(t, got, "e1", "e3")

	// "go meetup": phrase 500 + word 200 + leading prefix 300, doubled for title
	if page.Data[0].Score != 2000 {
		t.Errorf("top score = %f, want 2000", page.Data[0].Score)
	}
	if page.Data[1].Score != 1400 {
		t.Errorf("second score = %f, want 1400", page.Data[1].Score)
	}
	if page.Data[0].Query != "go" {
		t.Errorf("Query = %q", page.Data[0].Query)
	}
	if page.Pagination.Total != 2 {
		t.Errorf("Total = %d, want post-gate count 2", page.Pagination.Total)
	}
	for _, r := range page.Data {
		sum := match.Sum(r.Matches)
		if sum != r.Score {
			t.Errorf("%s: sum of matches %f != score %f", r.Item.ID(), sum, r.Score)
		}
	}
}

func TestSearchEvents_PredicateTargetsTitleAndDescription(t *testing.T) {
	events := &mockEvents{}
	svc := New(events, &mockCommunities{})

	if _, err := svc.SearchEvents(context.Background(), mustSearch(t, "go", 1, 10, "")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields := events.lastPred.Fields()
	if len(fields) != 2 || fields[0] != match.FieldTitle || fields[1] != match.FieldDescription {
		t.Errorf("predicate fields = %v", fields)
	}
}

func TestSearchEvents_DeterministicTieOrder(t *testing.T) {
	events := &mockEvents{events: []event.Event{
		pastEvent("b", "Go Night"),
		pastEvent("a", "Go Night"),
		pastEvent("c", "Go Night"),
	}}
	svc := New(events, &mockCommunities{}, WithClock(fixedClock))
	q := mustSearch(t, "go", 1, 10, "")

	for run := 0; run < 2; run++ {
		page, err := svc.SearchEvents(context.Background(), q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got []string
		for _, r := range page.Data {
			got = append(got, r.Item.ID())
		}
		ids(t, got, "b", "a", "c")
	}
}

func TestSearchEvents_Pagination(t *testing.T) {
	var evs []event.Event
	for i := range 12 {
		evs = append(evs, pastEvent(fmt.Sprintf("e%02d", i), "Go Night"))
	}
	svc := New(&mockEvents{events: evs}, &mockCommunities{}, WithClock(fixedClock))

	tests := []struct {
		page, size  int
		wantLen     int
		wantPages   int
		wantMore    bool
		wantPrev    bool
		wantFirstID string
	}{
		{1, 5, 5, 3, true, false, "e00"},
		{2, 5, 5, 3, true, true, "e05"},
		{3, 5, 2, 3, false, true, "e10"},
		{4, 5, 0, 3, false, true, ""},
		{1, 20, 12, 1, false, false, "e00"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page=%d size=%d", tt.page, tt.size), func(t *testing.T) {
			page, err := svc.SearchEvents(context.Background(), mustSearch(t, "go", tt.page, tt.size, ""))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(page.Data) != tt.wantLen {
				t.Fatalf("len(Data) = %d, want %d", len(page.Data), tt.wantLen)
			}
			if len(page.Data) > tt.size {
				t.Errorf("len(Data) %d exceeds size %d", len(page.Data), tt.size)
			}
			m := page.Pagination
			if m.Total != 12 || m.TotalPages != tt.wantPages {
				t.Errorf("total/pages = %d/%d", m.Total, m.TotalPages)
			}
			if m.HasMore != tt.wantMore || m.HasMore != (m.Page < m.TotalPages) {
				t.Errorf("HasMore = %v", m.HasMore)
			}
			if m.HasPrevious != tt.wantPrev {
				t.Errorf("HasPrevious = %v", m.HasPrevious)
			}
			if tt.wantLen > 0 && page.Data[0].Item.ID() != tt.wantFirstID {
				t.Errorf("first = %s, want %s", page.Data[0].Item.ID(), tt.wantFirstID)
			}
		})
	}
}

func TestSearchEvents_SamplingBound(t *testing.T) {
	tests := []struct {
		size     int
		wantTake int
	}{
		{1, 1000},
		{5, 1000},
		{6, 60},
		{20, 200},
		{50, 500},
		{100, 500},
	}
	for _, tt := range tests {
		events := &mockEvents{}
		svc := New(events, &mockCommunities{})
		if _, err := svc.SearchEvents(context.Background(), mustSearch(t, "go", 1, tt.size, "")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if events.lastTake != tt.wantTake {
			t.Errorf("size %d: take = %d, want %d", tt.size, events.lastTake, tt.wantTake)
		}
	}
}

func TestSearchEvents_TruncatesOversizedSample(t *testing.T) {
	var evs []event.Event
	for i := range 5 {
		evs = append(evs, pastEvent(fmt.Sprint(i), "Go Night"))
	}
	svc := New(&mockEvents{events: evs}, &mockCommunities{},
		WithSamplePolicy(func(int) int { return 2 }))

	page, err := svc.SearchEvents(context.Background(), mustSearch(t, "go", 1, 10, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Pagination.Total != 2 {
		t.Errorf("Total = %d, want 2", page.Pagination.Total)
	}
}

func TestSearchEvents_LocationAndRecency(t *testing.T) {
	soon := event.Reconstruct("e1", "e1", "Go Meetup", "", fixedNow.Add(10*24*time.Hour), "berlin", "")
	svc := New(&mockEvents{events: []event.Event{soon}}, &mockCommunities{}, WithClock(fixedClock))

	page, err := svc.SearchEvents(context.Background(), mustSearch(t, "go", 1, 10, "berlin"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 2000 text + (30-10) recency + 10 location
	if page.Data[0].Score != 2030 {
		t.Errorf("score = %f, want 2030", page.Data[0].Score)
	}
}

func TestSearchEvents_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := New(&mockEvents{err: storeErr}, &mockCommunities{})

	_, err := svc.SearchEvents(context.Background(), mustSearch(t, "go", 1, 10, ""))
	if !errors.Is(err, storeErr) {
		t.Fatalf("error = %v, want wrapped store error", err)
	}
}

// --- SearchCommunities ---

func TestSearchCommunities_ActivityBreaksTextTie(t *testing.T) {
	comms := &mockCommunities{communities: []community.Community{
		community.Reconstruct("c1", "go-berlin", "Go Berlin", "", 0, 0),
		community.Reconstruct("c2", "go-paris", "Go Paris", "", 50, 2),
		community.Reconstruct("c3", "knitting", "Knitting Circle", "", 500, 9),
	}}
	svc := New(&mockEvents{}, comms)

	page, err := svc.SearchCommunities(context.Background(), mustSearch(t, "go", 1, 10, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, r := range page.Data {
		got = append(got, r.Item.ID())
	}
	ids(t, got, "c2", "c1")

	fields := comms.lastPred.Fields()
	if len(fields) != 2 || fields[0] != match.FieldName {
		t.Errorf("predicate fields = %v", fields)
	}
}

func TestSearchCommunities_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("timeout")
	svc := New(&mockEvents{}, &mockCommunities{err: storeErr})

	_, err := svc.SearchCommunities(context.Background(), mustSearch(t, "go", 1, 10, ""))
	if !errors.Is(err, storeErr) {
		t.Fatalf("error = %v, want wrapped store error", err)
	}
}

// --- Autocomplete ---

func TestAutocomplete_BlankSkipsStore(t *testing.T) {
	events := &mockEvents{}
	comms := &mockCommunities{}
	svc := New(events, comms)

	got, err := svc.Autocomplete(context.Background(), mustAutocomplete(t, "   ", 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("suggestions = %v, want empty non-nil", got)
	}
	if events.called || comms.called {
		t.Error("store must not be contacted for a blank query")
	}
}

func TestAutocomplete_MergesAndTruncates(t *testing.T) {
	events := &mockEvents{events: []event.Event{
		pastEvent("e1", "Go Conference"),
		pastEvent("e2", "Let's Go Bowling"),
	}}
	comms := &mockCommunities{communities: []community.Community{
		community.Reconstruct("c1", "go", "Go", "", 0, 0),
		community.Reconstruct("c2", "golang-berlin", "Golang Berlin", "", 0, 0),
	}}
	svc := New(events, comms)

	got, err := svc.Autocomplete(context.Background(), mustAutocomplete(t, "Go", 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if events.lastTake != 6 || comms.lastTake != 6 {
		t.Errorf("take = %d/%d, want 6/6", events.lastTake, comms.lastTake)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	want := []struct {
		id    string
		kind  entity.Kind
		score float64
	}{
		{"c1", entity.Community, SuggestExact},
		{"e1", entity.Event, SuggestPrefix},
		{"c2", entity.Community, SuggestPrefix},
	}
	for i, w := range want {
		if got[i].ID != w.id || got[i].Type != w.kind || got[i].Score != w.score {
			t.Errorf("[%d] = %+v, want %s/%s/%v", i, got[i], w.id, w.kind, w.score)
		}
	}
	if got[0].Slug != "go" || got[0].Title != "Go" {
		t.Errorf("suggestion fields = %+v", got[0])
	}
}

func TestAutocomplete_PredicateIsTitleOrNameOnly(t *testing.T) {
	events := &mockEvents{}
	comms := &mockCommunities{}
	svc := New(events, comms)

	if _, err := svc.Autocomplete(context.Background(), mustAutocomplete(t, "go", 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev := events.lastPred.Clauses()
	if len(ev) != 1 || ev[0].Field() != match.FieldTitle || ev[0].Op() != filter.Contains {
		t.Errorf("event predicate = %+v", ev)
	}
	cm := comms.lastPred.Clauses()
	if len(cm) != 1 || cm[0].Field() != match.FieldName {
		t.Errorf("community predicate = %+v", cm)
	}
	if events.lastTake != request.DefaultSuggestLimit*2 {
		t.Errorf("take = %d", events.lastTake)
	}
}

func TestAutocomplete_EitherFailureFails(t *testing.T) {
	storeErr := errors.New("boom")

	tests := []struct {
		name   string
		events *mockEvents
		comms  *mockCommunities
	}{
		{"events fail", &mockEvents{err: storeErr}, &mockCommunities{}},
		{"communities fail", &mockEvents{}, &mockCommunities{err: storeErr}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(tt.events, tt.comms)
			got, err := svc.Autocomplete(context.Background(), mustAutocomplete(t, "go", 5))
			if !errors.Is(err, storeErr) {
				t.Fatalf("error = %v, want wrapped store error", err)
			}
			if got != nil {
				t.Errorf("suggestions = %v, want nil on failure", got)
			}
		})
	}
}
