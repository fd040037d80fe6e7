package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domcomm "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/community"
	domevent "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/entity"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/match"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/request"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/result"
	healthuc "github.com/SrivastavaSrijan/rsvped-sub000/internal/usecase/health"
)

// --- Mocks ---

type mockSearcher struct {
	searchEventsFn      func(ctx context.Context, q request.Search) (result.Page[domevent.Event], error)
	searchCommunitiesFn func(ctx context.Context, q request.Search) (result.Page[domcomm.Community], error)
	autocompleteFn      func(ctx context.Context, q request.Autocomplete) ([]result.Suggestion, error)
}

func (m *mockSearcher) SearchEvents(ctx context.Context, q request.Search) (result.Page[domevent.Event], error) {
	return m.searchEventsFn(ctx, q)
}

func (m *mockSearcher) SearchCommunities(
	ctx context.Context, q request.Search,
) (result.Page[domcomm.Community], error) {
	return m.searchCommunitiesFn(ctx, q)
}

func (m *mockSearcher) Autocomplete(ctx context.Context, q request.Autocomplete) ([]result.Suggestion, error) {
	return m.autocompleteFn(ctx, q)
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

func newTestRouter(s Searcher, apiKeys ...string) http.Handler {
	h := &mockHealth{report: healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
	}}
	return NewRouter(NewServer(s, h, Limits{}), RouterConfig{APIKeys: apiKeys})
}

func do(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

var testStart = time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)

// --- Tests ---

func TestSearchEvents_OK(t *testing.T) {
	var got request.Search
	s := &mockSearcher{
		searchEventsFn: func(_ context.Context, q request.Search) (result.Page[domevent.Event], error) {
			got = q
			ev := domevent.Reconstruct("e1", "go-workshop", "Go Workshop", "", testStart, "berlin", "c1")
			return result.Page[domevent.Event]{
				Data: []result.Ranked[domevent.Event]{{
					Item:    ev,
					Matches: []match.Info{{Reason: "Exact title match", Field: match.FieldTitle, Type: match.Exact, Score: 1000}},
					Score:   2010,
					Query:   q.Text(),
				}},
				Pagination: result.NewMeta(1, q.Page(), q.Size()),
			}, nil
		},
	}

	rr := do(t, newTestRouter(s), "/api/v1/search/events?q=go+workshop&page=1&size=5&location_id=berlin")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if got.Text() != "go workshop" || got.Size() != 5 || got.UserLocationID() != "berlin" {
		t.Errorf("request = %q size=%d loc=%q", got.Text(), got.Size(), got.UserLocationID())
	}

	var body PageResponse[EventHit]
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 {
		t.Fatalf("data = %d", len(body.Data))
	}
	hit := body.Data[0]
	if hit.ID != "e1" || hit.Slug != "go-workshop" || hit.Score != 2010 || hit.Query != "go workshop" {
		t.Errorf("hit = %+v", hit)
	}
	if !hit.StartDate.Equal(testStart) {
		t.Errorf("startDate = %v", hit.StartDate)
	}
	if len(hit.Matches) != 1 || hit.Matches[0].Type != match.Exact {
		t.Errorf("matches = %+v", hit.Matches)
	}
	if body.Pagination.Total != 1 || body.Pagination.Size != 5 {
		t.Errorf("pagination = %+v", body.Pagination)
	}
}

func TestSearchEvents_DefaultSize(t *testing.T) {
	var got request.Search
	s := &mockSearcher{
		searchEventsFn: func(_ context.Context, q request.Search) (result.Page[domevent.Event], error) {
			got = q
			return result.Page[domevent.Event]{}, nil
		},
	}
	h := NewRouter(NewServer(s, &mockHealth{}, Limits{DefaultPageSize: 25, MaxPageSize: 50}), RouterConfig{})

	rr := do(t, h, "/api/v1/search/events?q=go")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got.Size() != 25 || got.Page() != 1 {
		t.Errorf("size = %d page = %d", got.Size(), got.Page())
	}
	if !strings.Contains(rr.Body.String(), `"data":[]`) {
		t.Errorf("empty data must encode as []: %s", rr.Body.String())
	}

	rr = do(t, h, "/api/v1/search/events?q=go&size=60")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("size above configured max: status = %d", rr.Code)
	}
}

func TestSearch_InvalidParams(t *testing.T) {
	s := &mockSearcher{
		searchEventsFn: func(context.Context, request.Search) (result.Page[domevent.Event], error) {
			t.Fatal("service must not be called")
			return result.Page[domevent.Event]{}, nil
		},
	}
	h := newTestRouter(s)

	for _, target := range []string{
		"/api/v1/search/events",
		"/api/v1/search/events?q=%20%20",
		"/api/v1/search/events?q=go&page=-1",
		"/api/v1/search/events?q=go&page=abc",
		"/api/v1/search/events?q=go&size=101",
	} {
		rr := do(t, h, target)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rr.Code)
			continue
		}
		var errResp ErrorResponse
		if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if errResp.Code != ErrorCodeInvalidQuery {
			t.Errorf("%s: code = %s", target, errResp.Code)
		}
	}
}

func TestSearchCommunities_StoreError(t *testing.T) {
	s := &mockSearcher{
		searchCommunitiesFn: func(context.Context, request.Search) (result.Page[domcomm.Community], error) {
			return result.Page[domcomm.Community]{}, errors.New("find communities: connection refused")
		},
	}

	rr := do(t, newTestRouter(s), "/api/v1/search/communities?q=go")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "connection refused") {
		t.Error("internal details leaked to client")
	}
}

func TestSearchCommunities_OK(t *testing.T) {
	s := &mockSearcher{
		searchCommunitiesFn: func(_ context.Context, q request.Search) (result.Page[domcomm.Community], error) {
			c := domcomm.Reconstruct("c1", "gophers", "Gophers", "Go people", 120, 3)
			return result.Page[domcomm.Community]{
				Data:       []result.Ranked[domcomm.Community]{{Item: c, Score: 42, Query: q.Text()}},
				Pagination: result.NewMeta(1, 1, q.Size()),
			}, nil
		},
	}

	rr := do(t, newTestRouter(s), "/api/v1/search/communities?q=gophers")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body PageResponse[CommunityHit]
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	hit := body.Data[0]
	if hit.Name != "Gophers" || hit.MemberCount != 120 || hit.RecentEventCount != 3 {
		t.Errorf("hit = %+v", hit)
	}
	if hit.Matches == nil {
		t.Error("matches must encode as [] not null")
	}
}

func TestAutocomplete(t *testing.T) {
	var got request.Autocomplete
	s := &mockSearcher{
		autocompleteFn: func(_ context.Context, q request.Autocomplete) ([]result.Suggestion, error) {
			got = q
			if q.IsBlank() {
				return nil, nil
			}
			return []result.Suggestion{{ID: "e1", Title: "Go Workshop", Slug: "go-workshop", Type: entity.Event, Score: 80}}, nil
		},
	}
	h := newTestRouter(s)

	rr := do(t, h, "/api/v1/search/autocomplete?q=go")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got.Limit() != request.DefaultSuggestLimit {
		t.Errorf("limit = %d", got.Limit())
	}
	var body SuggestionsResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].Type != entity.Event {
		t.Errorf("data = %+v", body.Data)
	}

	rr = do(t, h, "/api/v1/search/autocomplete?q=")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"data":[]`) {
		t.Errorf("blank query: %d %s", rr.Code, rr.Body.String())
	}

	for _, limit := range []string{"21", "-1", "x"} {
		rr = do(t, h, "/api/v1/search/autocomplete?q=go&limit="+limit)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: status = %d", limit, rr.Code)
		}
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		report healthuc.Report
		want   int
	}{
		{"healthy", healthuc.Report{Status: healthuc.Healthy, Checks: map[string]healthuc.CheckResult{}}, http.StatusOK},
		{"degraded", healthuc.Report{
			Status: healthuc.Degraded,
			Checks: map[string]healthuc.CheckResult{"catalog": healthuc.CheckEmpty},
		}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRouter(NewServer(&mockSearcher{}, &mockHealth{report: tt.report}, Limits{}),
				RouterConfig{APIKeys: []string{"secret"}})
			rr := do(t, h, "/health")
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
			var body HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != string(tt.report.Status) {
				t.Errorf("status = %q", body.Status)
			}
		})
	}
}

func TestRouter_AuthAndNotFound(t *testing.T) {
	h := newTestRouter(&mockSearcher{}, "secret")

	if rr := do(t, h, "/api/v1/search/events?q=go"); rr.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/nope", http.NoBody)
	req.Header.Set("Authorization", "Bearer secret")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown route: status = %d", rr.Code)
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	s := &mockSearcher{
		autocompleteFn: func(context.Context, request.Autocomplete) ([]result.Suggestion, error) {
			return nil, nil
		},
	}
	rr := do(t, newTestRouter(s), "/api/v1/search/autocomplete?q=go")
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := NewRouter(NewServer(&mockSearcher{}, &mockHealth{}, Limits{}), RouterConfig{
		APIKeys:     []string{"secret"},
		CORSOrigins: []string{"https://rsvped.example"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/search/autocomplete", http.NoBody)
	req.Header.Set("Origin", "https://rsvped.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://rsvped.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if rr.Code == http.StatusUnauthorized {
		t.Error("preflight must not require auth")
	}
}

func TestJSONRecoverer(t *testing.T) {
	s := &mockSearcher{
		autocompleteFn: func(context.Context, request.Autocomplete) ([]result.Suggestion, error) {
			panic("boom")
		},
	}
	rr := do(t, newTestRouter(s), "/api/v1/search/autocomplete?q=go")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errResp.Code != ErrorCodeInternal {
		t.Errorf("code = %s", errResp.Code)
	}
}
