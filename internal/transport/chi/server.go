package chi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain"
	domcomm "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/community"
	domevent "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/event"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/request"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/result"
	healthuc "github.com/SrivastavaSrijan/rsvped-sub000/internal/usecase/health"
)

// Searcher runs ranked searches and autocomplete.
type Searcher interface {
	SearchEvents(ctx context.Context, q request.Search) (result.Page[domevent.Event], error)
	SearchCommunities(ctx context.Context, q request.Search) (result.Page[domcomm.Community], error)
	Autocomplete(ctx context.Context, q request.Autocomplete) ([]result.Suggestion, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Limits are the request defaults applied when a parameter is omitted.
type Limits struct {
	DefaultPageSize     int
	MaxPageSize         int
	DefaultSuggestLimit int
}

// Server serves the search HTTP API.
type Server struct {
	search Searcher
	health HealthChecker
	limits Limits
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, health HealthChecker, limits Limits) *Server {
	if limits.DefaultPageSize <= 0 {
		limits.DefaultPageSize = request.DefaultPageSize
	}
	if limits.MaxPageSize <= 0 {
		limits.MaxPageSize = request.MaxPageSize
	}
	if limits.DefaultSuggestLimit <= 0 {
		limits.DefaultSuggestLimit = request.DefaultSuggestLimit
	}
	return &Server{search: search, health: health, limits: limits}
}

// SearchEvents handles GET /api/v1/search/events.
func (s *Server) SearchEvents(w http.ResponseWriter, r *http.Request) {
	q, err := s.searchRequest(r)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	page, err := s.search.SearchEvents(r.Context(), q)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPageResponse(page, eventHit))
}

// SearchCommunities handles GET /api/v1/search/communities.
func (s *Server) SearchCommunities(w http.ResponseWriter, r *http.Request) {
	q, err := s.searchRequest(r)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	page, err := s.search.SearchCommunities(r.Context(), q)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPageResponse(page, communityHit))
}

// Autocomplete handles GET /api/v1/search/autocomplete.
func (s *Server) Autocomplete(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	limit, err := intParam(params.Get("limit"), s.limits.DefaultSuggestLimit)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	q, err := request.NewAutocomplete(params.Get("q"), limit)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	suggestions, err := s.search.Autocomplete(r.Context(), q)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if suggestions == nil {
		suggestions = []result.Suggestion{}
	}

	writeJSON(w, http.StatusOK, SuggestionsResponse{Data: suggestions})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) searchRequest(r *http.Request) (request.Search, error) {
	params := r.URL.Query()
	page, err := intParam(params.Get("page"), 1)
	if err != nil {
		return request.Search{}, err
	}
	size, err := intParam(params.Get("size"), s.limits.DefaultPageSize)
	if err != nil {
		return request.Search{}, err
	}
	return request.NewSearchWithMax(
		params.Get("q"), page, size, params.Get("location_id"), s.limits.MaxPageSize,
	)
}

// intParam parses an optional integer query parameter.
func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidQuery, raw)
	}
	return n, nil
}
