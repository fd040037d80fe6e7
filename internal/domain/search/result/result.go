// Package result holds ranked search output and pagination metadata.
package result

import (
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/entity"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/match"
)

// Meta describes one page of a ranked result set. Total is the number of
// candidates that survived the relevance gate within the sampled window.
type Meta struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Size        int  `json:"size"`
	TotalPages  int  `json:"totalPages"`
	HasMore     bool `json:"hasMore"`
	HasPrevious bool `json:"hasPrevious"`
}

// NewMeta computes pagination metadata.
func NewMeta(total, page, size int) Meta {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return Meta{
		Total:       total,
		Page:        page,
		Size:        size,
		TotalPages:  pages,
		HasMore:     page < pages,
		HasPrevious: page > 1,
	}
}

// Ranked is a candidate with the evidence behind its score.
type Ranked[T any] struct {
	Item    T
	Matches []match.Info
	Score   float64
	Query   string
}

// Page is one slice of a ranked result set.
type Page[T any] struct {
	Data       []Ranked[T]
	Pagination Meta
}

// Suggestion is a lightweight autocomplete hit.
type Suggestion struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Slug  string      `json:"slug"`
	Type  entity.Kind `json:"type"`
	Score float64     `json:"score"`
}
