package request

import (
	"fmt"
	"strings"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength  = 512
	DefaultPageSize = 10
	MaxPageSize     = 100

	DefaultSuggestLimit = 8
	MaxSuggestLimit     = 20
)

// Search is a validated full search query.
type Search struct {
	text           string
	page           int
	size           int
	userLocationID string
}

// NewSearch validates search parameters. A zero page or size picks the
// default; anything else out of range is rejected.
func NewSearch(text string, page, size int, userLocationID string) (Search, error) {
	return NewSearchWithMax(text, page, size, userLocationID, MaxPageSize)
}

// NewSearchWithMax is NewSearch with a caller-supplied page size ceiling.
func NewSearchWithMax(text string, page, size int, userLocationID string, maxSize int) (Search, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Search{}, fmt.Errorf("%w: query is required", domain.ErrInvalidQuery)
	}
	if len(text) > MaxQueryLength {
		return Search{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return Search{}, fmt.Errorf("%w: page must be >= 1", domain.ErrInvalidQuery)
	}
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	if size == 0 {
		size = min(DefaultPageSize, maxSize)
	}
	if size < 1 || size > maxSize {
		return Search{}, fmt.Errorf("%w: size must be between 1 and %d", domain.ErrInvalidQuery, maxSize)
	}

	return Search{
		text:           text,
		page:           page,
		size:           size,
		userLocationID: strings.TrimSpace(userLocationID),
	}, nil
}

// Text returns the trimmed query text.
func (s Search) Text() string { return s.text }

// Page returns the 1-based page number.
func (s Search) Page() int { return s.page }

// Size returns the page size.
func (s Search) Size() int { return s.size }

// Skip returns the number of ranked results before this page.
func (s Search) Skip() int { return (s.page - 1) * s.size }

// UserLocationID returns the caller's location, empty when unknown.
func (s Search) UserLocationID() string { return s.userLocationID }

// Autocomplete is a validated suggestion query. A blank text is allowed and
// yields no suggestions.
type Autocomplete struct {
	text  string
	limit int
}

// NewAutocomplete validates suggestion parameters. Zero limit picks the default.
func NewAutocomplete(text string, limit int) (Autocomplete, error) {
	text = strings.TrimSpace(text)
	if len(text) > MaxQueryLength {
		return Autocomplete{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if limit == 0 {
		limit = DefaultSuggestLimit
	}
	if limit < 1 || limit > MaxSuggestLimit {
		return Autocomplete{}, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidQuery, MaxSuggestLimit)
	}
	return Autocomplete{text: text, limit: limit}, nil
}

// Text returns the trimmed query text.
func (a Autocomplete) Text() string { return a.text }

// Limit returns the maximum number of suggestions.
func (a Autocomplete) Limit() int { return a.limit }

// IsBlank reports whether there is nothing to suggest for.
func (a Autocomplete) IsBlank() bool { return a.text == "" }
