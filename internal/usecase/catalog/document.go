package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain"
)

// Document is the on-disk catalog format.
type Document struct {
	Communities []CommunityRecord `yaml:"communities"`
	Events      []EventRecord     `yaml:"events"`
}

// CommunityRecord is one community in a catalog file.
type CommunityRecord struct {
	ID          string `yaml:"id"`
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	MemberCount int    `yaml:"member_count"`
}

// EventRecord is one event in a catalog file.
type EventRecord struct {
	ID          string    `yaml:"id"`
	Slug        string    `yaml:"slug"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	StartDate   time.Time `yaml:"start_date"`
	LocationID  string    `yaml:"location_id"`
	CommunityID string    `yaml:"community_id"`
}

// Parse decodes a YAML catalog. Unknown fields are rejected.
func Parse(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, err)
	}
	return doc, nil
}

// Slugify lower-cases s and joins its letter and digit runs with '-'.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	return b.String()
}
