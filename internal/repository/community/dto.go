package community

import (
	"fmt"
	"strconv"

	domcomm "github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/community"
	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain/search/match"
)

// Hash field names.
const (
	fieldID          = "id"
	fieldSlug        = "slug"
	fieldName        = "name"
	fieldDescription = "description"
	fieldMemberCount = "member_count"
)

// buildHashFields converts a domain Community into a flat map for HSET.
// RecentEventCount is derived at read time and not stored.
func buildHashFields(c domcomm.Community) map[string]string {
	return map[string]string{
		fieldID:          c.ID(),
		fieldSlug:        c.Slug(),
		fieldName:        c.Name(),
		fieldDescription: c.Description(),
		fieldMemberCount: strconv.Itoa(c.MemberCount()),
	}
}

// parseHashFields converts a flat hash back into a domain Community.
func parseHashFields(id string, m map[string]string) (domcomm.Community, error) {
	members := 0
	if v := m[fieldMemberCount]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domcomm.Community{}, fmt.Errorf("community %s: parse member count: %w", id, err)
		}
		members = n
	}
	return domcomm.Reconstruct(id, m[fieldSlug], m[fieldName], m[fieldDescription], members, 0), nil
}

// predicateValues exposes the filterable fields of a community.
func predicateValues(c domcomm.Community) map[match.Field]string {
	return map[match.Field]string{
		match.FieldName:        c.Name(),
		match.FieldDescription: c.Description(),
	}
}
