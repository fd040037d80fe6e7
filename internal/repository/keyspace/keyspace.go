// Package keyspace names the Redis keys holding the candidate catalog.
//
//	<prefix>event:<id>                     hash   event fields
//	<prefix>events:by_start                zset   event id scored by unix start
//	<prefix>community:<id>                 hash   community fields
//	<prefix>communities:by_name            zset   "<lower name>\x00<id>", all scores 0
//	<prefix>community:<id>:event_starts    zset   event id scored by unix start
//	<prefix>meta:<name>                    string catalog metadata
package keyspace

import (
	"strings"

	"github.com/SrivastavaSrijan/rsvped-sub000/internal/domain"
)

// NameSeparator splits the sort name from the ID in by-name members.
const NameSeparator = "\x00"

// Keyspace builds keys under a common prefix.
type Keyspace struct {
	prefix string
}

// New creates a Keyspace. Empty prefix falls back to domain.DefaultKeyPrefix.
func New(prefix string) Keyspace {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return Keyspace{prefix: prefix}
}

// Prefix returns the namespace prefix, always ending in ':'.
func (k Keyspace) Prefix() string { return k.prefix }

// Event returns the hash key for an event.
func (k Keyspace) Event(id string) string { return k.prefix + "event:" + id }

// EventsByStart returns the event ordering index.
func (k Keyspace) EventsByStart() string { return k.prefix + "events:by_start" }

// Community returns the hash key for a community.
func (k Keyspace) Community(id string) string { return k.prefix + "community:" + id }

// CommunitiesByName returns the community ordering index.
func (k Keyspace) CommunitiesByName() string { return k.prefix + "communities:by_name" }

// CommunityEventStarts returns the per-community index of event start times.
func (k Keyspace) CommunityEventStarts(id string) string {
	return k.prefix + "community:" + id + ":event_starts"
}

// Meta returns a metadata key.
func (k Keyspace) Meta(name string) string { return k.prefix + "meta:" + name }

// All matches every key in the namespace.
func (k Keyspace) All() string { return k.prefix + "*" }

// NameMember encodes a community for the by-name index so that lexicographic
// order follows the lower-cased name, then the ID.
func NameMember(name, id string) string {
	return strings.ToLower(name) + NameSeparator + id
}

// IDFromNameMember decodes NameMember.
func IDFromNameMember(member string) string {
	if i := strings.LastIndex(member, NameSeparator); i >= 0 {
		return member[i+len(NameSeparator):]
	}
	return member
}
