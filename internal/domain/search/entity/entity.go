package entity

// Kind is the type of searchable record.
type Kind string

// Entity kind constants.
const (
	Event     Kind = "event"
	Community Kind = "community"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Event || k == Community
}

// Parse accepts singular or plural names ("events", "community", ...).
func Parse(s string) (Kind, bool) {
	switch s {
	case "event", "events":
		return Event, true
	case "community", "communities":
		return Community, true
	}
	return "", false
}
