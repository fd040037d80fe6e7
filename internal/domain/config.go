package domain

import "time"

// DefaultKeyPrefix namespaces every Redis key owned by the service.
const DefaultKeyPrefix = "rsvped:"

// RecentActivityWindow is how far back an event start still counts toward a
// community's recent event count.
const RecentActivityWindow = 30 * 24 * time.Hour
