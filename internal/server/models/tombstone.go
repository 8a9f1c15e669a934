package models

import "time"

// Tombstone marks a deletion so that a user's other devices apply it during
// their next sync pass. One row per deleted entity, keyed by
// (user, entity type, entity id); repeating a deletion refreshes DeletedAt.
type Tombstone struct {
	UserID     string
	EntityType string
	EntityID   string
	ProjectID  string
	DeletedAt  time.Time
}
