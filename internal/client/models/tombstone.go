package models

import "time"

// Tombstone records a local delete whose remote half has not been confirmed
// yet. It is kept in the deletion log until the remote delete succeeds or
// the retention window expires.
type Tombstone struct {
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`
	ProjectID  string     `json:"projectId"`
	Timestamp  time.Time  `json:"timestamp"`
}

// OlderThan reports whether the tombstone was written before the cutoff.
func (t Tombstone) OlderThan(cutoff time.Time) bool {
	return t.Timestamp.Before(cutoff)
}
