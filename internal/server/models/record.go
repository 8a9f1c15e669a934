package models

import "time"

// Record is one synchronized entity document as the backend stores it. The
// payload stays an opaque JSON document; ProjectID and UpdatedAt are lifted
// out of it so listing and recency comparison can run in SQL.
type Record struct {
	UserID     string
	EntityType string
	EntityID   string
	ProjectID  string
	Doc        []byte
	UpdatedAt  time.Time
}
