// Package api defines the JSON wire types shared by the StoryKeeper backend
// and its clients. Entity payloads themselves travel as raw JSON documents;
// only the envelope shapes live here.
package api

import "time"

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Login    string `json:"login" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest exchanges credentials for a token pair.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest exchanges a refresh token for a fresh token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse carries an access/refresh token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ErrorResponse is the uniform error envelope for non-2xx replies.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SaveResponse reports whether an upserted document was applied or absorbed
// as stale.
type SaveResponse struct {
	Applied bool `json:"applied"`
}

// Tombstone mirrors the client-side deletion record at the remote boundary.
type Tombstone struct {
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	ProjectID  string    `json:"project_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// CleanupRequest asks the backend to drop tombstones older than the window.
type CleanupRequest struct {
	OlderThanDays int `json:"older_than_days" validate:"required,min=1"`
}

// CleanupResponse reports how many tombstones the cleanup removed.
type CleanupResponse struct {
	Removed int `json:"removed"`
}

// UploadURLResponse carries a presigned PUT target and the key to reference
// the stored object by.
type UploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// DownloadURLResponse carries a presigned GET URL for a stored object.
type DownloadURLResponse struct {
	URL string `json:"url"`
}

// ChangeEvent is broadcast over the websocket feed after a write lands, so a
// user's other devices can trigger a sync pass promptly.
type ChangeEvent struct {
	Action     string `json:"action"` // "saved" or "deleted"
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
}
