// Package models defines the client-side entity types of a StoryKeeper
// workspace and the small capability interfaces the sync core is
// parameterized over. The core never looks past those interfaces: entity
// payloads are opaque to it.
package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/common"
)

// EntityType names one of the synchronized record kinds.
type EntityType string

const (
	EntityTypeProject      EntityType = "project"
	EntityTypeChapter      EntityType = "chapter"
	EntityTypeCharacter    EntityType = "character"
	EntityTypeLocation     EntityType = "location"
	EntityTypeOrganization EntityType = "organization"
	EntityTypeNote         EntityType = "note"
	EntityTypeImage        EntityType = "image"
	EntityTypeAudioTrack   EntityType = "audiotrack"
	EntityTypePlaylist     EntityType = "playlist"
)

// AllEntityTypes returns every synchronized type, projects first so that a
// pass over the list touches owners before their children.
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypeProject,
		EntityTypeChapter,
		EntityTypeCharacter,
		EntityTypeLocation,
		EntityTypeOrganization,
		EntityTypeNote,
		EntityTypeImage,
		EntityTypeAudioTrack,
		EntityTypePlaylist,
	}
}

// ParseEntityType maps a wire/user string to an EntityType.
func ParseEntityType(s string) (EntityType, error) {
	et := EntityType(s)
	for _, known := range AllEntityTypes() {
		if et == known {
			return et, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownEntityType, s)
}

// HasID is the minimal identity capability of a synchronized record.
type HasID interface {
	GetID() string
}

// HasUpdatedAt is the minimal recency capability of a synchronized record.
type HasUpdatedAt interface {
	GetUpdatedAt() time.Time
}

// Entity is the full contract the dual-store machinery requires: identity,
// recency, the owning project scope, and a way to refresh the modification
// timestamp on writes.
type Entity interface {
	HasID
	HasUpdatedAt
	GetProjectID() string
	Touch(now time.Time)
}

// HasAssetRef is implemented by entities that reference a binary payload in
// object storage. Repositories rewrite the reference to a local address
// when the payload is cached on disk.
type HasAssetRef interface {
	AssetRef() string
	SetAssetRef(ref string)
}

// Meta is the identity/recency header embedded by every entity.
type Meta struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Meta) GetID() string { return m.ID }

func (m *Meta) GetUpdatedAt() time.Time { return m.UpdatedAt }

// Touch refreshes the modification timestamp. Stored in UTC so recency
// comparison is clock-zone independent.
func (m *Meta) Touch(now time.Time) { m.UpdatedAt = now.UTC() }

// Doc extends Meta with the owning project reference shared by every
// project-scoped entity.
type Doc struct {
	Meta
	ProjectID string `json:"projectId"`
}

func (d *Doc) GetProjectID() string { return d.ProjectID }
