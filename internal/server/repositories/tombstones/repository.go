// Package tombstones declares the repository contract for the server-side
// deletion ledger.
package tombstones

import (
	"context"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/server/models"
)

// Repository defines storage operations over a user's deletion ledger.
type Repository interface {
	// Upsert records a deletion. Repeating one refreshes its DeletedAt.
	Upsert(ctx context.Context, ts *models.Tombstone) error

	// List returns the user's tombstones, oldest first.
	List(ctx context.Context, userID string) ([]*models.Tombstone, error)

	// ListByType returns the user's tombstones of one entity type.
	ListByType(ctx context.Context, userID, entityType string) ([]*models.Tombstone, error)

	// Delete drops the tombstone for one entity, if any. Used when a fresh
	// write announces that the entity exists again.
	Delete(ctx context.Context, userID, entityID string) error

	// DeleteOlderThan drops tombstones recorded before the cutoff and
	// reports how many rows were removed.
	DeleteOlderThan(ctx context.Context, userID string, cutoff time.Time) (int64, error)
}
