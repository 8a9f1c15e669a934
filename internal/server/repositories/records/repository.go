// Package records declares the repository contract for synchronized entity
// documents.
package records

import (
	"context"

	"github.com/dmitrijs2005/storykeeper/internal/server/models"
)

// Repository defines storage operations over a user's entity documents.
type Repository interface {
	// Upsert inserts or replaces a record. A replace only happens when the
	// incoming document is at least as recent as the stored one; Upsert
	// reports whether the write was applied.
	Upsert(ctx context.Context, rec *models.Record) (bool, error)

	// Get returns one record, or common.ErrorNotFound.
	Get(ctx context.Context, userID, entityType, entityID string) (*models.Record, error)

	// List returns every record of one type owned by the user.
	List(ctx context.Context, userID, entityType string) ([]*models.Record, error)

	// ListByProject returns the user's records of one type within a project.
	ListByProject(ctx context.Context, userID, entityType, projectID string) ([]*models.Record, error)

	// ListByIDs returns the subset of the given ids that exist. Unknown ids
	// are skipped, not errors.
	ListByIDs(ctx context.Context, userID, entityType string, ids []string) ([]*models.Record, error)

	// Delete removes one record and reports whether a row existed.
	Delete(ctx context.Context, userID, entityType, entityID string) (bool, error)
}
