// Package tombstones provides PostgreSQL-backed storage for the server-side
// deletion ledger consumed by syncing clients.
package tombstones

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/dbx"
	"github.com/dmitrijs2005/storykeeper/internal/server/models"
)

// PostgresRepository implements tombstone storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert records a deletion, refreshing DeletedAt on repeats.
func (r *PostgresRepository) Upsert(ctx context.Context, ts *models.Tombstone) error {
	query := `
		INSERT INTO tombstones (user_id, entity_type, entity_id, project_id, deleted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, entity_type, entity_id)
		DO UPDATE SET
			project_id = EXCLUDED.project_id,
			deleted_at = EXCLUDED.deleted_at
	`
	if _, err := r.db.ExecContext(ctx, query,
		ts.UserID, ts.EntityType, ts.EntityID, ts.ProjectID, ts.DeletedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// List returns the user's tombstones, oldest first.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Tombstone, error) {
	query := `
		SELECT entity_type, entity_id, project_id, deleted_at
		FROM tombstones
		WHERE user_id = $1
		ORDER BY deleted_at
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.collect(rows, userID)
}

// ListByType returns the user's tombstones of one entity type, oldest first.
func (r *PostgresRepository) ListByType(ctx context.Context, userID, entityType string) ([]*models.Tombstone, error) {
	query := `
		SELECT entity_type, entity_id, project_id, deleted_at
		FROM tombstones
		WHERE user_id = $1 AND entity_type = $2
		ORDER BY deleted_at
	`
	rows, err := r.db.QueryContext(ctx, query, userID, entityType)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.collect(rows, userID)
}

// Delete drops the tombstone for one entity id, across entity types.
func (r *PostgresRepository) Delete(ctx context.Context, userID, entityID string) error {
	query := `
		DELETE FROM tombstones
		WHERE user_id = $1 AND entity_id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, userID, entityID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteOlderThan drops tombstones recorded before the cutoff.
func (r *PostgresRepository) DeleteOlderThan(ctx context.Context, userID string, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM tombstones
		WHERE user_id = $1 AND deleted_at < $2
	`
	res, err := r.db.ExecContext(ctx, query, userID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) collect(rows *sql.Rows, userID string) ([]*models.Tombstone, error) {
	defer rows.Close()

	var result []*models.Tombstone
	for rows.Next() {
		item := models.Tombstone{UserID: userID}
		if err := rows.Scan(&item.EntityType, &item.EntityID, &item.ProjectID, &item.DeletedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
