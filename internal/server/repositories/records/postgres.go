// Package records provides PostgreSQL-backed storage for synchronized entity
// documents. Documents are stored as opaque jsonb; recency lives in a lifted
// updated_at column so stale writes can be rejected in SQL.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/dbx"
	"github.com/dmitrijs2005/storykeeper/internal/server/models"
)

// PostgresRepository implements record storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert stores a record unless the stored copy is strictly newer. Equal
// timestamps accept the write, so replaying an unchanged document stays
// idempotent. Returns whether the row was written.
func (r *PostgresRepository) Upsert(ctx context.Context, rec *models.Record) (bool, error) {
	query := `
		INSERT INTO records (user_id, entity_type, entity_id, project_id, doc, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, entity_type, entity_id)
		DO UPDATE SET
			project_id = EXCLUDED.project_id,
			doc = EXCLUDED.doc,
			updated_at = EXCLUDED.updated_at
			WHERE records.updated_at <= EXCLUDED.updated_at
	`
	res, err := r.db.ExecContext(ctx, query,
		rec.UserID, rec.EntityType, rec.EntityID, rec.ProjectID, rec.Doc, rec.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return true, nil
	case 0:
		// the stored document is newer; keeping it is the correct outcome
		return false, nil
	default:
		return false, fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// Get returns one record by its composite key.
func (r *PostgresRepository) Get(ctx context.Context, userID, entityType, entityID string) (*models.Record, error) {
	query := `
		SELECT project_id, doc, updated_at
		FROM records
		WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3
	`
	rec := &models.Record{UserID: userID, EntityType: entityType, EntityID: entityID}
	err := r.db.QueryRowContext(ctx, query, userID, entityType, entityID).
		Scan(&rec.ProjectID, &rec.Doc, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// List returns every record of one type owned by the user, ordered by id.
func (r *PostgresRepository) List(ctx context.Context, userID, entityType string) ([]*models.Record, error) {
	query := `
		SELECT entity_id, project_id, doc, updated_at
		FROM records
		WHERE user_id = $1 AND entity_type = $2
		ORDER BY entity_id
	`
	rows, err := r.db.QueryContext(ctx, query, userID, entityType)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.collect(rows, userID, entityType)
}

// ListByProject returns the user's records of one type within a project.
func (r *PostgresRepository) ListByProject(ctx context.Context, userID, entityType, projectID string) ([]*models.Record, error) {
	query := `
		SELECT entity_id, project_id, doc, updated_at
		FROM records
		WHERE user_id = $1 AND entity_type = $2 AND project_id = $3
		ORDER BY entity_id
	`
	rows, err := r.db.QueryContext(ctx, query, userID, entityType, projectID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.collect(rows, userID, entityType)
}

// ListByIDs returns the subset of the given ids that exist.
func (r *PostgresRepository) ListByIDs(ctx context.Context, userID, entityType string, ids []string) ([]*models.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+2)
	args = append(args, userID, entityType)
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+3)
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT entity_id, project_id, doc, updated_at
		FROM records
		WHERE user_id = $1 AND entity_type = $2 AND entity_id IN (%s)
		ORDER BY entity_id
	`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.collect(rows, userID, entityType)
}

// Delete removes one record and reports whether a row existed.
func (r *PostgresRepository) Delete(ctx context.Context, userID, entityType, entityID string) (bool, error) {
	query := `
		DELETE FROM records
		WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3
	`
	res, err := r.db.ExecContext(ctx, query, userID, entityType, entityID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) collect(rows *sql.Rows, userID, entityType string) ([]*models.Record, error) {
	defer rows.Close()

	var result []*models.Record
	for rows.Next() {
		item := models.Record{UserID: userID, EntityType: entityType}
		if err := rows.Scan(&item.EntityID, &item.ProjectID, &item.Doc, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
