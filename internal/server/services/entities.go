package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/api"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/dbx"
	"github.com/dmitrijs2005/storykeeper/internal/server/models"
	"github.com/dmitrijs2005/storykeeper/internal/server/repositories/repomanager"
)

// docEnvelope lifts the fields the server indexes out of an otherwise opaque
// entity document.
type docEnvelope struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updatedAt"`
	ProjectID string    `json:"projectId"`
}

// Notifier fans a change event out to the user's connected devices.
// Implementations must be safe for concurrent use.
type Notifier interface {
	NotifyChange(userID string, ev api.ChangeEvent)
}

// EntityService stores entity documents per user with last-write-wins
// conflict resolution, and keeps the deletion ledger that lets offline
// devices converge.
type EntityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	notifier    Notifier
}

// NewEntityService builds the service. notifier may be nil.
func NewEntityService(db *sql.DB, m repomanager.RepositoryManager, notifier Notifier) *EntityService {
	return &EntityService{db: db, repomanager: m, notifier: notifier}
}

// Save upserts one entity document. The write is applied only when the
// document is at least as recent as the stored one; a stale push is absorbed
// without error so replays stay idempotent. An applied write also clears any
// tombstone for the entity, since a fresh document announces that the entity
// exists again.
func (s *EntityService) Save(ctx context.Context, userID, entityType, entityID string, doc []byte) (bool, error) {
	var envelope docEnvelope
	if err := json.Unmarshal(doc, &envelope); err != nil {
		return false, fmt.Errorf("%w: malformed document: %v", common.ErrorValidation, err)
	}
	if envelope.ID != entityID {
		return false, fmt.Errorf("%w: document id %q does not match path id %q", common.ErrorValidation, envelope.ID, entityID)
	}
	if envelope.UpdatedAt.IsZero() {
		return false, fmt.Errorf("%w: document has no updatedAt", common.ErrorValidation)
	}

	// Projects scope themselves; everything else carries its project id.
	projectID := envelope.ProjectID
	if projectID == "" {
		projectID = entityID
	}

	rec := &models.Record{
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		ProjectID:  projectID,
		Doc:        doc,
		UpdatedAt:  envelope.UpdatedAt,
	}

	var applied bool

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		applied, err = s.repomanager.Records(tx).Upsert(ctx, rec)
		if err != nil {
			return err
		}
		if applied {
			return s.repomanager.Tombstones(tx).Delete(ctx, userID, entityID)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if applied {
		s.notify(userID, api.ChangeEvent{Action: "saved", EntityType: entityType, EntityID: entityID})
	}

	return applied, nil
}

// Get returns one stored document, or common.ErrorNotFound.
func (s *EntityService) Get(ctx context.Context, userID, entityType, entityID string) (*models.Record, error) {
	return s.repomanager.Records(s.db).Get(ctx, userID, entityType, entityID)
}

// List returns every document of one type in the account.
func (s *EntityService) List(ctx context.Context, userID, entityType string) ([]*models.Record, error) {
	return s.repomanager.Records(s.db).List(ctx, userID, entityType)
}

// ListByProject returns the documents of one type within a project.
func (s *EntityService) ListByProject(ctx context.Context, userID, entityType, projectID string) ([]*models.Record, error) {
	return s.repomanager.Records(s.db).ListByProject(ctx, userID, entityType, projectID)
}

// ListByIDs returns the subset of ids that exist; unknown ids are skipped.
func (s *EntityService) ListByIDs(ctx context.Context, userID, entityType string, ids []string) ([]*models.Record, error) {
	return s.repomanager.Records(s.db).ListByIDs(ctx, userID, entityType, ids)
}

// Delete removes one document and records a tombstone, in one transaction.
// When the document is already absent nothing is written and
// common.ErrorNotFound comes back; clients treat that as a confirmed
// deletion, which keeps tombstone replay idempotent.
func (s *EntityService) Delete(ctx context.Context, userID, entityType, entityID string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		rec, err := s.repomanager.Records(tx).Get(ctx, userID, entityType, entityID)
		if err != nil {
			return err
		}

		if _, err := s.repomanager.Records(tx).Delete(ctx, userID, entityType, entityID); err != nil {
			return err
		}

		return s.repomanager.Tombstones(tx).Upsert(ctx, &models.Tombstone{
			UserID:     userID,
			EntityType: entityType,
			EntityID:   entityID,
			ProjectID:  rec.ProjectID,
			DeletedAt:  time.Now(),
		})
	})
	if err != nil {
		return err
	}

	s.notify(userID, api.ChangeEvent{Action: "deleted", EntityType: entityType, EntityID: entityID})

	return nil
}

// ListTombstones returns the account's deletion ledger, oldest first.
func (s *EntityService) ListTombstones(ctx context.Context, userID string) ([]*models.Tombstone, error) {
	return s.repomanager.Tombstones(s.db).List(ctx, userID)
}

// ListTombstonesByType returns the ledger entries for one entity type.
func (s *EntityService) ListTombstonesByType(ctx context.Context, userID, entityType string) ([]*models.Tombstone, error) {
	return s.repomanager.Tombstones(s.db).ListByType(ctx, userID, entityType)
}

// CleanupTombstones drops ledger entries recorded more than olderThanDays
// ago and reports how many were removed. Every device that was offline for
// longer than the window may resurrect deleted entities, so callers choose
// the window generously.
func (s *EntityService) CleanupTombstones(ctx context.Context, userID string, olderThanDays int) (int64, error) {
	if olderThanDays < 1 {
		return 0, fmt.Errorf("%w: cleanup window must be at least one day", common.ErrorValidation)
	}
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	return s.repomanager.Tombstones(s.db).DeleteOlderThan(ctx, userID, cutoff)
}

func (s *EntityService) notify(userID string, ev api.ChangeEvent) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyChange(userID, ev)
}
