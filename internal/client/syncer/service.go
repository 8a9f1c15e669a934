// Package syncer reconciles the durable stores, the deletion log and the
// backend in one idempotent pass. A pass replays local deletions to the
// backend, applies deletions made on other devices, copies entities present
// in only one store, and finally expires old tombstones on both sides.
// Running a pass twice in a row leaves the same state as running it once.
package syncer

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/storykeeper/internal/client/deletionlog"
	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
)

// DeletionLog is the slice of the local tombstone ledger a pass needs.
type DeletionLog interface {
	GetAll(ctx context.Context) ([]models.Tombstone, error)
	Remove(ctx context.Context, entityID string) error
	CleanupOldEntries(ctx context.Context, olderThanDays int) (int, error)
}

// RemoteLog is the backend's tombstone feed.
type RemoteLog interface {
	GetTombstones(ctx context.Context) ([]models.Tombstone, error)
	CleanupTombstones(ctx context.Context, olderThanDays int) (int, error)
}

// Service runs synchronization passes over a set of entity bindings.
// Passes serialize: a second caller blocks until the running pass finishes.
type Service struct {
	mu            sync.Mutex
	deletions     DeletionLog
	remote        RemoteLog
	bindings      map[models.EntityType]Binding
	ordered       []Binding
	retentionDays int
	log           logging.Logger
}

// NewService wires a sync service over the given bindings.
func NewService(deletions DeletionLog, remote RemoteLog, log logging.Logger, bindings ...Binding) *Service {
	byType := make(map[models.EntityType]Binding, len(bindings))
	for _, b := range bindings {
		byType[b.EntityType()] = b
	}
	return &Service{
		deletions:     deletions,
		remote:        remote,
		bindings:      byType,
		ordered:       bindings,
		retentionDays: deletionlog.DefaultRetentionDays,
		log:           log,
	}
}

// RunSyncPass executes the four reconciliation steps in order. Local store
// failures abort the pass; so does an unreachable backend, since every
// remaining step needs it. Per-entity remote failures are absorbed and the
// affected tombstone or entity is retried on the next pass.
func (s *Service) RunSyncPass(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.replayLocalDeletions(ctx); err != nil {
		return err
	}
	if err := s.applyRemoteDeletions(ctx); err != nil {
		return err
	}
	if err := s.copyMissingEntities(ctx); err != nil {
		return err
	}
	return s.cleanupDeletionLogs(ctx)
}

// replayLocalDeletions pushes every recorded local deletion to the backend,
// dropping each tombstone once the backend confirms.
func (s *Service) replayLocalDeletions(ctx context.Context) error {
	entries, err := s.deletions.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("read deletion log: %w", err)
	}

	for _, t := range entries {
		b, ok := s.bindings[t.EntityType]
		if !ok {
			s.log.Warn(ctx, "tombstone for unbound entity type, skipping",
				"entityType", string(t.EntityType), "id", t.EntityID)
			continue
		}
		if err := b.DeleteRemote(ctx, t.EntityID); err != nil {
			s.log.Warn(ctx, "replaying deletion failed, keeping tombstone",
				"entityType", string(t.EntityType), "id", t.EntityID, "error", err)
			continue
		}
		if err := s.deletions.Remove(ctx, t.EntityID); err != nil {
			return fmt.Errorf("drop tombstone %s: %w", t.EntityID, err)
		}
	}
	return nil
}

// applyRemoteDeletions removes local copies of entities deleted on other
// devices. No new tombstones are recorded: the deletion is already
// tombstoned where it originated, and re-recording it here would bounce it
// between devices forever.
func (s *Service) applyRemoteDeletions(ctx context.Context) error {
	remoteTombstones, err := s.remote.GetTombstones(ctx)
	if err != nil {
		return fmt.Errorf("fetch remote tombstones: %w", err)
	}

	for _, t := range remoteTombstones {
		b, ok := s.bindings[t.EntityType]
		if !ok {
			s.log.Warn(ctx, "remote tombstone for unbound entity type, skipping",
				"entityType", string(t.EntityType), "id", t.EntityID)
			continue
		}
		if err := b.DeleteLocal(ctx, t.EntityID); err != nil {
			return fmt.Errorf("apply remote deletion %s: %w", t.EntityID, err)
		}
	}
	return nil
}

// copyMissingEntities copies one-store-only entities in both directions,
// one errgroup worker per entity type. Remote-only ids still present in the
// local deletion log are skipped: their deletion has not reached the
// backend yet and pulling them back would resurrect them.
func (s *Service) copyMissingEntities(ctx context.Context) error {
	entries, err := s.deletions.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("read deletion log: %w", err)
	}
	locallyDeleted := make(map[string]bool, len(entries))
	for _, t := range entries {
		locallyDeleted[t.EntityID] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, b := range s.ordered {
		g.Go(func() error {
			pushed, pulled, err := b.CopyMissing(gctx, locallyDeleted)
			if err != nil {
				return fmt.Errorf("copy %s entities: %w", b.EntityType(), err)
			}
			if pushed > 0 || pulled > 0 {
				s.log.Info(gctx, "copied missing entities",
					"entityType", string(b.EntityType()), "pushed", pushed, "pulled", pulled)
			}
			return nil
		})
	}
	return g.Wait()
}

// cleanupDeletionLogs expires tombstones past the retention window on both
// sides. A failed remote cleanup only warns; the backend retries on its own
// schedule.
func (s *Service) cleanupDeletionLogs(ctx context.Context) error {
	removed, err := s.deletions.CleanupOldEntries(ctx, s.retentionDays)
	if err != nil {
		return fmt.Errorf("cleanup deletion log: %w", err)
	}
	if removed > 0 {
		s.log.Info(ctx, "expired local tombstones removed", "count", removed)
	}

	remoteRemoved, err := s.remote.CleanupTombstones(ctx, s.retentionDays)
	if err != nil {
		s.log.Warn(ctx, "remote tombstone cleanup failed", "error", err)
		return nil
	}
	if remoteRemoved > 0 {
		s.log.Info(ctx, "expired remote tombstones removed", "count", remoteRemoved)
	}
	return nil
}
