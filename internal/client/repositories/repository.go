package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
)

var timeNow = time.Now

// deleteConcurrency bounds the per-entity workers of a project cascade.
const deleteConcurrency = 4

// Repository is the dual-store repository for one entity type. T is the
// pointer form of the entity, e.g. Repository[*models.Note].
type Repository[T models.Entity] struct {
	entityType models.EntityType
	local      LocalStore[T]
	remote     RemoteStore[T]
	deletions  DeletionLog
	assets     AssetResolver
	log        logging.Logger
}

// New wires a repository from its stores, the shared deletion log and the
// media cache.
func New[T models.Entity](entityType models.EntityType, local LocalStore[T], remote RemoteStore[T],
	deletions DeletionLog, assets AssetResolver, log logging.Logger) *Repository[T] {
	return &Repository[T]{
		entityType: entityType,
		local:      local,
		remote:     remote,
		deletions:  deletions,
		assets:     assets,
		log:        log.With("entityType", string(entityType)),
	}
}

// EntityType returns the type this repository serves.
func (r *Repository[T]) EntityType() models.EntityType { return r.entityType }

// Local exposes the durable store for the synchronization service.
func (r *Repository[T]) Local() LocalStore[T] { return r.local }

// Remote exposes the network store for the synchronization service.
func (r *Repository[T]) Remote() RemoteStore[T] { return r.remote }

// Save stamps the entity and persists it to both stores. The local write is
// authoritative and its failure aborts the call; a remote failure is
// absorbed so offline edits keep working, and the next sync pass carries the
// entity to the backend.
func (r *Repository[T]) Save(ctx context.Context, entity T) error {
	entity.Touch(timeNow())

	if err := r.local.Save(ctx, entity); err != nil {
		return fmt.Errorf("local save %s: %w", entity.GetID(), err)
	}

	if err := r.remote.Save(ctx, entity); err != nil {
		r.log.Warn(ctx, "remote save failed, deferring to next sync pass",
			"id", entity.GetID(), "error", err)
	}
	return nil
}

// FindByID returns the most recently updated copy of the entity across both
// stores. A remote failure degrades to the local copy; the id is reported
// missing only when neither store has it.
func (r *Repository[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T

	localCopy, localErr := r.local.FindByID(ctx, id)
	if localErr != nil && !errors.Is(localErr, common.ErrorNotFound) {
		return zero, fmt.Errorf("local find %s: %w", id, localErr)
	}

	remoteCopy, remoteErr := r.remote.FindByID(ctx, id)
	if remoteErr != nil && !errors.Is(remoteErr, common.ErrorNotFound) {
		r.log.Warn(ctx, "remote find failed, serving local copy", "id", id, "error", remoteErr)
	}

	switch {
	case localErr == nil && remoteErr == nil:
		return r.resolveAssetRef(pickMostRecent(localCopy, remoteCopy)), nil
	case localErr == nil:
		return r.resolveAssetRef(localCopy), nil
	case remoteErr == nil:
		return r.resolveAssetRef(remoteCopy), nil
	default:
		return zero, common.ErrorNotFound
	}
}

// FindAll merges both store listings by recency.
func (r *Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	locals, err := r.local.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("local list: %w", err)
	}

	remotes, err := r.remote.FindAll(ctx)
	if err != nil {
		r.log.Warn(ctx, "remote list failed, serving local copies", "error", err)
		remotes = nil
	}

	return r.resolveAssetRefs(mergeByMostRecent(locals, remotes)), nil
}

// FindByProjectID merges both stores' listings for one project by recency.
func (r *Repository[T]) FindByProjectID(ctx context.Context, projectID string) ([]T, error) {
	locals, err := r.local.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("local list for project %s: %w", projectID, err)
	}

	remotes, err := r.remote.FindByProjectID(ctx, projectID)
	if err != nil {
		r.log.Warn(ctx, "remote list failed, serving local copies",
			"projectId", projectID, "error", err)
		remotes = nil
	}

	return r.resolveAssetRefs(mergeByMostRecent(locals, remotes)), nil
}

// FindByIDs merges both stores' copies of the given ids by recency. Ids
// unknown to both stores are absent from the result.
func (r *Repository[T]) FindByIDs(ctx context.Context, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	locals, err := r.local.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("local find by ids: %w", err)
	}

	remotes, err := r.remote.FindByIDs(ctx, ids)
	if err != nil {
		r.log.Warn(ctx, "remote find by ids failed, serving local copies", "error", err)
		remotes = nil
	}

	return r.resolveAssetRefs(mergeByMostRecent(locals, remotes)), nil
}

// Delete removes the entity from both stores and records a tombstone for the
// user's other devices. The tombstone is dropped only once the backend
// confirms the delete; until then sync passes replay it.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	projectID, err := r.resolveProjectID(ctx, id)
	if err != nil {
		return err
	}
	return r.deleteOne(ctx, id, projectID)
}

// DeleteByProjectID removes every entity of this type under the project.
// Each id gets its own tombstone so replay stays per-entity.
func (r *Repository[T]) DeleteByProjectID(ctx context.Context, projectID string) error {
	locals, err := r.local.FindByProjectID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("local list for project %s: %w", projectID, err)
	}

	ids := make([]string, 0, len(locals))
	seen := make(map[string]bool, len(locals))
	for _, e := range locals {
		ids = append(ids, e.GetID())
		seen[e.GetID()] = true
	}

	remotes, err := r.remote.FindByProjectID(ctx, projectID)
	if err != nil {
		r.log.Warn(ctx, "remote list failed, deleting local copies only",
			"projectId", projectID, "error", err)
	}
	for _, e := range remotes {
		if !seen[e.GetID()] {
			ids = append(ids, e.GetID())
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deleteConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			return r.deleteOne(gctx, id, projectID)
		})
	}
	return g.Wait()
}

// resolveProjectID recovers the owning project for a tombstone before the
// record disappears: the local copy first, the backend as fallback. An id
// missing from both stores yields an empty scope; the tombstone is still
// recorded so a stale copy surfacing later cannot resurrect the entity.
func (r *Repository[T]) resolveProjectID(ctx context.Context, id string) (string, error) {
	localCopy, err := r.local.FindByID(ctx, id)
	if err == nil {
		return localCopy.GetProjectID(), nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("local find %s: %w", id, err)
	}

	remoteCopy, err := r.remote.FindByID(ctx, id)
	if err == nil {
		return remoteCopy.GetProjectID(), nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		r.log.Warn(ctx, "remote project lookup failed", "id", id, "error", err)
	}
	return "", nil
}

// deleteOne runs the single-entity deletion sequence: local delete,
// tombstone, remote delete, tombstone removal on confirmation.
func (r *Repository[T]) deleteOne(ctx context.Context, id, projectID string) error {
	if err := r.local.Delete(ctx, id); err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("local delete %s: %w", id, err)
	}

	tomb := models.Tombstone{
		EntityType: r.entityType,
		EntityID:   id,
		ProjectID:  projectID,
		Timestamp:  timeNow().UTC(),
	}
	if err := r.deletions.Add(ctx, tomb); err != nil {
		return fmt.Errorf("record deletion %s: %w", id, err)
	}

	if err := r.remote.Delete(ctx, id); err != nil {
		r.log.Warn(ctx, "remote delete failed, keeping tombstone for replay",
			"id", id, "error", err)
		return nil
	}
	return r.deletions.Remove(ctx, id)
}

// resolveAssetRef rewrites an object-storage reference to the cached local
// path when the payload is on disk, so views render without the network.
// Entities without asset references pass through untouched.
func (r *Repository[T]) resolveAssetRef(entity T) T {
	ref, ok := any(entity).(models.HasAssetRef)
	if !ok || ref.AssetRef() == "" {
		return entity
	}
	if path, cached := r.assets.Has(ref.AssetRef()); cached {
		ref.SetAssetRef(path)
	}
	return entity
}

func (r *Repository[T]) resolveAssetRefs(entities []T) []T {
	for i := range entities {
		entities[i] = r.resolveAssetRef(entities[i])
	}
	return entities
}
