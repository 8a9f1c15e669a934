package repositories

import (
	"context"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
)

// LocalStore is the durable on-disk side of the pair. Implementations must
// not fail for connectivity reasons; any error returned is treated as fatal
// by the repository.
type LocalStore[T models.Entity] interface {
	Save(ctx context.Context, entity T) error
	FindByID(ctx context.Context, id string) (T, error)
	FindAll(ctx context.Context) ([]T, error)
	FindByProjectID(ctx context.Context, projectID string) ([]T, error)
	FindByIDs(ctx context.Context, ids []string) ([]T, error)
	Delete(ctx context.Context, id string) error
}

// RemoteStore is the network side of the pair. Every method may fail with a
// connectivity or server error; the repository absorbs those failures.
type RemoteStore[T models.Entity] interface {
	Save(ctx context.Context, entity T) error
	FindByID(ctx context.Context, id string) (T, error)
	FindAll(ctx context.Context) ([]T, error)
	FindByProjectID(ctx context.Context, projectID string) ([]T, error)
	FindByIDs(ctx context.Context, ids []string) ([]T, error)
	Delete(ctx context.Context, id string) error
}

// DeletionLog records tombstones for entities deleted locally. The
// repository only ever adds and removes entries; replay belongs to the
// synchronization service.
type DeletionLog interface {
	Add(ctx context.Context, t models.Tombstone) error
	Remove(ctx context.Context, entityID string) error
}

// AssetResolver answers whether a media payload is cached locally and where.
type AssetResolver interface {
	Has(key string) (path string, ok bool)
}
