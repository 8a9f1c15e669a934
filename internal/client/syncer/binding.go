package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
)

// copyConcurrency bounds the per-entity workers a single CopyMissing run
// keeps in flight.
const copyConcurrency = 4

// LocalStore is the slice of the durable store a sync pass needs.
type LocalStore[T models.Entity] interface {
	Save(ctx context.Context, entity T) error
	FindAll(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id string) error
}

// RemoteStore is the slice of the network store a sync pass needs.
type RemoteStore[T models.Entity] interface {
	Save(ctx context.Context, entity T) error
	FindAll(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id string) error
}

// Binding adapts one entity type's store pair for the type-agnostic pass.
type Binding interface {
	EntityType() models.EntityType

	// DeleteRemote pushes one recorded deletion to the backend. An id the
	// backend no longer has counts as confirmed.
	DeleteRemote(ctx context.Context, id string) error

	// DeleteLocal removes the local copy without recording a tombstone:
	// the deletion originated elsewhere and is already tombstoned there.
	DeleteLocal(ctx context.Context, id string) error

	// CopyMissing copies entities present in only one store to the other.
	// Remote-only ids in locallyDeleted are skipped so an unreplayed local
	// deletion cannot resurrect. Per-entity upload failures are absorbed;
	// a failed listing aborts with an error.
	CopyMissing(ctx context.Context, locallyDeleted map[string]bool) (pushed, pulled int, err error)
}

type binding[T models.Entity] struct {
	entityType models.EntityType
	local      LocalStore[T]
	remote     RemoteStore[T]
	log        logging.Logger
}

// NewBinding wraps one entity type's stores for the sync service.
func NewBinding[T models.Entity](entityType models.EntityType, local LocalStore[T],
	remote RemoteStore[T], log logging.Logger) Binding {
	return &binding[T]{
		entityType: entityType,
		local:      local,
		remote:     remote,
		log:        log.With("entityType", string(entityType)),
	}
}

func (b *binding[T]) EntityType() models.EntityType { return b.entityType }

func (b *binding[T]) DeleteRemote(ctx context.Context, id string) error {
	err := b.remote.Delete(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return err
}

func (b *binding[T]) DeleteLocal(ctx context.Context, id string) error {
	err := b.local.Delete(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return err
}

func (b *binding[T]) CopyMissing(ctx context.Context, locallyDeleted map[string]bool) (int, int, error) {
	locals, err := b.local.FindAll(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("local list: %w", err)
	}
	remotes, err := b.remote.FindAll(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("remote list: %w", err)
	}

	localIDs := make(map[string]bool, len(locals))
	for _, e := range locals {
		localIDs[e.GetID()] = true
	}
	remoteIDs := make(map[string]bool, len(remotes))
	for _, e := range remotes {
		remoteIDs[e.GetID()] = true
	}

	var pushed, pulled atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(copyConcurrency)

	for _, e := range locals {
		if remoteIDs[e.GetID()] {
			continue
		}
		g.Go(func() error {
			if err := b.remote.Save(gctx, e); err != nil {
				b.log.Warn(gctx, "upload failed, entity stays local for now", "id", e.GetID(), "error", err)
				return nil
			}
			pushed.Add(1)
			return nil
		})
	}

	for _, e := range remotes {
		id := e.GetID()
		if localIDs[id] {
			continue
		}
		if locallyDeleted[id] {
			b.log.Debug(ctx, "skipping remote copy of locally deleted entity", "id", id)
			continue
		}
		g.Go(func() error {
			// Saved verbatim: the remote updatedAt must survive so recency
			// comparison stays meaningful.
			if err := b.local.Save(gctx, e); err != nil {
				return fmt.Errorf("store remote entity %s locally: %w", id, err)
			}
			pulled.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(pushed.Load()), int(pulled.Load()), err
	}
	return int(pushed.Load()), int(pulled.Load()), nil
}
