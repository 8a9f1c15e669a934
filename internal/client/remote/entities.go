package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
)

// entityPtr constrains PT to "pointer to T that satisfies models.Entity".
type entityPtr[T any] interface {
	models.Entity
	*T
}

// EntityClient is the Remote Store for one entity type: the same method
// shapes as the local store, every one of them able to fail with a
// connectivity or server error.
type EntityClient[T any, PT entityPtr[T]] struct {
	c          *Client
	entityType models.EntityType
}

// NewEntityClient binds a client to one entity type.
func NewEntityClient[T any, PT entityPtr[T]](c *Client, entityType models.EntityType) *EntityClient[T, PT] {
	return &EntityClient[T, PT]{c: c, entityType: entityType}
}

// EntityType returns the type this client is bound to.
func (e *EntityClient[T, PT]) EntityType() models.EntityType { return e.entityType }

func (e *EntityClient[T, PT]) basePath() string {
	return "/api/entities/" + string(e.entityType)
}

// Save upserts the entity on the backend.
func (e *EntityClient[T, PT]) Save(ctx context.Context, entity PT) error {
	path := fmt.Sprintf("%s/%s", e.basePath(), entity.GetID())
	return e.c.do(ctx, http.MethodPut, path, nil, entity, nil)
}

// FindByID fetches one entity; common.ErrorNotFound when the backend has no
// record for the id.
func (e *EntityClient[T, PT]) FindByID(ctx context.Context, id string) (PT, error) {
	var v T
	path := fmt.Sprintf("%s/%s", e.basePath(), id)
	if err := e.c.do(ctx, http.MethodGet, path, nil, nil, &v); err != nil {
		return nil, err
	}
	return PT(&v), nil
}

// FindByProjectID lists the project's entities of this type.
func (e *EntityClient[T, PT]) FindByProjectID(ctx context.Context, projectID string) ([]PT, error) {
	q := url.Values{"project_id": []string{projectID}}
	return e.list(ctx, q)
}

// FindByIDs fetches the given ids; ids unknown to the backend are absent
// from the result, not errors.
func (e *EntityClient[T, PT]) FindByIDs(ctx context.Context, ids []string) ([]PT, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := url.Values{"ids": []string{strings.Join(ids, ",")}}
	return e.list(ctx, q)
}

// FindAll lists every entity of this type in the account.
func (e *EntityClient[T, PT]) FindAll(ctx context.Context) ([]PT, error) {
	return e.list(ctx, nil)
}

func (e *EntityClient[T, PT]) list(ctx context.Context, q url.Values) ([]PT, error) {
	var raw []T
	if err := e.c.do(ctx, http.MethodGet, e.basePath(), q, nil, &raw); err != nil {
		return nil, err
	}
	result := make([]PT, 0, len(raw))
	for i := range raw {
		result = append(result, PT(&raw[i]))
	}
	return result, nil
}

// Delete removes the entity on the backend (which records a remote
// tombstone for other devices). An id the backend no longer has counts as
// confirmed: replayed deletes must converge, and "already gone" is success.
func (e *EntityClient[T, PT]) Delete(ctx context.Context, id string) error {
	path := fmt.Sprintf("%s/%s", e.basePath(), id)
	err := e.c.do(ctx, http.MethodDelete, path, nil, nil, nil)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return err
}
