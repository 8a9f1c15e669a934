// Package localstore is the durable, always-available side of the
// dual-store pair. One entity type maps to one directory: every record is a
// single JSON file at {root}/{scope}/{entityType}/{id}.json, written
// atomically so readers never observe partial state. The store never fails
// for connectivity reasons; any error it returns is a local storage fault
// and is treated as fatal by callers.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/filex"
)

// entityPtr constrains PT to "pointer to T that satisfies models.Entity",
// which lets the store allocate fresh records when decoding.
type entityPtr[T any] interface {
	models.Entity
	*T
}

// Store persists one entity type as JSON files under a scope directory.
type Store[T any, PT entityPtr[T]] struct {
	dir        string
	entityType models.EntityType
}

// New creates the backing directory if needed and returns a store for one
// entity type within one owner scope.
func New[T any, PT entityPtr[T]](root, scope string, entityType models.EntityType) (*Store[T, PT], error) {
	dir := filepath.Join(root, scope, string(entityType))
	if err := filex.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("init local store for %s: %w", entityType, err)
	}
	return &Store[T, PT]{dir: dir, entityType: entityType}, nil
}

// EntityType returns the type this store is bound to.
func (s *Store[T, PT]) EntityType() models.EntityType { return s.entityType }

func (s *Store[T, PT]) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save writes the entity record, replacing any previous version.
func (s *Store[T, PT]) Save(ctx context.Context, e PT) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", s.entityType, e.GetID(), err)
	}
	if err := filex.WriteFileAtomic(s.path(e.GetID()), b); err != nil {
		return fmt.Errorf("write %s %s: %w", s.entityType, e.GetID(), err)
	}
	return nil
}

// FindByID loads one record. Returns common.ErrorNotFound when no file for
// the id exists.
func (s *Store[T, PT]) FindByID(ctx context.Context, id string) (PT, error) {
	b, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s %s: %w", s.entityType, id, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("read %s %s: %w", s.entityType, id, err)
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", s.entityType, id, err)
	}
	return PT(&v), nil
}

// FindAll loads every record of the type, ordered by file name (stable
// across calls).
func (s *Store[T, PT]) FindAll(ctx context.Context) ([]PT, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan %s: %w", s.entityType, err)
	}

	var result []PT
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		e, err := s.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				continue
			}
			return nil, err
		}
		result = append(result, e)
	}
	return result, nil
}

// FindByProjectID returns the records owned by the given project.
func (s *Store[T, PT]) FindByProjectID(ctx context.Context, projectID string) ([]PT, error) {
	all, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var result []PT
	for _, e := range all {
		if e.GetProjectID() == projectID {
			result = append(result, e)
		}
	}
	return result, nil
}

// FindByIDs returns the records matching the given ids; missing ids are
// skipped, not errors.
func (s *Store[T, PT]) FindByIDs(ctx context.Context, ids []string) ([]PT, error) {
	var result []PT
	for _, id := range ids {
		e, err := s.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				continue
			}
			return nil, err
		}
		result = append(result, e)
	}
	return result, nil
}

// Delete removes the record file. Returns common.ErrorNotFound when there
// is nothing to remove.
func (s *Store[T, PT]) Delete(ctx context.Context, id string) error {
	if err := os.Remove(s.path(id)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s %s: %w", s.entityType, id, common.ErrorNotFound)
		}
		return fmt.Errorf("delete %s %s: %w", s.entityType, id, err)
	}
	return nil
}
