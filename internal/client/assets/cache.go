// Package assets keeps media payloads (images, audio) on the local disk so
// entity asset references can be resolved without the network. The cache is
// content-addressed by the object key the backend minted for the upload.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/filex"
)

// Cache is a flat directory of media payloads for one account scope.
type Cache struct {
	dir string
}

// New returns a cache rooted at {root}/{scope}/media. The directory is
// created lazily on first Store.
func New(root, scope string) *Cache {
	return &Cache{dir: filepath.Join(root, scope, "media")}
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Path returns the on-disk address a key maps to. Keys are opaque flat
// identifiers minted by the backend; anything resembling a path is refused
// so a hostile key cannot escape the cache directory.
func (c *Cache) Path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid asset key %q", key)
	}
	return filepath.Join(c.dir, key), nil
}

// Has reports whether the payload for key is present, returning its local
// path when it is. Only a regular file counts as cached.
func (c *Cache) Has(key string) (string, bool) {
	path, err := c.Path(key)
	if err != nil {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// Store writes the payload for key atomically and returns its local path.
func (c *Cache) Store(key string, data []byte) (string, error) {
	path, err := c.Path(key)
	if err != nil {
		return "", err
	}
	if err := filex.WriteFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("store asset %s: %w", key, err)
	}
	return path, nil
}

// Load reads a cached payload; common.ErrorNotFound when the key is not
// cached.
func (c *Cache) Load(key string) ([]byte, error) {
	path, err := c.Path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return data, nil
}

// Remove drops a cached payload. Removing an absent key is a no-op.
func (c *Cache) Remove(key string) error {
	path, err := c.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
