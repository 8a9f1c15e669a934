// Package deletionlog keeps the durable ledger of deletes whose remote half
// is still unconfirmed. The whole ledger lives in a single flat JSON file
// per owner scope, so every operation is a read-modify-write cycle; an
// internal mutex serializes them all, reads included, to rule out lost
// updates between interleaved cycles. The Log is an ordinary injected
// component: construct one per scope and pass it to whoever needs it.
package deletionlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/filex"
)

// DefaultRetentionDays bounds tombstone age. CleanupOldEntries drops entries
// older than this even when the remote delete was never confirmed, so a
// remote store that reconnects after the window can resurrect the entity.
const DefaultRetentionDays = 30

// FileName is the single ledger file kept per owner scope.
const FileName = "deletions.json"

// timeNow is a seam for tests that need a fixed clock.
var timeNow = time.Now

// Log is the pending-deletion ledger for one owner scope.
type Log struct {
	mu   sync.Mutex
	path string
}

// New ensures the scope directory exists and returns its ledger.
func New(root, scope string) (*Log, error) {
	dir := filepath.Join(root, scope)
	if err := filex.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("init deletion log: %w", err)
	}
	return &Log{path: filepath.Join(dir, FileName)}, nil
}

// load reads the ledger; a missing file is an empty ledger.
// Callers must hold mu.
func (l *Log) load() ([]models.Tombstone, error) {
	b, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read deletion log: %w", err)
	}
	if len(b) == 0 {
		return nil, nil
	}

	var entries []models.Tombstone
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("decode deletion log: %w", err)
	}
	return entries, nil
}

// store writes the ledger back atomically. Callers must hold mu.
func (l *Log) store(entries []models.Tombstone) error {
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode deletion log: %w", err)
	}
	if err := filex.WriteFileAtomic(l.path, b); err != nil {
		return fmt.Errorf("write deletion log: %w", err)
	}
	return nil
}

// Add records a pending deletion. Adding an id that is already tombstoned
// replaces the earlier entry, so retried deletes keep exactly one tombstone
// per id.
func (l *Log) Add(ctx context.Context, t models.Tombstone) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range entries {
		if entries[i].EntityID == t.EntityID {
			entries[i] = t
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, t)
	}
	return l.store(entries)
}

// Remove drops the tombstone for entityID. Removing an id that is not in
// the ledger is a no-op: replay paths call Remove after every confirmed
// remote delete and must stay idempotent.
func (l *Log) Remove(ctx context.Context, entityID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.EntityID != entityID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}
	return l.store(kept)
}

// GetAll returns a copy of every pending tombstone.
func (l *Log) GetAll(ctx context.Context) ([]models.Tombstone, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

// IsDeleted reports whether entityID has a pending tombstone.
func (l *Log) IsDeleted(ctx context.Context, entityID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.EntityID == entityID {
			return true, nil
		}
	}
	return false, nil
}

// CleanupOldEntries removes every tombstone older than olderThanDays,
// confirmed or not, and returns how many were dropped. See
// DefaultRetentionDays for the consistency consequences.
func (l *Log) CleanupOldEntries(ctx context.Context, olderThanDays int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return 0, err
	}

	cutoff := timeNow().AddDate(0, 0, -olderThanDays)
	kept := entries[:0]
	removed := 0
	for _, e := range entries {
		if e.OlderThan(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := l.store(kept); err != nil {
		return 0, err
	}
	return removed, nil
}
