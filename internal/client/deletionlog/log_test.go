package deletionlog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
)

func setupLog(t *testing.T) *Log {
	t.Helper()
	l, err := New(t.TempDir(), "alice")
	require.NoError(t, err)
	return l
}

func tomb(id string, ts time.Time) models.Tombstone {
	return models.Tombstone{
		EntityType: models.EntityTypeNote,
		EntityID:   id,
		ProjectID:  "p1",
		Timestamp:  ts,
	}
}

func TestLog_AddGetAllRemove(t *testing.T) {
	l := setupLog(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, l.Add(ctx, tomb("n1", now)))
	require.NoError(t, l.Add(ctx, tomb("n2", now)))

	all, err := l.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, l.Remove(ctx, "n1"))

	all, err = l.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "n2", all[0].EntityID)
}

func TestLog_Add_UpsertsByEntityID(t *testing.T) {
	l := setupLog(t)
	ctx := context.Background()
	first := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, l.Add(ctx, tomb("n1", first)))
	require.NoError(t, l.Add(ctx, tomb("n1", first.Add(time.Hour))))

	all, err := l.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Timestamp.Equal(first.Add(time.Hour)))
}

func TestLog_Remove_MissingIsNoop(t *testing.T) {
	l := setupLog(t)
	ctx := context.Background()

	require.NoError(t, l.Remove(ctx, "ghost"))

	require.NoError(t, l.Add(ctx, tomb("n1", time.Now().UTC())))
	require.NoError(t, l.Remove(ctx, "ghost"))

	all, err := l.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLog_IsDeleted(t *testing.T) {
	l := setupLog(t)
	ctx := context.Background()

	deleted, err := l.IsDeleted(ctx, "n1")
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, l.Add(ctx, tomb("n1", time.Now().UTC())))

	deleted, err = l.IsDeleted(ctx, "n1")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestLog_CleanupOldEntries(t *testing.T) {
	l := setupLog(t)
	ctx := context.Background()

	fixed := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = time.Now })

	require.NoError(t, l.Add(ctx, tomb("old1", fixed.AddDate(0, 0, -31))))
	require.NoError(t, l.Add(ctx, tomb("old2", fixed.AddDate(0, 0, -45))))
	require.NoError(t, l.Add(ctx, tomb("fresh", fixed.AddDate(0, 0, -5))))

	removed, err := l.CleanupOldEntries(ctx, DefaultRetentionDays)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	all, err := l.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "fresh", all[0].EntityID)
}

func TestLog_CleanupOldEntries_NothingExpired(t *testing.T) {
	l := setupLog(t)
	ctx := context.Background()

	require.NoError(t, l.Add(ctx, tomb("n1", time.Now().UTC())))

	removed, err := l.CleanupOldEntries(ctx, DefaultRetentionDays)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestLog_ConcurrentAdds_LoseNothing(t *testing.T) {
	l := setupLog(t)
	ctx := context.Background()
	now := time.Now().UTC()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_ = l.Add(ctx, tomb(fmt.Sprintf("id-%03d", i), now))
		}(i)
	}
	wg.Wait()

	all, err := l.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, n)
}

func TestLog_ConcurrentAddRemove_Disjoint(t *testing.T) {
	l := setupLog(t)
	ctx := context.Background()
	now := time.Now().UTC()

	// Seed ids that the removers will target.
	const n = 20
	for i := 0; i < n; i++ {
		require.NoError(t, l.Add(ctx, tomb(fmt.Sprintf("seed-%02d", i), now)))
	}

	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_ = l.Add(ctx, tomb(fmt.Sprintf("new-%02d", i), now))
		}(i)
		go func(i int) {
			defer wg.Done()
			_ = l.Remove(ctx, fmt.Sprintf("seed-%02d", i))
		}(i)
	}
	wg.Wait()

	all, err := l.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, n)
	for _, e := range all {
		assert.Contains(t, e.EntityID, "new-")
	}
}

func TestLog_PersistsAcrossInstances(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	l1, err := New(root, "alice")
	require.NoError(t, err)
	require.NoError(t, l1.Add(ctx, tomb("n1", time.Now().UTC())))

	// A fresh instance over the same scope sees the same ledger file.
	l2, err := New(root, "alice")
	require.NoError(t, err)
	deleted, err := l2.IsDeleted(ctx, "n1")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = os.Stat(filepath.Join(root, "alice", FileName))
	assert.NoError(t, err)
}
