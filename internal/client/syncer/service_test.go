package syncer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storykeeper/internal/client/deletionlog"
	"github.com/dmitrijs2005/storykeeper/internal/client/localstore"
	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
)

type fakeRemoteStore[T models.Entity] struct {
	mu       sync.Mutex
	entities map[string]T

	saveErr   error
	listErr   error
	deleteErr error
	saves     int
}

func newFakeRemoteStore[T models.Entity]() *fakeRemoteStore[T] {
	return &fakeRemoteStore[T]{entities: make(map[string]T)}
}

func (f *fakeRemoteStore[T]) put(e T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entities[e.GetID()] = e
}

func (f *fakeRemoteStore[T]) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entities[id]
	return ok
}

func (f *fakeRemoteStore[T]) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func (f *fakeRemoteStore[T]) Save(ctx context.Context, e T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.entities[e.GetID()] = e
	f.saves++
	return nil
}

func (f *fakeRemoteStore[T]) FindAll(ctx context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := make([]T, 0, len(f.entities))
	for _, e := range f.entities {
		result = append(result, e)
	}
	return result, nil
}

func (f *fakeRemoteStore[T]) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.entities, id)
	return nil
}

type fakeRemoteLog struct {
	mu         sync.Mutex
	tombstones []models.Tombstone
	getErr     error
	cleanups   []int
}

func (f *fakeRemoteLog) GetTombstones(ctx context.Context) ([]models.Tombstone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return append([]models.Tombstone(nil), f.tombstones...), nil
}

func (f *fakeRemoteLog) CleanupTombstones(ctx context.Context, olderThanDays int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleanups = append(f.cleanups, olderThanDays)
	return 0, nil
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func note(id, projectID, title string, updatedAt time.Time) *models.Note {
	return &models.Note{
		Doc:   models.Doc{Meta: models.Meta{ID: id, UpdatedAt: updatedAt}, ProjectID: projectID},
		Title: title,
	}
}

type syncFixture struct {
	local     *localstore.Store[models.Note, *models.Note]
	remote    *fakeRemoteStore[*models.Note]
	deletions *deletionlog.Log
	remoteLog *fakeRemoteLog
	svc       *Service
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()
	dir := t.TempDir()

	local, err := localstore.New[models.Note, *models.Note](dir, "alice", models.EntityTypeNote)
	require.NoError(t, err)
	deletions, err := deletionlog.New(dir, "alice")
	require.NoError(t, err)

	f := &syncFixture{
		local:     local,
		remote:    newFakeRemoteStore[*models.Note](),
		deletions: deletions,
		remoteLog: &fakeRemoteLog{},
	}
	log := discardLogger()
	f.svc = NewService(deletions, f.remoteLog, log,
		NewBinding[*models.Note](models.EntityTypeNote, local, f.remote, log))
	return f
}

func (f *syncFixture) tombstone(t *testing.T, id, projectID string, at time.Time) {
	t.Helper()
	require.NoError(t, f.deletions.Add(context.Background(), models.Tombstone{
		EntityType: models.EntityTypeNote,
		EntityID:   id,
		ProjectID:  projectID,
		Timestamp:  at,
	}))
}

func TestRunSyncPass_ReplaysLocalDeletions(t *testing.T) {
	f := newSyncFixture(t)
	f.remote.put(note("n1", "p1", "doomed", time.Now()))
	f.tombstone(t, "n1", "p1", time.Now())

	require.NoError(t, f.svc.RunSyncPass(context.Background()))

	assert.False(t, f.remote.has("n1"))
	entries, err := f.deletions.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunSyncPass_KeepsTombstoneAndBlocksResurrectionWhenReplayFails(t *testing.T) {
	f := newSyncFixture(t)
	f.remote.put(note("n1", "p1", "deleted here, alive there", time.Now()))
	f.remote.deleteErr = errors.New("internal error")
	f.tombstone(t, "n1", "p1", time.Now())

	require.NoError(t, f.svc.RunSyncPass(context.Background()))

	// Tombstone survives for the next pass.
	entries, err := f.deletions.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "n1", entries[0].EntityID)

	// And the still-remote copy was not pulled back in.
	_, err = f.local.FindByID(context.Background(), "n1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRunSyncPass_AppliesRemoteDeletionsWithoutNewTombstones(t *testing.T) {
	f := newSyncFixture(t)
	require.NoError(t, f.local.Save(context.Background(), note("n1", "p1", "deleted elsewhere", time.Now())))
	f.remoteLog.tombstones = []models.Tombstone{
		{EntityType: models.EntityTypeNote, EntityID: "n1", ProjectID: "p1", Timestamp: time.Now()},
	}

	require.NoError(t, f.svc.RunSyncPass(context.Background()))

	_, err := f.local.FindByID(context.Background(), "n1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	entries, err := f.deletions.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunSyncPass_CopiesOneStoreOnlyEntities(t *testing.T) {
	f := newSyncFixture(t)
	localStamp := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	remoteStamp := localStamp.Add(time.Hour)

	require.NoError(t, f.local.Save(context.Background(), note("local-only", "p1", "a", localStamp)))
	f.remote.put(note("remote-only", "p1", "b", remoteStamp))
	// Present on both sides with divergent content: the pass leaves it
	// alone, recency merge at read time handles it.
	require.NoError(t, f.local.Save(context.Background(), note("both", "p1", "local variant", localStamp)))
	f.remote.put(note("both", "p1", "remote variant", remoteStamp))

	require.NoError(t, f.svc.RunSyncPass(context.Background()))

	assert.True(t, f.remote.has("local-only"))

	pulled, err := f.local.FindByID(context.Background(), "remote-only")
	require.NoError(t, err)
	assert.True(t, pulled.UpdatedAt.Equal(remoteStamp), "remote stamp must survive the copy")

	bothLocal, err := f.local.FindByID(context.Background(), "both")
	require.NoError(t, err)
	assert.Equal(t, "local variant", bothLocal.Title)
}

func TestRunSyncPass_Idempotent(t *testing.T) {
	f := newSyncFixture(t)
	require.NoError(t, f.local.Save(context.Background(), note("local-only", "p1", "a", time.Now())))
	f.remote.put(note("remote-only", "p1", "b", time.Now()))
	f.tombstone(t, "gone", "p1", time.Now())

	require.NoError(t, f.svc.RunSyncPass(context.Background()))
	savesAfterFirst := f.remote.saveCount()

	require.NoError(t, f.svc.RunSyncPass(context.Background()))
	assert.Equal(t, savesAfterFirst, f.remote.saveCount(), "second pass must not re-upload")

	entries, err := f.deletions.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunSyncPass_CleansUpExpiredTombstones(t *testing.T) {
	f := newSyncFixture(t)
	// Replay must fail so the tombstones survive to the cleanup step.
	f.remote.deleteErr = errors.New("internal error")
	f.tombstone(t, "old", "p1", time.Now().AddDate(0, 0, -31))
	f.tombstone(t, "fresh", "p1", time.Now())

	require.NoError(t, f.svc.RunSyncPass(context.Background()))

	entries, err := f.deletions.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "fresh", entries[0].EntityID)

	assert.Equal(t, []int{deletionlog.DefaultRetentionDays}, f.remoteLog.cleanups)
}

func TestRunSyncPass_AbortsWhenTombstoneFeedUnreachable(t *testing.T) {
	f := newSyncFixture(t)
	f.remoteLog.getErr = errors.New("connection refused")
	require.NoError(t, f.local.Save(context.Background(), note("n1", "p1", "a", time.Now())))

	err := f.svc.RunSyncPass(context.Background())
	require.Error(t, err)

	// Nothing was pushed.
	assert.Equal(t, 0, f.remote.saveCount())
}

func TestRunSyncPass_SkipsTombstonesForUnboundTypes(t *testing.T) {
	f := newSyncFixture(t)
	require.NoError(t, f.deletions.Add(context.Background(), models.Tombstone{
		EntityType: models.EntityTypeChapter,
		EntityID:   "c1",
		ProjectID:  "p1",
		Timestamp:  time.Now(),
	}))

	require.NoError(t, f.svc.RunSyncPass(context.Background()))

	entries, err := f.deletions.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "c1", entries[0].EntityID)
}
