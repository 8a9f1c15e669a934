package tombstones

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/storykeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestUpsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	ts := &models.Tombstone{
		UserID:     "u-1",
		EntityType: "note",
		EntityID:   "n-1",
		ProjectID:  "p-1",
		DeletedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	mock.ExpectExec(`(?s)INSERT\s+INTO\s+tombstones.*ON\s+CONFLICT`).
		WithArgs(ts.UserID, ts.EntityType, ts.EntityID, ts.ProjectID, ts.DeletedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Upsert(context.Background(), ts); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
}

func TestList_ScansRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	deleted := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"entity_type", "entity_id", "project_id", "deleted_at"}).
		AddRow("note", "n-1", "p-1", deleted).
		AddRow("chapter", "c-1", "p-1", deleted.Add(time.Minute))
	mock.ExpectQuery(`(?s)SELECT\s+entity_type,.*FROM\s+tombstones\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+deleted_at`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].EntityID != "n-1" || got[1].EntityType != "chapter" {
		t.Fatalf("unexpected tombstones: %+v", got)
	}
}

func TestListByType_FiltersByType(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	deleted := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"entity_type", "entity_id", "project_id", "deleted_at"}).
		AddRow("note", "n-1", "p-1", deleted)
	mock.ExpectQuery(`AND\s+entity_type\s*=\s*\$2`).
		WithArgs("u-1", "note").
		WillReturnRows(rows)

	got, err := repo.ListByType(context.Background(), "u-1", "note")
	if err != nil {
		t.Fatalf("ListByType error: %v", err)
	}
	if len(got) != 1 || got[0].EntityType != "note" {
		t.Fatalf("unexpected tombstones: %+v", got)
	}
}

func TestDeleteOlderThan_ReportsCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	cutoff := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE\s+FROM\s+tombstones\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+deleted_at\s*<\s*\$2`).
		WithArgs("u-1", cutoff).
		WillReturnResult(sqlmock.NewResult(0, 5))

	n, err := repo.DeleteOlderThan(context.Background(), "u-1", cutoff)
	if err != nil {
		t.Fatalf("DeleteOlderThan error: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 removed, got %d", n)
	}
}
