package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/khrees2412/cvblue/internal/store"
	"github.com/khrees2412/cvblue/pkg/models"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestDB creates a temporary test database
func createTestDB(t testing.TB) *sql.DB {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestOpen_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	db, err := Open(dir)
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='storage'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "storage", name)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := createTestDB(t)
	assert.NoError(t, RunMigrations(db))
}

func TestItems(t *testing.T) {
	db := createTestDB(t)
	ctx := context.Background()

	_, ok, err := GetItem(ctx, db, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetItem(ctx, db, "k", "v1"))
	require.NoError(t, SetItem(ctx, db, "k", "v2"))

	value, ok, err := GetItem(ctx, db, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)

	require.NoError(t, RemoveItem(ctx, db, "k"))
	_, ok, err = GetItem(ctx, db, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_EmptyLoad(t *testing.T) {
	s := NewStorage(createTestDB(t), Namespace)

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestStorage_RoundTrip(t *testing.T) {
	s := NewStorage(createTestDB(t), Namespace)
	ctx := context.Background()
	at := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	active := "cv-1"

	in := &store.Snapshot{
		CVs: []models.CV{{
			ID:        "cv-1",
			Name:      "Main",
			Content:   models.NewContent(),
			CreatedAt: at,
			UpdatedAt: at,
		}},
		ActiveCVID: &active,
	}
	in.CVs[0].Skills = []string{"Go"}

	require.NoError(t, s.Save(ctx, in))
	out, err := s.Load(ctx)
	require.NoError(t, err)

	require.NotNil(t, out.ActiveCVID)
	assert.Equal(t, "cv-1", *out.ActiveCVID)
	require.Len(t, out.CVs, 1)
	assert.Equal(t, []string{"Go"}, out.CVs[0].Skills)
	assert.True(t, out.CVs[0].CreatedAt.Equal(at))
}

func TestStorage_NullActiveID(t *testing.T) {
	db := createTestDB(t)
	s := NewStorage(db, Namespace)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &store.Snapshot{CVs: []models.CV{}}))

	raw, _, err := GetItem(ctx, db, Namespace)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cvs": [], "activeCVId": null}`, raw)
}

func TestStorage_CorruptValue(t *testing.T) {
	db := createTestDB(t)
	require.NoError(t, SetItem(context.Background(), db, Namespace, "{broken"))

	_, err := NewStorage(db, Namespace).Load(context.Background())
	assert.Error(t, err)
}

func TestStorage_BacksStore(t *testing.T) {
	db := createTestDB(t)
	ctx := context.Background()

	first := store.New(NewStorage(db, Namespace))
	require.NoError(t, first.Hydrate(ctx))
	id := first.AddCV("Persisted", nil)
	require.NoError(t, first.UpdateSkills([]string{"Go", "SQL"}))

	second := store.New(NewStorage(db, Namespace))
	require.NoError(t, second.Hydrate(ctx))

	assert.Equal(t, id, second.ActiveCVID())
	assert.Equal(t, []string{"Go", "SQL"}, second.View().Skills)
}

func TestExports(t *testing.T) {
	db := createTestDB(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		rec := &models.ExportRecord{
			FileName: fmt.Sprintf("cv-%d.json", i),
			Path:     fmt.Sprintf("/tmp/cv-%d.json", i),
			Format:   "json",
			CVCount:  1,
		}
		require.NoError(t, RecordExport(ctx, db, rec))
		assert.NotZero(t, rec.ID)
	}

	records, err := GetRecentExports(ctx, db, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "cv-3.json", records[0].FileName)
}

func TestExports_FormatConstraint(t *testing.T) {
	db := createTestDB(t)
	err := RecordExport(context.Background(), db, &models.ExportRecord{FileName: "x", Path: "x", Format: "docx"})
	assert.Error(t, err)
}

func BenchmarkStorageSave(b *testing.B) {
	s := NewStorage(createTestDB(b), Namespace)
	snap := &store.Snapshot{CVs: []models.CV{{ID: "cv-1", Content: models.NewContent()}}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Save(context.Background(), snap); err != nil {
			b.Fatal(err)
		}
	}
}
