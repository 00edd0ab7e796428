package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/khrees2412/cvblue/internal/store"
	"github.com/khrees2412/cvblue/pkg/models"
)

// Namespace is the storage key the CV collection is kept under
const Namespace = "cv-blue"

// Storage operations

// GetItem returns the value stored under namespace, or "", false
func GetItem(ctx context.Context, db *sql.DB, namespace string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM storage WHERE namespace=?`, namespace).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetItem stores value under namespace, replacing any previous value
func SetItem(ctx context.Context, db *sql.DB, namespace, value string) error {
	query := `INSERT INTO storage (namespace, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			  ON CONFLICT(namespace) DO UPDATE SET value=excluded.value, updated_at=CURRENT_TIMESTAMP`
	_, err := db.ExecContext(ctx, query, namespace, value)
	return err
}

// RemoveItem deletes the value under namespace
func RemoveItem(ctx context.Context, db *sql.DB, namespace string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM storage WHERE namespace=?`, namespace)
	return err
}

// Storage persists store snapshots as JSON under a namespace
type Storage struct {
	db        *sql.DB
	namespace string
}

var _ store.Persister = (*Storage)(nil)

// NewStorage returns a persister writing to the given namespace
func NewStorage(db *sql.DB, namespace string) *Storage {
	return &Storage{db: db, namespace: namespace}
}

// Load reads the snapshot; nil, nil when nothing was saved yet
func (s *Storage) Load(ctx context.Context) (*store.Snapshot, error) {
	value, ok, err := GetItem(ctx, s.db, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.namespace, err)
	}
	if !ok {
		return nil, nil
	}
	snap := &store.Snapshot{}
	if err := json.Unmarshal([]byte(value), snap); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.namespace, err)
	}
	return snap, nil
}

// Save writes the snapshot
func (s *Storage) Save(ctx context.Context, snap *store.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := SetItem(ctx, s.db, s.namespace, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.namespace, err)
	}
	return nil
}

// Export history operations

func RecordExport(ctx context.Context, db *sql.DB, rec *models.ExportRecord) error {
	query := `INSERT INTO exports (file_name, path, format, cv_count) VALUES (?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query, rec.FileName, rec.Path, rec.Format, rec.CVCount)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	rec.ID = int(id)
	return nil
}

func GetRecentExports(ctx context.Context, db *sql.DB, limit int) ([]*models.ExportRecord, error) {
	query := `SELECT id, file_name, path, format, cv_count, exported_at
			  FROM exports ORDER BY exported_at DESC, id DESC LIMIT ?`
	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*models.ExportRecord{}
	for rows.Next() {
		rec := &models.ExportRecord{}
		if err := rows.Scan(&rec.ID, &rec.FileName, &rec.Path, &rec.Format, &rec.CVCount, &rec.ExportedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
