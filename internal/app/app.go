package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/khrees2412/cvblue/internal/config"
	"github.com/khrees2412/cvblue/internal/database"
	"github.com/khrees2412/cvblue/internal/pdf"
	"github.com/khrees2412/cvblue/internal/store"
	"github.com/khrees2412/cvblue/internal/transfer"
	"github.com/khrees2412/cvblue/pkg/models"
)

// App is the dependency container for the CLI application
type App struct {
	DB       *sql.DB
	Config   *config.Config
	Store    *store.Store
	Exporter *transfer.Exporter
	PDF      pdf.Generator
	Pending  *store.PendingWrites
}

// NewApp initializes and returns a new App instance with a hydrated store
func NewApp(ctx context.Context) (*App, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.AppConfig
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
	}

	db, err := database.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a := New(cfg, db, store.New(database.NewStorage(db, database.Namespace)))
	if err := a.Store.Hydrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load CVs: %w", err)
	}
	return a, nil
}

// New assembles an App from already-open parts
func New(cfg *config.Config, db *sql.DB, s *store.Store) *App {
	return &App{
		DB:       db,
		Config:   cfg,
		Store:    s,
		Exporter: transfer.NewExporter(cfg.OutputDir),
		PDF:      pdf.NewChromeGenerator(cfg.ChromePath, cfg.PDFTimeout),
		Pending:  store.NewPendingWrites(cfg.DebounceInterval),
	}
}

// Close flushes pending edits, writes the final snapshot and closes the
// database
func (a *App) Close() error {
	if a.Pending != nil {
		a.Pending.Flush()
	}
	var storeErr error
	if a.Store != nil {
		storeErr = a.Store.Close()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return err
		}
	}
	return storeErr
}

// RecordExport adds a written file to the export history
func (a *App) RecordExport(ctx context.Context, fileName, path, format string, count int) {
	err := database.RecordExport(ctx, a.DB, &models.ExportRecord{
		FileName: fileName,
		Path:     path,
		Format:   format,
		CVCount:  count,
	})
	if err != nil {
		log.Printf("[STORE] failed to record export %s: %v", fileName, err)
	}
}

// ImportInto replaces the content of CV cvID with an imported single-CV
// file. Nothing changes when the file is rejected.
func (a *App) ImportInto(cvID string, f transfer.File) error {
	content, err := transfer.ImportCV(f)
	if err != nil {
		return err
	}
	return a.Store.ImportDataToCV(cvID, *content)
}

// ImportCollection adds every CV of an imported collection file and
// returns the new ids
func (a *App) ImportCollection(f transfer.File) ([]string, error) {
	coll, err := transfer.ImportCollection(f)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(coll.CVs))
	for _, cv := range coll.CVs {
		name := cv.Name
		if name == "" {
			name = models.ImportedCVName(time.Now())
		}
		ids = append(ids, a.Store.AddCV(name, &cv.Content))
	}
	return ids, nil
}
