package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khrees2412/cvblue/internal/codec"
	"github.com/khrees2412/cvblue/internal/config"
	"github.com/khrees2412/cvblue/internal/database"
	"github.com/khrees2412/cvblue/internal/media"
	"github.com/khrees2412/cvblue/internal/store"
	"github.com/khrees2412/cvblue/internal/transfer"
	"github.com/khrees2412/cvblue/pkg/models"
)

func TestNotify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unsupported format", fmt.Errorf("import: %w", transfer.ErrUnsupportedFormat), "Unsupported file format. Please use JSON or XML files."},
		{"empty selection", transfer.ErrEmptySelection, "Please select at least one CV to export."},
		{"bad xml", &transfer.MalformedPayloadError{Format: transfer.FormatXML, Cause: &codec.FormatError{Root: "cv-blue"}}, "Failed to import: invalid XML format."},
		{"bad json", &transfer.MalformedPayloadError{Format: transfer.FormatJSON, Cause: errors.New("eof")}, "Failed to import: the file could not be parsed."},
		{"bad structure", &transfer.InvalidStructureError{Envelope: "CV"}, "Failed to import: invalid CV data structure."},
		{"no active cv", store.ErrNoActiveCV, "No active CV. Create or select a CV first."},
		{"no target", fmt.Errorf("%w: pick one", ErrNoTarget), "No active CV. Create or select a CV first."},
		{"image type", fmt.Errorf("%w (got text/plain)", media.ErrNotImage), "You can only upload image files!"},
		{"other", errors.New("disk full"), "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Notify(tt.err))
		})
	}
}

func TestIsSoft(t *testing.T) {
	assert.True(t, IsSoft(fmt.Errorf("update: %w", store.ErrNoActiveCV)))
	assert.False(t, IsSoft(store.ErrCVNotFound))
	assert.False(t, IsSoft(fmt.Errorf("%w: pick one", ErrNoTarget)))
	assert.False(t, IsSoft(nil))
}

func TestAppLifecycle(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		DataDir:          dir,
		OutputDir:        filepath.Join(dir, "out"),
		DebounceInterval: time.Hour,
	}

	db, err := database.Open(dir)
	require.NoError(t, err)
	a := New(cfg, db, store.New(database.NewStorage(db, database.Namespace)))
	require.NoError(t, a.Store.Hydrate(context.Background()))

	id := a.Store.AddCV("Work", nil)
	a.Pending.Schedule("rename", func() {
		_ = a.Store.UpdateCV(id, store.CVPatch{Name: store.Ptr("Work (final)")})
	})

	res, err := a.Exporter.ExportCV(a.Store.View().ActiveCV.Content, transfer.FormatJSON, "Work")
	require.NoError(t, err)
	a.RecordExport(context.Background(), res.FileName, res.Path, string(res.Format), res.Count)
	require.NoError(t, a.Close())

	// pending rename was flushed before the final save
	db, err = database.Open(dir)
	require.NoError(t, err)
	defer db.Close()
	s := store.New(database.NewStorage(db, database.Namespace))
	require.NoError(t, s.Hydrate(context.Background()))
	require.Len(t, s.CVs(), 1)
	assert.Equal(t, "Work (final)", s.CVs()[0].Name)

	recent, err := database.GetRecentExports(context.Background(), db, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.True(t, strings.HasPrefix(recent[0].FileName, "work-"))
}

func TestNotifyValidation(t *testing.T) {
	info := models.PersonalInfo{Title: "Engineer", Email: "not-an-email"}
	err := info.Validate()
	require.Error(t, err)
	assert.Equal(t, "Name is required; Please enter a valid email", Notify(err))
}

type namedReader struct {
	*strings.Reader
	name string
}

func (n namedReader) Name() string { return n.name }

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	db, err := database.Open(dir)
	require.NoError(t, err)
	a := New(&config.Config{DataDir: dir, OutputDir: dir}, db, store.New(database.NewStorage(db, database.Namespace)))
	require.NoError(t, a.Store.Hydrate(context.Background()))
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestImportCollection(t *testing.T) {
	a := newTestApp(t)
	payload := `{"cvs":[
		{"name":"Backend","personalInfo":{"name":"Jane"},"experiences":[],"educations":[],"skills":["Go"],"languages":[],"projects":[]},
		{"personalInfo":{"name":"Jane"},"skills":[]}
	],"totalCVs":2}`

	ids, err := a.ImportCollection(namedReader{strings.NewReader(payload), "all.json"})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	cvs := a.Store.CVs()
	assert.Equal(t, "Backend", cvs[0].Name)
	assert.Equal(t, []string{"Go"}, cvs[0].Skills)
	assert.True(t, strings.HasPrefix(cvs[1].Name, "Imported CV "))
	assert.NotNil(t, cvs[1].Experiences)
	assert.Equal(t, ids[1], a.Store.ActiveCVID())
}

func TestImportIntoLeavesStoreOnFailure(t *testing.T) {
	a := newTestApp(t)
	id := a.Store.AddCV("Target", nil)
	require.NoError(t, a.Store.UpdateSkills([]string{"Go"}))
	before, _ := a.Store.CV(id)

	err := a.ImportInto(id, namedReader{strings.NewReader(`{"skills":["Rust"]}`), "cv.json"})
	var structure *transfer.InvalidStructureError
	require.ErrorAs(t, err, &structure)

	after, _ := a.Store.CV(id)
	assert.Equal(t, before, after)

	err = a.ImportInto(id, namedReader{strings.NewReader(`{}`), "cv.yaml"})
	assert.ErrorIs(t, err, transfer.ErrUnsupportedFormat)
}

func TestImportIntoReplacesContent(t *testing.T) {
	a := newTestApp(t)
	id := a.Store.AddCV("Target", nil)
	payload := `<?xml version="1.0" encoding="UTF-8"?>
<cv-blue>
<personalInfo><name>Jane</name></personalInfo>
<experiences></experiences>
<educations></educations>
<skills><item>Go</item><item>SQL</item></skills>
<languages></languages>
<projects></projects>
</cv-blue>`

	require.NoError(t, a.ImportInto(id, namedReader{strings.NewReader(payload), "cv.xml"}))
	cv, err := a.Store.CV(id)
	require.NoError(t, err)
	assert.Equal(t, "Jane", cv.PersonalInfo.Name)
	assert.Equal(t, []string{"Go", "SQL"}, cv.Skills)
}
