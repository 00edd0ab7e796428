package transfer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/khrees2412/cvblue/internal/codec"
	"github.com/khrees2412/cvblue/pkg/models"
)

// Result describes a written export file
type Result struct {
	FileName string
	Path     string
	Format   Format
	Count    int
}

// Exporter writes export files into Dir
type Exporter struct {
	Dir string
	Now func() time.Time
}

// NewExporter returns an exporter writing to dir
func NewExporter(dir string) *Exporter {
	return &Exporter{Dir: dir, Now: time.Now}
}

// MarshalCV serializes the single-CV envelope
func MarshalCV(content models.Content, format Format) ([]byte, error) {
	return marshal(content, format, SingleRoot)
}

// MarshalCollection serializes the collection envelope
func MarshalCollection(c models.Collection, format Format) ([]byte, error) {
	return marshal(c, format, CollectionRoot)
}

func marshal(v any, format Format, root string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(v, "", "  ")
	case FormatXML:
		s, err := codec.Encode(v, root)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// ExportCV writes one CV's content to "<slug(name)>-<date>.<ext>"
func (e *Exporter) ExportCV(content models.Content, format Format, name string) (*Result, error) {
	data, err := MarshalCV(content, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode CV: %w", err)
	}
	fileName := SingleFileName(name, format, e.now())
	path, err := e.write(fileName, data)
	if err != nil {
		return nil, err
	}
	return &Result{FileName: fileName, Path: path, Format: format, Count: 1}, nil
}

// ExportCollection writes the CVs whose ids are in selected, or all of
// them when selected is nil. An empty result is ErrEmptySelection.
func (e *Exporter) ExportCollection(cvs []models.CV, format Format, selected []string) (*Result, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}

	chosen := cvs
	if selected != nil {
		chosen = make([]models.CV, 0, len(selected))
		for _, cv := range cvs {
			if slices.Contains(selected, cv.ID) {
				chosen = append(chosen, cv)
			}
		}
	}
	if len(chosen) == 0 {
		return nil, ErrEmptySelection
	}

	now := e.now()
	envelope := models.Collection{
		CVs:        chosen,
		ExportedAt: now.UTC(),
		TotalCVs:   len(chosen),
	}
	data, err := MarshalCollection(envelope, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	fileName := CollectionFileName(format, now)
	path, err := e.write(fileName, data)
	if err != nil {
		return nil, err
	}
	return &Result{FileName: fileName, Path: path, Format: format, Count: len(chosen)}, nil
}

func (e *Exporter) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Exporter) write(fileName string, data []byte) (string, error) {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", fileName, err)
	}
	return path, nil
}
