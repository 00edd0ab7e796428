package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/khrees2412/cvblue/internal/render"
	"github.com/khrees2412/cvblue/internal/transfer"
	"github.com/khrees2412/cvblue/pkg/models"
)

// Status of a generation job
type Status string

const (
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// ErrNotReady is returned by Download while the job is still pending
var ErrNotReady = errors.New("PDF is still generating")

// Job is a background generation whose result can be downloaded once ready
type Job struct {
	Doc *render.Document

	mu     sync.Mutex
	status Status
	data   []byte
	err    error
	done   chan struct{}
}

// Start begins generating doc in the background
func Start(ctx context.Context, gen Generator, doc *render.Document) *Job {
	j := &Job{Doc: doc, status: StatusPending, done: make(chan struct{})}
	go func() {
		defer close(j.done)
		data, err := gen.Generate(ctx, doc)

		j.mu.Lock()
		defer j.mu.Unlock()
		if err != nil {
			j.status, j.err = StatusFailed, err
			return
		}
		j.status, j.data = StatusReady, data
	}()
	return j
}

// Status reports the job's current state
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Err is the generation error of a failed job
func (j *Job) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// Wait blocks until the job finishes or ctx is done
func (j *Job) Wait(ctx context.Context) error {
	select {
	case <-j.done:
		return j.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Download writes the finished PDF into dir. An empty name uses FileName.
func (j *Job) Download(dir, name string) (string, error) {
	j.mu.Lock()
	status, data, genErr := j.status, j.data, j.err
	j.mu.Unlock()

	switch status {
	case StatusPending:
		return "", ErrNotReady
	case StatusFailed:
		return "", genErr
	}

	if name == "" {
		name = FileName(j.Doc)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write PDF: %w", err)
	}
	return path, nil
}

// BatchResult is one written file from GenerateAll
type BatchResult struct {
	CVID string
	Path string
}

// GenerateAll renders and prints every CV under layout into dir, with at
// most limit browsers running at once. The first failure cancels the rest.
// CVs whose file names would collide get their short id in the name.
func GenerateAll(ctx context.Context, gen Generator, cvs []models.CV, layout render.Layout, dir string, limit int) ([]BatchResult, error) {
	if limit < 1 {
		limit = 1
	}

	docs := make([]*render.Document, len(cvs))
	taken := make(map[string]int, len(cvs))
	for i := range cvs {
		doc, err := render.Render(&cvs[i], layout)
		if err != nil {
			return nil, err
		}
		docs[i] = doc
		taken[FileName(doc)]++
	}

	results := make([]BatchResult, len(cvs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range cvs {
		i := i
		cv, doc := &cvs[i], docs[i]
		name := FileName(doc)
		if taken[name] > 1 {
			name = batchFileName(doc, cv.ID)
		}
		g.Go(func() error {
			job := Start(gctx, gen, doc)
			if err := job.Wait(gctx); err != nil {
				return fmt.Errorf("%s: %w", cv.Name, err)
			}
			path, err := job.Download(dir, name)
			if err != nil {
				return err
			}
			results[i] = BatchResult{CVID: cv.ID, Path: path}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// batchFileName is <slug>-<short id>-<layout>.pdf
func batchFileName(doc *render.Document, id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s-%s-%s.pdf", transfer.Slug(doc.Title), id, doc.Layout)
}
