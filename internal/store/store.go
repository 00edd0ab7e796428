// Package store holds the CV collection and the active CV selection.
// Every mutation re-derives the active CV view and persists the
// collection through a Persister.
package store

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/khrees2412/cvblue/pkg/models"
)

// Snapshot is the durable part of the store
type Snapshot struct {
	CVs        []models.CV `json:"cvs"`
	ActiveCVID *string     `json:"activeCVId"`
}

// Persister reads and writes snapshots. Load returns nil, nil when nothing
// has been stored yet.
type Persister interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

// View is the projection of the active CV. Fields hold defaults when no
// CV is active or the active id is unknown.
type View struct {
	ActiveCV     *models.CV
	PersonalInfo models.PersonalInfo
	Experiences  []models.Experience
	Educations   []models.Education
	Skills       []string
	Languages    []models.Language
	Projects     []models.Project
}

// Store is the CV state container. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	cvs       []models.CV
	activeID  string
	view      View
	hydrated  bool
	persister Persister
	degraded  bool

	now        func() time.Time
	newID      func() string
	lastLangID int64
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the time source used for timestamps and language ids
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the id source for CVs and nested entries
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New creates an empty, unhydrated store. A nil persister keeps the store
// in memory only.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.view = project(s.cvs, s.activeID)
	return s
}

// Hydrate loads the persisted snapshot. A load failure is logged and the
// store continues in memory; it is still marked hydrated.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() { s.hydrated = true }()
	if s.persister == nil {
		return nil
	}

	snap, err := s.persister.Load(ctx)
	if err != nil {
		log.Printf("[STORE] storage unavailable, continuing in memory: %v", err)
		s.degraded = true
		return nil
	}
	if snap == nil {
		return nil
	}

	s.cvs = snap.CVs
	for i := range s.cvs {
		s.cvs[i].Normalize()
		for _, l := range s.cvs[i].Languages {
			if l.ID > s.lastLangID {
				s.lastLangID = l.ID
			}
		}
	}
	s.activeID = ""
	if snap.ActiveCVID != nil && s.indexOf(*snap.ActiveCVID) >= 0 {
		s.activeID = *snap.ActiveCVID
	}
	s.view = project(s.cvs, s.activeID)
	return nil
}

// HasHydrated reports whether Hydrate has completed
func (s *Store) HasHydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Degraded reports whether storage failed and the store is memory-only
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// Close writes the final snapshot
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persister == nil || s.degraded || !s.hydrated {
		return nil
	}
	return s.persister.Save(context.Background(), s.snapshot())
}

// State returns a deep copy of the durable state
func (s *Store) State() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.snapshot()
}

// CVs returns deep copies of all CVs in collection order
func (s *Store) CVs() []models.CV {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CV, len(s.cvs))
	for i := range s.cvs {
		out[i] = *s.cvs[i].Clone()
	}
	return out
}

// CV returns a copy of one CV
func (s *Store) CV(id string) (*models.CV, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrCVNotFound
	}
	return s.cvs[i].Clone(), nil
}

// ActiveCVID returns the active id, or "" when none is selected
func (s *Store) ActiveCVID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// View returns a copy of the active CV projection
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.view
	if v.ActiveCV != nil {
		v.ActiveCV = v.ActiveCV.Clone()
	}
	c := models.Content{
		PersonalInfo: v.PersonalInfo,
		Experiences:  v.Experiences,
		Educations:   v.Educations,
		Skills:       v.Skills,
		Languages:    v.Languages,
		Projects:     v.Projects,
	}.Clone()
	v.PersonalInfo, v.Experiences, v.Educations = c.PersonalInfo, c.Experiences, c.Educations
	v.Skills, v.Languages, v.Projects = c.Skills, c.Languages, c.Projects
	return v
}

// AddCV appends a CV built from seed (nil for an empty CV) and makes it
// active. An empty name gets the dated placeholder.
func (s *Store) AddCV(name string, seed *models.Content) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	content := models.NewContent()
	if seed != nil {
		content = seed.Clone()
		if content.PersonalInfo.Links == nil {
			content.PersonalInfo.Links = []models.Link{{}}
		}
		content.Normalize()
		s.assignIDs(&content)
	}
	if name == "" {
		name = models.DefaultCVName(now)
	}

	cv := models.CV{
		ID:        s.newID(),
		Name:      name,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.cvs = append(s.cvs, cv)
	s.activeID = cv.ID
	s.commit()
	return cv.ID
}

// RemoveCV deletes a CV. Removing the active CV selects the first
// remaining one, or none.
func (s *Store) RemoveCV(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrCVNotFound
	}
	s.cvs = append(s.cvs[:i], s.cvs[i+1:]...)
	if s.activeID == id {
		s.activeID = ""
		if len(s.cvs) > 0 {
			s.activeID = s.cvs[0].ID
		}
	}
	s.commit()
	return nil
}

// UpdateCV applies a metadata patch
func (s *Store) UpdateCV(id string, patch CVPatch) error {
	return s.mutate(id, func(cv *models.CV) error {
		setString(&cv.Name, patch.Name)
		return nil
	})
}

// DuplicateCV deep-copies a CV under a new id and "<name> (Copy)", and
// makes the copy active
func (s *Store) DuplicateCV(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return "", ErrCVNotFound
	}
	now := s.now()
	cp := s.cvs[i].Clone()
	cp.ID = s.newID()
	cp.Name = s.cvs[i].Name + " (Copy)"
	cp.CreatedAt = now
	cp.UpdatedAt = now

	s.cvs = append(s.cvs, *cp)
	s.activeID = cp.ID
	s.commit()
	return cp.ID, nil
}

// SetActiveCV moves the active pointer. Unknown ids are accepted and
// project to the default view.
func (s *Store) SetActiveCV(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = id
	s.commit()
}

// mutate runs fn against the CV with the given id and bumps updatedAt
// when fn succeeds
func (s *Store) mutate(id string, fn func(cv *models.CV) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrCVNotFound
	}
	if err := fn(&s.cvs[i]); err != nil {
		return err
	}
	s.cvs[i].UpdatedAt = s.now()
	s.commit()
	return nil
}

// active resolves the active CV id for the convenience operations
func (s *Store) active() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeID == "" || s.indexOf(s.activeID) < 0 {
		return "", ErrNoActiveCV
	}
	return s.activeID, nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.cvs {
		if s.cvs[i].ID == id {
			return i
		}
	}
	return -1
}

// commit re-derives the view and persists. Callers hold the write lock.
func (s *Store) commit() {
	s.view = project(s.cvs, s.activeID)
	if s.persister == nil || s.degraded {
		return
	}
	if err := s.persister.Save(context.Background(), s.snapshot()); err != nil {
		log.Printf("[STORE] failed to persist CVs, continuing in memory: %v", err)
		s.degraded = true
	}
}

func (s *Store) snapshot() *Snapshot {
	snap := &Snapshot{CVs: make([]models.CV, len(s.cvs))}
	for i := range s.cvs {
		snap.CVs[i] = *s.cvs[i].Clone()
	}
	if s.activeID != "" && s.indexOf(s.activeID) >= 0 {
		id := s.activeID
		snap.ActiveCVID = &id
	}
	return snap
}

func project(cvs []models.CV, activeID string) View {
	for i := range cvs {
		if cvs[i].ID != activeID {
			continue
		}
		cv := &cvs[i]
		return View{
			ActiveCV:     cv,
			PersonalInfo: cv.PersonalInfo,
			Experiences:  cv.Experiences,
			Educations:   cv.Educations,
			Skills:       cv.Skills,
			Languages:    cv.Languages,
			Projects:     cv.Projects,
		}
	}
	empty := models.NewContent()
	return View{
		PersonalInfo: empty.PersonalInfo,
		Experiences:  empty.Experiences,
		Educations:   empty.Educations,
		Skills:       empty.Skills,
		Languages:    empty.Languages,
		Projects:     empty.Projects,
	}
}
