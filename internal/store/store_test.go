package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/khrees2412/cvblue/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	mu      sync.Mutex
	snap    *Snapshot
	saves   int
	loadErr error
	saveErr error
}

func (m *memPersister) Load(ctx context.Context) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap, m.loadErr
}

func (m *memPersister) Save(ctx context.Context, snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snap = snap
	return nil
}

// tickingClock advances one second per call
func tickingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T) (*Store, *memPersister) {
	p := &memPersister{}
	s := New(p, WithClock(tickingClock()), WithIDGenerator(sequentialIDs()))
	require.NoError(t, s.Hydrate(context.Background()))
	return s, p
}

func TestHydrate(t *testing.T) {
	active := "b"
	p := &memPersister{snap: &Snapshot{
		CVs:        []models.CV{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
		ActiveCVID: &active,
	}}
	s := New(p)
	assert.False(t, s.HasHydrated())

	require.NoError(t, s.Hydrate(context.Background()))

	assert.True(t, s.HasHydrated())
	assert.Equal(t, "b", s.ActiveCVID())
	v := s.View()
	require.NotNil(t, v.ActiveCV)
	assert.Equal(t, "B", v.ActiveCV.Name)
	assert.NotNil(t, v.Experiences, "loaded CVs are normalized")
}

func TestHydrate_EmptyStorage(t *testing.T) {
	s := New(&memPersister{})
	require.NoError(t, s.Hydrate(context.Background()))

	assert.True(t, s.HasHydrated())
	assert.Empty(t, s.CVs())
	assert.Nil(t, s.View().ActiveCV)
}

func TestHydrate_DanglingActiveID(t *testing.T) {
	gone := "missing"
	s := New(&memPersister{snap: &Snapshot{CVs: []models.CV{{ID: "a"}}, ActiveCVID: &gone}})
	require.NoError(t, s.Hydrate(context.Background()))
	assert.Equal(t, "", s.ActiveCVID())
}

func TestHydrate_LoadFailureDegrades(t *testing.T) {
	p := &memPersister{loadErr: errors.New("disk gone")}
	s := New(p)
	require.NoError(t, s.Hydrate(context.Background()))

	assert.True(t, s.HasHydrated())
	assert.True(t, s.Degraded())

	id := s.AddCV("Works anyway", nil)
	assert.Equal(t, id, s.ActiveCVID())
	assert.Equal(t, 0, p.saves)
}

func TestAddCV_Defaults(t *testing.T) {
	s, p := newTestStore(t)

	id := s.AddCV("", nil)

	assert.Equal(t, "id-1", id)
	assert.Equal(t, id, s.ActiveCVID())
	cv, err := s.CV(id)
	require.NoError(t, err)
	assert.Equal(t, "Untitled CV 3/2/2024", cv.Name)
	assert.Equal(t, []models.Link{{}}, cv.PersonalInfo.Links)
	assert.Empty(t, cv.Skills)
	assert.Equal(t, cv.CreatedAt, cv.UpdatedAt)

	require.NotNil(t, p.snap)
	require.NotNil(t, p.snap.ActiveCVID)
	assert.Equal(t, id, *p.snap.ActiveCVID)
	assert.Len(t, p.snap.CVs, 1)
}

func TestAddCV_SeedIsCopied(t *testing.T) {
	s, _ := newTestStore(t)
	seed := &models.Content{Skills: []string{"Go", "Go", "SQL"}, Experiences: []models.Experience{{Company: "Acme"}}}

	id := s.AddCV("Seeded", seed)
	seed.Experiences[0].Company = "Changed"

	cv, err := s.CV(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, cv.Skills)
	assert.Equal(t, "Acme", cv.Experiences[0].Company)
	assert.NotEmpty(t, cv.Experiences[0].ID)
	assert.Equal(t, []models.Link{{}}, cv.PersonalInfo.Links)
	assert.NotNil(t, cv.Projects)
}

func TestRemoveCV_ReselectsFirst(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.AddCV("A", nil)
	b := s.AddCV("B", nil)
	c := s.AddCV("C", nil)
	assert.Equal(t, c, s.ActiveCVID())

	require.NoError(t, s.RemoveCV(c))
	assert.Equal(t, a, s.ActiveCVID())

	require.NoError(t, s.RemoveCV(b))
	assert.Equal(t, a, s.ActiveCVID(), "removing an inactive CV keeps the selection")

	require.NoError(t, s.RemoveCV(a))
	assert.Equal(t, "", s.ActiveCVID())
	assert.Nil(t, s.State().ActiveCVID)

	assert.ErrorIs(t, s.RemoveCV(a), ErrCVNotFound)
}

func TestUpdateCV_RenameBumpsUpdatedAt(t *testing.T) {
	s, _ := newTestStore(t)
	id := s.AddCV("Old", nil)
	before, _ := s.CV(id)

	require.NoError(t, s.UpdateCV(id, CVPatch{Name: Ptr("New")}))

	after, _ := s.CV(id)
	assert.Equal(t, "New", after.Name)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.ErrorIs(t, s.UpdateCV("nope", CVPatch{}), ErrCVNotFound)
}

func TestDuplicateCV_DeepCopy(t *testing.T) {
	s, _ := newTestStore(t)
	orig := s.AddCV("Main", nil)
	_, err := s.AddExperienceToCV(orig, models.Experience{Company: "Acme", Responsibilities: []string{"ship"}})
	require.NoError(t, err)
	require.NoError(t, s.UpdateSkillsInCV(orig, []string{"Go"}))

	first, err := s.DuplicateCV(orig)
	require.NoError(t, err)
	second, err := s.DuplicateCV(orig)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, orig, first)
	assert.Equal(t, second, s.ActiveCVID())

	o, _ := s.CV(orig)
	d, _ := s.CV(first)
	assert.Equal(t, "Main (Copy)", d.Name)
	assert.Equal(t, o.Content, d.Content)
	assert.True(t, d.CreatedAt.After(o.CreatedAt))

	require.NoError(t, s.UpdateExperienceInCV(first, d.Experiences[0].ID, ExperiencePatch{
		Responsibilities: &[]string{"plan"},
	}))
	require.NoError(t, s.UpdateSkillsInCV(first, []string{"Rust"}))

	o, _ = s.CV(orig)
	assert.Equal(t, []string{"ship"}, o.Experiences[0].Responsibilities)
	assert.Equal(t, []string{"Go"}, o.Skills)

	_, err = s.DuplicateCV("nope")
	assert.ErrorIs(t, err, ErrCVNotFound)
}

func TestActiveIDInvariant(t *testing.T) {
	s, _ := newTestStore(t)
	rng := rand.New(rand.NewSource(7))

	for step := 0; step < 300; step++ {
		ids := s.CVs()
		switch op := rng.Intn(3); {
		case op == 0 || len(ids) == 0:
			s.AddCV("", nil)
		case op == 1:
			_ = s.RemoveCV(ids[rng.Intn(len(ids))].ID)
		default:
			_, _ = s.DuplicateCV(ids[rng.Intn(len(ids))].ID)
		}

		active := s.ActiveCVID()
		if active == "" {
			assert.Empty(t, s.CVs(), "step %d: no active CV while CVs exist", step)
			continue
		}
		_, err := s.CV(active)
		require.NoError(t, err, "step %d: active id %s is dangling", step, active)
	}
}

func TestSetActiveCV_UnknownYieldsDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCV("A", nil)

	s.SetActiveCV("ghost")

	v := s.View()
	assert.Nil(t, v.ActiveCV)
	assert.Equal(t, "", v.PersonalInfo.Name)
	assert.Empty(t, v.Experiences)
	assert.Nil(t, s.State().ActiveCVID)
	assert.ErrorIs(t, s.UpdateSkills([]string{"Go"}), ErrNoActiveCV)
}

func TestImplicit_NoActiveCVIsSoftNoop(t *testing.T) {
	s, p := newTestStore(t)
	saves := p.saves

	assert.ErrorIs(t, s.UpdatePersonalInfo(PersonalInfoPatch{Name: Ptr("Ada")}), ErrNoActiveCV)
	_, err := s.AddExperience(models.Experience{})
	assert.ErrorIs(t, err, ErrNoActiveCV)
	assert.ErrorIs(t, s.RemoveEducation("x"), ErrNoActiveCV)
	assert.ErrorIs(t, s.UpdateProject("x", ProjectPatch{}), ErrNoActiveCV)
	assert.ErrorIs(t, s.UpdateLanguages(nil), ErrNoActiveCV)
	assert.ErrorIs(t, s.ImportData(models.NewContent()), ErrNoActiveCV)

	assert.Empty(t, s.CVs())
	assert.Equal(t, saves, p.saves)
}

func TestImplicit_DelegatesToActive(t *testing.T) {
	s, _ := newTestStore(t)
	other := s.AddCV("Other", nil)
	active := s.AddCV("Active", nil)

	require.NoError(t, s.UpdatePersonalInfo(PersonalInfoPatch{Name: Ptr("Ada"), Title: Ptr("Engineer")}))
	expID, err := s.AddExperience(models.Experience{Company: "Acme"})
	require.NoError(t, err)
	require.NoError(t, s.UpdateExperience(expID, ExperiencePatch{Position: Ptr("Lead")}))

	a, _ := s.CV(active)
	o, _ := s.CV(other)
	assert.Equal(t, "Ada", a.PersonalInfo.Name)
	assert.Equal(t, "Lead", a.Experiences[0].Position)
	assert.Equal(t, "", o.PersonalInfo.Name)
	assert.Empty(t, o.Experiences)

	v := s.View()
	assert.Equal(t, "Ada", v.PersonalInfo.Name)
	assert.Len(t, v.Experiences, 1)
}

func TestExplicit_TargetsInactiveCV(t *testing.T) {
	s, _ := newTestStore(t)
	target := s.AddCV("Target", nil)
	s.AddCV("Active", nil)

	eduID, err := s.AddEducationToCV(target, models.Education{Institution: "MIT", EndDate: "2019-06", Current: true})
	require.NoError(t, err)
	projID, err := s.AddProjectToCV(target, models.Project{Name: "Engine"})
	require.NoError(t, err)

	cv, _ := s.CV(target)
	assert.Equal(t, "", cv.Educations[0].EndDate, "current entries drop their end date")
	assert.Empty(t, s.View().Educations)

	require.NoError(t, s.UpdateProjectInCV(target, projID, ProjectPatch{Technologies: &[]string{"Go"}}))
	require.NoError(t, s.RemoveEducationFromCV(target, eduID))

	cv, _ = s.CV(target)
	assert.Empty(t, cv.Educations)
	assert.Equal(t, []string{"Go"}, cv.Projects[0].Technologies)

	_, err = s.AddProjectToCV("nope", models.Project{})
	assert.ErrorIs(t, err, ErrCVNotFound)
}

func TestNestedAdd_UnknownCVReturnsNoID(t *testing.T) {
	s, _ := newTestStore(t)

	id, err := s.AddExperienceToCV("nope", models.Experience{ID: "exp-1"})
	assert.ErrorIs(t, err, ErrCVNotFound)
	assert.Empty(t, id)

	id, err = s.AddEducationToCV("nope", models.Education{ID: "edu-1"})
	assert.ErrorIs(t, err, ErrCVNotFound)
	assert.Empty(t, id)

	id, err = s.AddProjectToCV("nope", models.Project{ID: "proj-1"})
	assert.ErrorIs(t, err, ErrCVNotFound)
	assert.Empty(t, id)
}

func TestNestedUpdate_UnknownItemLeavesCVUntouched(t *testing.T) {
	s, _ := newTestStore(t)
	id := s.AddCV("A", nil)
	before, _ := s.CV(id)

	assert.ErrorIs(t, s.UpdateExperienceInCV(id, "ghost", ExperiencePatch{Company: Ptr("X")}), ErrItemNotFound)
	assert.ErrorIs(t, s.RemoveProjectFromCV(id, "ghost"), ErrItemNotFound)

	after, _ := s.CV(id)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestNestedAdd_UniqueIDs(t *testing.T) {
	s, _ := newTestStore(t)
	id := s.AddCV("A", nil)

	first, err := s.AddExperienceToCV(id, models.Experience{ID: "dup"})
	require.NoError(t, err)
	second, err := s.AddExperienceToCV(id, models.Experience{ID: "dup"})
	require.NoError(t, err)

	assert.Equal(t, "dup", first)
	assert.NotEqual(t, first, second)
}

func TestUpdateExperience_CurrentClearsEndDate(t *testing.T) {
	s, _ := newTestStore(t)
	id := s.AddCV("A", nil)
	expID, err := s.AddExperienceToCV(id, models.Experience{StartDate: "2020-01", EndDate: "2022-02"})
	require.NoError(t, err)

	require.NoError(t, s.UpdateExperienceInCV(id, expID, ExperiencePatch{Current: Ptr(true)}))

	cv, _ := s.CV(id)
	assert.True(t, cv.Experiences[0].Current)
	assert.Equal(t, "", cv.Experiences[0].EndDate)
}

func TestUpdateSkills_Dedupes(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCV("A", nil)

	require.NoError(t, s.UpdateSkills([]string{"Go", "SQL", "Go"}))
	assert.Equal(t, []string{"Go", "SQL"}, s.View().Skills)
}

func TestUpdateLanguages_AssignsUniqueIDs(t *testing.T) {
	fixed := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	s := New(nil, WithClock(func() time.Time { return fixed }))
	require.NoError(t, s.Hydrate(context.Background()))
	s.AddCV("A", nil)

	require.NoError(t, s.UpdateLanguages([]models.Language{
		{Name: "English", Level: 5},
		{Name: "French", Level: 3},
		{ID: 7, Name: "German", Level: 2},
		{ID: 7, Name: "Dutch", Level: 1},
	}))

	langs := s.View().Languages
	require.Len(t, langs, 4)
	seen := map[int64]bool{}
	for _, l := range langs {
		assert.False(t, seen[l.ID], "duplicate id %d", l.ID)
		seen[l.ID] = true
	}
	assert.Equal(t, fixed.UnixMilli(), langs[0].ID)
	assert.Equal(t, int64(7), langs[2].ID)
}

func TestImportDataToCV_ReplacesContent(t *testing.T) {
	s, _ := newTestStore(t)
	id := s.AddCV("A", nil)
	require.NoError(t, s.UpdateSkillsInCV(id, []string{"Old"}))
	_, err := s.AddProjectToCV(id, models.Project{Name: "Old project"})
	require.NoError(t, err)

	data := models.Content{
		PersonalInfo: models.PersonalInfo{Name: "Imported"},
		Skills:       []string{"New"},
	}
	require.NoError(t, s.ImportDataToCV(id, data))

	cv, _ := s.CV(id)
	assert.Equal(t, "Imported", cv.PersonalInfo.Name)
	assert.Equal(t, []string{"New"}, cv.Skills)
	assert.Empty(t, cv.Projects)
	assert.NotNil(t, cv.Projects)
	assert.Equal(t, "A", cv.Name)
}

func TestPersistence_SurvivesReload(t *testing.T) {
	s, p := newTestStore(t)
	id := s.AddCV("Persisted", nil)
	require.NoError(t, s.UpdateSkills([]string{"Go"}))
	require.NoError(t, s.Close())

	reloaded := New(p)
	require.NoError(t, reloaded.Hydrate(context.Background()))

	assert.Equal(t, id, reloaded.ActiveCVID())
	assert.Equal(t, []string{"Go"}, reloaded.View().Skills)
}

func TestPersistence_SaveFailureDegrades(t *testing.T) {
	s, p := newTestStore(t)
	p.saveErr = errors.New("quota exceeded")

	id := s.AddCV("A", nil)
	require.NoError(t, s.UpdateSkills([]string{"Go"}))

	assert.True(t, s.Degraded())
	assert.Equal(t, 1, p.saves, "no retries after storage fails")
	cv, err := s.CV(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, cv.Skills)
}

func TestView_IsACopy(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCV("A", nil)
	require.NoError(t, s.UpdateSkills([]string{"Go"}))

	v := s.View()
	v.Skills[0] = "mutated"
	v.ActiveCV.Name = "mutated"

	assert.Equal(t, []string{"Go"}, s.View().Skills)
	assert.Equal(t, "A", s.View().ActiveCV.Name)
}
