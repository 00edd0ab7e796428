package store

import (
	"github.com/khrees2412/cvblue/pkg/models"
)

// Explicit operations address a CV by id whether or not it is active.

// UpdatePersonalInfoInCV merges the set fields of patch into the CV's personal info
func (s *Store) UpdatePersonalInfoInCV(cvID string, patch PersonalInfoPatch) error {
	return s.mutate(cvID, func(cv *models.CV) error {
		patch.apply(&cv.PersonalInfo)
		return nil
	})
}

// AddExperienceToCV appends an experience, assigning an id when it has
// none or its id is taken. It returns the stored id.
func (s *Store) AddExperienceToCV(cvID string, exp models.Experience) (string, error) {
	err := s.mutate(cvID, func(cv *models.CV) error {
		if exp.ID == "" || indexExperience(cv.Experiences, exp.ID) >= 0 {
			exp.ID = s.newID()
		}
		exp.Responsibilities = append([]string{}, exp.Responsibilities...)
		exp.Achievements = append([]string{}, exp.Achievements...)
		if exp.Current {
			exp.EndDate = ""
		}
		cv.Experiences = append(cv.Experiences, exp)
		return nil
	})
	if err != nil {
		return "", err
	}
	return exp.ID, nil
}

// RemoveExperienceFromCV deletes an experience
func (s *Store) RemoveExperienceFromCV(cvID, expID string) error {
	return s.mutate(cvID, func(cv *models.CV) error {
		i := indexExperience(cv.Experiences, expID)
		if i < 0 {
			return ErrItemNotFound
		}
		cv.Experiences = append(cv.Experiences[:i:i], cv.Experiences[i+1:]...)
		return nil
	})
}

// UpdateExperienceInCV applies a partial update to an experience
func (s *Store) UpdateExperienceInCV(cvID, expID string, patch ExperiencePatch) error {
	return s.mutate(cvID, func(cv *models.CV) error {
		i := indexExperience(cv.Experiences, expID)
		if i < 0 {
			return ErrItemNotFound
		}
		patch.apply(&cv.Experiences[i])
		if cv.Experiences[i].Current {
			cv.Experiences[i].EndDate = ""
		}
		return nil
	})
}

// AddEducationToCV appends an education entry and returns its id
func (s *Store) AddEducationToCV(cvID string, edu models.Education) (string, error) {
	err := s.mutate(cvID, func(cv *models.CV) error {
		if edu.ID == "" || indexEducation(cv.Educations, edu.ID) >= 0 {
			edu.ID = s.newID()
		}
		if edu.Current {
			edu.EndDate = ""
		}
		cv.Educations = append(cv.Educations, edu)
		return nil
	})
	if err != nil {
		return "", err
	}
	return edu.ID, nil
}

// RemoveEducationFromCV deletes an education entry
func (s *Store) RemoveEducationFromCV(cvID, eduID string) error {
	return s.mutate(cvID, func(cv *models.CV) error {
		i := indexEducation(cv.Educations, eduID)
		if i < 0 {
			return ErrItemNotFound
		}
		cv.Educations = append(cv.Educations[:i:i], cv.Educations[i+1:]...)
		return nil
	})
}

// UpdateEducationInCV applies a partial update to an education entry
func (s *Store) UpdateEducationInCV(cvID, eduID string, patch EducationPatch) error {
	return s.mutate(cvID, func(cv *models.CV) error {
		i := indexEducation(cv.Educations, eduID)
		if i < 0 {
			return ErrItemNotFound
		}
		patch.apply(&cv.Educations[i])
		if cv.Educations[i].Current {
			cv.Educations[i].EndDate = ""
		}
		return nil
	})
}

// AddProjectToCV appends a project and returns its id
func (s *Store) AddProjectToCV(cvID string, p models.Project) (string, error) {
	err := s.mutate(cvID, func(cv *models.CV) error {
		if p.ID == "" || indexProject(cv.Projects, p.ID) >= 0 {
			p.ID = s.newID()
		}
		p.Technologies = append([]string{}, p.Technologies...)
		p.Images = append([]string{}, p.Images...)
		cv.Projects = append(cv.Projects, p)
		return nil
	})
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

// RemoveProjectFromCV deletes a project
func (s *Store) RemoveProjectFromCV(cvID, projectID string) error {
	return s.mutate(cvID, func(cv *models.CV) error {
		i := indexProject(cv.Projects, projectID)
		if i < 0 {
			return ErrItemNotFound
		}
		cv.Projects = append(cv.Projects[:i:i], cv.Projects[i+1:]...)
		return nil
	})
}

// UpdateProjectInCV applies a partial update to a project
func (s *Store) UpdateProjectInCV(cvID, projectID string, patch ProjectPatch) error {
	return s.mutate(cvID, func(cv *models.CV) error {
		i := indexProject(cv.Projects, projectID)
		if i < 0 {
			return ErrItemNotFound
		}
		patch.apply(&cv.Projects[i])
		return nil
	})
}

// UpdateSkillsInCV replaces the skill list, dropping duplicates
func (s *Store) UpdateSkillsInCV(cvID string, skills []string) error {
	return s.mutate(cvID, func(cv *models.CV) error {
		cv.Skills = models.UniqueSkills(skills)
		return nil
	})
}

// UpdateLanguagesInCV replaces the language list. Languages without an
// id, or with an id already used in the list, get a fresh one.
func (s *Store) UpdateLanguagesInCV(cvID string, languages []models.Language) error {
	return s.mutate(cvID, func(cv *models.CV) error {
		cv.Languages = s.withLanguageIDs(languages)
		return nil
	})
}

// ImportDataToCV replaces all six content fields of a CV
func (s *Store) ImportDataToCV(cvID string, data models.Content) error {
	return s.mutate(cvID, func(cv *models.CV) error {
		content := data.Clone()
		content.Normalize()
		s.assignIDs(&content)
		cv.Content = content
		return nil
	})
}

// Implicit operations resolve the active CV and delegate. They return
// ErrNoActiveCV without touching state when nothing is active.

// UpdatePersonalInfo patches the active CV's personal info
func (s *Store) UpdatePersonalInfo(patch PersonalInfoPatch) error {
	id, err := s.active()
	if err != nil {
		return err
	}
	return s.UpdatePersonalInfoInCV(id, patch)
}

// AddExperience adds an experience to the active CV
func (s *Store) AddExperience(exp models.Experience) (string, error) {
	id, err := s.active()
	if err != nil {
		return "", err
	}
	return s.AddExperienceToCV(id, exp)
}

// RemoveExperience removes an experience from the active CV
func (s *Store) RemoveExperience(expID string) error {
	id, err := s.active()
	if err != nil {
		return err
	}
	return s.RemoveExperienceFromCV(id, expID)
}

// UpdateExperience patches an experience of the active CV
func (s *Store) UpdateExperience(expID string, patch ExperiencePatch) error {
	id, err := s.active()
	if err != nil {
		return err
	}
	return s.UpdateExperienceInCV(id, expID, patch)
}

// AddEducation adds an education entry to the active CV
func (s *Store) AddEducation(edu models.Education) (string, error) {
	id, err := s.active()
	if err != nil {
		return "", err
	}
	return s.AddEducationToCV(id, edu)
}

// RemoveEducation removes an education entry from the active CV
func (s *Store) RemoveEducation(eduID string) error {
	id, err := s.active()
	if err != nil {
		return err
	}
	return s.RemoveEducationFromCV(id, eduID)
}

// UpdateEducation patches an education entry of the active CV
func (s *Store) UpdateEducation(eduID string, patch EducationPatch) error {
	id, err := s.active()
	if err != nil {
		return err
	}
	return s.UpdateEducationInCV(id, eduID, patch)
}

// AddProject adds a project to the active CV
func (s *Store) AddProject(p models.Project) (string, error) {
	id, err := s.active()
	if err != nil {
		return "", err
	}
	return s.AddProjectToCV(id, p)
}

// RemoveProject removes a project from the active CV
func (s *Store) RemoveProject(projectID string) error {
	id, err := s.active()
	if err != nil {
		return err
	}
	return s.RemoveProjectFromCV(id, projectID)
}

// UpdateProject patches a project of the active CV
func (s *Store) UpdateProject(projectID string, patch ProjectPatch) error {
	id, err := s.active()
	if err != nil {
		return err
	}
	return s.UpdateProjectInCV(id, projectID, patch)
}

// UpdateSkills replaces the active CV's skills
func (s *Store) UpdateSkills(skills []string) error {
	id, err := s.active()
	if err != nil {
		return err
	}
	return s.UpdateSkillsInCV(id, skills)
}

// UpdateLanguages replaces the active CV's languages
func (s *Store) UpdateLanguages(languages []models.Language) error {
	id, err := s.active()
	if err != nil {
		return err
	}
	return s.UpdateLanguagesInCV(id, languages)
}

// ImportData replaces the active CV's content
func (s *Store) ImportData(data models.Content) error {
	id, err := s.active()
	if err != nil {
		return err
	}
	return s.ImportDataToCV(id, data)
}

// assignIDs fills missing or repeated nested ids. Callers hold the write lock.
func (s *Store) assignIDs(c *models.Content) {
	seen := map[string]bool{}
	for i := range c.Experiences {
		if id := c.Experiences[i].ID; id == "" || seen[id] {
			c.Experiences[i].ID = s.newID()
		}
		seen[c.Experiences[i].ID] = true
		if c.Experiences[i].Current {
			c.Experiences[i].EndDate = ""
		}
	}
	seen = map[string]bool{}
	for i := range c.Educations {
		if id := c.Educations[i].ID; id == "" || seen[id] {
			c.Educations[i].ID = s.newID()
		}
		seen[c.Educations[i].ID] = true
		if c.Educations[i].Current {
			c.Educations[i].EndDate = ""
		}
	}
	seen = map[string]bool{}
	for i := range c.Projects {
		if id := c.Projects[i].ID; id == "" || seen[id] {
			c.Projects[i].ID = s.newID()
		}
		seen[c.Projects[i].ID] = true
	}
	c.Skills = models.UniqueSkills(c.Skills)
	c.Languages = s.withLanguageIDs(c.Languages)
}

// withLanguageIDs copies languages, giving each a unique millisecond
// timestamp id where needed
func (s *Store) withLanguageIDs(in []models.Language) []models.Language {
	out := make([]models.Language, len(in))
	seen := make(map[int64]bool, len(in))
	for i, l := range in {
		if l.ID == 0 || seen[l.ID] {
			l.ID = s.nextLanguageID()
		}
		if l.ID > s.lastLangID {
			s.lastLangID = l.ID
		}
		seen[l.ID] = true
		out[i] = l
	}
	return out
}

func (s *Store) nextLanguageID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastLangID {
		id = s.lastLangID + 1
	}
	s.lastLangID = id
	return id
}

func indexExperience(items []models.Experience, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func indexEducation(items []models.Education, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func indexProject(items []models.Project, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
