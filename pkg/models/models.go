package models

import (
	"fmt"
	"time"
)

// Link is a labelled hyperlink shown in the CV header
type Link struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// PersonalInfo holds the CV owner's contact details.
// Fields are optional for storage; Validate enforces the submission rules.
type PersonalInfo struct {
	Name     string `json:"name" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	Links    []Link `json:"links"`
	AboutMe  string `json:"aboutMe"`
}

// Experience represents one work experience entry
type Experience struct {
	ID               string   `json:"id"`
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	StartDate        string   `json:"startDate"` // YYYY-MM
	EndDate          string   `json:"endDate"`   // ignored when Current is set
	Current          bool     `json:"current"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements"`
}

// Education represents one education entry
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	GPA         string `json:"gpa"` // 0-4 scale, optional
	Description string `json:"description"`
}

// Language is a spoken language with a 1-5 proficiency level
type Language struct {
	ID    int64  `json:"id"`
	Name  string `json:"name" validate:"required"`
	Level int    `json:"level" validate:"min=1,max=5"`
}

// Project represents a portfolio project
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Role         string   `json:"role"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
	Date         string   `json:"date"`   // YYYY-MM
	Images       []string `json:"images" validate:"max=5"` // data URIs
}

// Content is the editable body of a CV. It doubles as the single-CV
// import/export envelope.
type Content struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Experiences  []Experience `json:"experiences"`
	Educations   []Education  `json:"educations"`
	Skills       []string     `json:"skills"`
	Languages    []Language   `json:"languages"`
	Projects     []Project    `json:"projects"`
}

// CV is one named resume document
type CV struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Content
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Collection is the envelope used when exporting several CVs at once
type Collection struct {
	CVs        []CV      `json:"cvs"`
	ExportedAt time.Time `json:"exportedAt"`
	TotalCVs   int       `json:"totalCVs"`
}

// MaxProjectImages is the number of images a project may carry
const MaxProjectImages = 5

// MaxImageSize is the intake ceiling for a single project image, in bytes
const MaxImageSize = 2 * 1024 * 1024

var levelLabels = map[int]string{
	1: "Beginner",
	2: "Intermediate",
	3: "Advanced",
	4: "Native",
	5: "Fluent",
}

// LevelLabel returns the display label of a language level.
// Unknown levels read as Beginner.
func LevelLabel(level int) string {
	if label, ok := levelLabels[level]; ok {
		return label
	}
	return levelLabels[1]
}

// DefaultCVName returns the placeholder name given to new CVs
func DefaultCVName(now time.Time) string {
	return fmt.Sprintf("Untitled CV %d/%d/%d", int(now.Month()), now.Day(), now.Year())
}

// ImportedCVName names an imported CV that carries no name of its own
func ImportedCVName(now time.Time) string {
	return fmt.Sprintf("Imported CV %d/%d/%d", int(now.Month()), now.Day(), now.Year())
}

// NewContent returns an empty CV body with the default blank link
func NewContent() Content {
	return Content{
		PersonalInfo: PersonalInfo{Links: []Link{{URL: "", Title: ""}}},
		Experiences:  []Experience{},
		Educations:   []Education{},
		Skills:       []string{},
		Languages:    []Language{},
		Projects:     []Project{},
	}
}

// Normalize replaces nil collections with empty ones so the stored
// shape is always complete.
func (c *Content) Normalize() {
	if c.PersonalInfo.Links == nil {
		c.PersonalInfo.Links = []Link{}
	}
	if c.Experiences == nil {
		c.Experiences = []Experience{}
	}
	if c.Educations == nil {
		c.Educations = []Education{}
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.Languages == nil {
		c.Languages = []Language{}
	}
	if c.Projects == nil {
		c.Projects = []Project{}
	}
	for i := range c.Experiences {
		if c.Experiences[i].Responsibilities == nil {
			c.Experiences[i].Responsibilities = []string{}
		}
		if c.Experiences[i].Achievements == nil {
			c.Experiences[i].Achievements = []string{}
		}
	}
	for i := range c.Projects {
		if c.Projects[i].Technologies == nil {
			c.Projects[i].Technologies = []string{}
		}
		if c.Projects[i].Images == nil {
			c.Projects[i].Images = []string{}
		}
	}
}

// Clone returns a deep copy of the content
func (c Content) Clone() Content {
	out := c
	out.PersonalInfo.Links = cloneSlice(c.PersonalInfo.Links)
	out.Skills = cloneSlice(c.Skills)
	out.Languages = cloneSlice(c.Languages)

	if c.Experiences != nil {
		out.Experiences = make([]Experience, len(c.Experiences))
		for i, e := range c.Experiences {
			e.Responsibilities = cloneSlice(e.Responsibilities)
			e.Achievements = cloneSlice(e.Achievements)
			out.Experiences[i] = e
		}
	}
	out.Educations = cloneSlice(c.Educations)
	if c.Projects != nil {
		out.Projects = make([]Project, len(c.Projects))
		for i, p := range c.Projects {
			p.Technologies = cloneSlice(p.Technologies)
			p.Images = cloneSlice(p.Images)
			out.Projects[i] = p
		}
	}
	return out
}

// Clone returns a deep copy of the CV
func (cv *CV) Clone() *CV {
	out := *cv
	out.Content = cv.Content.Clone()
	return &out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// ExportRecord is one entry of the export history
type ExportRecord struct {
	ID         int       `json:"id"`
	FileName   string    `json:"file_name"`
	Path       string    `json:"path"`
	Format     string    `json:"format"` // json, xml, pdf
	CVCount    int       `json:"cv_count"`
	ExportedAt time.Time `json:"exported_at"`
}
