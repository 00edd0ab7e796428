package store

import "github.com/khrees2412/cvblue/pkg/models"

// Patch types carry optional fields: nil leaves the stored value unchanged.

// CVPatch updates CV metadata
type CVPatch struct {
	Name *string
}

// PersonalInfoPatch is a partial personal info update
type PersonalInfoPatch struct {
	Name     *string
	Title    *string
	Email    *string
	Phone    *string
	Location *string
	LinkedIn *string
	Links    *[]models.Link
	AboutMe  *string
}

func (p PersonalInfoPatch) apply(info *models.PersonalInfo) {
	setString(&info.Name, p.Name)
	setString(&info.Title, p.Title)
	setString(&info.Email, p.Email)
	setString(&info.Phone, p.Phone)
	setString(&info.Location, p.Location)
	setString(&info.LinkedIn, p.LinkedIn)
	setString(&info.AboutMe, p.AboutMe)
	if p.Links != nil {
		info.Links = append([]models.Link{}, (*p.Links)...)
	}
}

// ExperiencePatch is a partial experience update
type ExperiencePatch struct {
	Company          *string
	Position         *string
	StartDate        *string
	EndDate          *string
	Current          *bool
	Description      *string
	Responsibilities *[]string
	Achievements     *[]string
}

func (p ExperiencePatch) apply(e *models.Experience) {
	setString(&e.Company, p.Company)
	setString(&e.Position, p.Position)
	setString(&e.StartDate, p.StartDate)
	setString(&e.EndDate, p.EndDate)
	setString(&e.Description, p.Description)
	if p.Current != nil {
		e.Current = *p.Current
	}
	if p.Responsibilities != nil {
		e.Responsibilities = append([]string{}, (*p.Responsibilities)...)
	}
	if p.Achievements != nil {
		e.Achievements = append([]string{}, (*p.Achievements)...)
	}
}

// EducationPatch is a partial education update
type EducationPatch struct {
	Institution *string
	Degree      *string
	Field       *string
	StartDate   *string
	EndDate     *string
	Current     *bool
	GPA         *string
	Description *string
}

func (p EducationPatch) apply(e *models.Education) {
	setString(&e.Institution, p.Institution)
	setString(&e.Degree, p.Degree)
	setString(&e.Field, p.Field)
	setString(&e.StartDate, p.StartDate)
	setString(&e.EndDate, p.EndDate)
	setString(&e.GPA, p.GPA)
	setString(&e.Description, p.Description)
	if p.Current != nil {
		e.Current = *p.Current
	}
}

// ProjectPatch is a partial project update
type ProjectPatch struct {
	Name         *string
	Description  *string
	Role         *string
	Technologies *[]string
	Link         *string
	Date         *string
	Images       *[]string
}

func (p ProjectPatch) apply(pr *models.Project) {
	setString(&pr.Name, p.Name)
	setString(&pr.Description, p.Description)
	setString(&pr.Role, p.Role)
	setString(&pr.Link, p.Link)
	setString(&pr.Date, p.Date)
	if p.Technologies != nil {
		pr.Technologies = append([]string{}, (*p.Technologies)...)
	}
	if p.Images != nil {
		pr.Images = append([]string{}, (*p.Images)...)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Ptr returns a pointer to v, for building patches
func Ptr[T any](v T) *T {
	return &v
}
