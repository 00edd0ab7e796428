package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/khrees2412/cvblue/pkg/models"
)

// Layout names a visual arrangement of the same CV data
type Layout string

const (
	Classic Layout = "classic"
	Modern  Layout = "modern"
)

// ErrUnknownLayout is returned for layout names without a builder
var ErrUnknownLayout = errors.New("unknown layout")

type builder func(cv *models.CV) *Document

var layouts = map[Layout]builder{
	Classic: buildClassic,
	Modern:  buildModern,
}

// Layouts lists the available layouts
func Layouts() []Layout {
	return []Layout{Classic, Modern}
}

// ParseLayout accepts a layout name in any case
func ParseLayout(s string) (Layout, error) {
	l := Layout(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := layouts[l]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLayout, s)
	}
	return l, nil
}

// Render builds the document for cv under layout. cv is not modified.
func Render(cv *models.CV, layout Layout) (*Document, error) {
	if cv == nil {
		return nil, errors.New("render: nil CV")
	}
	build, ok := layouts[layout]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, layout)
	}
	doc := build(cv.Clone())
	doc.Layout = layout
	doc.Title = cv.Name
	return doc, nil
}

func experienceBlocks(exps []models.Experience, responsibilitiesTitle string) []Block {
	var blocks []Block
	for _, e := range models.SortExperiences(exps) {
		b := Block{
			Heading:    e.Company,
			Subheading: e.Position,
			Meta:       DateRange(e.StartDate, e.EndDate, e.Current),
			Bullets:    BulletLines(e.Description),
		}
		if items := nonEmpty(e.Responsibilities); len(items) > 0 {
			b.Groups = append(b.Groups, Group{Title: responsibilitiesTitle, Items: items})
		}
		if items := nonEmpty(e.Achievements); len(items) > 0 {
			b.Groups = append(b.Groups, Group{Title: "Key Achievements:", Items: items})
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func educationBlocks(edus []models.Education) []Block {
	var blocks []Block
	for _, e := range models.SortEducations(edus) {
		heading := e.Degree
		if e.Field != "" {
			heading = strings.TrimSpace(e.Degree + " in " + e.Field)
		}
		meta := DateRange(e.StartDate, e.EndDate, e.Current)
		if gpa := strings.TrimSpace(e.GPA); gpa != "" {
			meta += " | GPA: " + gpa
		}
		blocks = append(blocks, Block{
			Heading:    heading,
			Subheading: e.Institution,
			Meta:       meta,
			Text:       strings.TrimSpace(e.Description),
		})
	}
	return blocks
}

func projectBlocks(projects []models.Project) []Block {
	var blocks []Block
	for _, p := range models.SortProjects(projects) {
		b := Block{
			Heading:    p.Name,
			Subheading: p.Role,
			Meta:       FormatMonth(p.Date),
			Text:       strings.TrimSpace(p.Description),
			Tags:       nonEmpty(p.Technologies),
			Images:     ProjectImages(p.Images),
		}
		if link := strings.TrimSpace(p.Link); link != "" {
			b.Contacts = []Contact{{Text: "View Project", URL: link}}
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func summarySection(title string, p models.PersonalInfo) (Section, bool) {
	about := strings.TrimSpace(p.AboutMe)
	if about == "" {
		return Section{}, false
	}
	return Section{Kind: SectionSummary, Title: title, Blocks: []Block{{Text: about}}}, true
}

// appendSection adds s when it has blocks
func appendSection(sections []Section, s Section) []Section {
	if len(s.Blocks) == 0 {
		return sections
	}
	return append(sections, s)
}
