package render

import (
	"fmt"

	"github.com/khrees2412/cvblue/pkg/models"
)

// buildClassic: header across the page, a wide main column and a narrow
// sidebar
func buildClassic(cv *models.CV) *Document {
	p := cv.PersonalInfo

	header := &Header{
		Name:     orDefault(p.Name, "Professional Name"),
		Title:    orDefault(p.Title, "Professional Title"),
		Contacts: personalContacts(p, true),
	}

	var main []Section
	if s, ok := summarySection("Professional Summary", p); ok {
		main = append(main, s)
	}
	main = appendSection(main, Section{
		Kind:   SectionExperience,
		Title:  "Professional Experience",
		Blocks: experienceBlocks(cv.Experiences, "Responsibilities:"),
	})
	main = appendSection(main, Section{
		Kind:   SectionProjects,
		Title:  "Projects",
		Blocks: projectBlocks(cv.Projects),
	})

	var sidebar []Section
	if skills := nonEmpty(cv.Skills); len(skills) > 0 {
		sidebar = append(sidebar, Section{
			Kind:   SectionSkills,
			Title:  "Skills",
			Blocks: []Block{{Tags: skills}},
		})
	}
	sidebar = appendSection(sidebar, Section{
		Kind:   SectionEducation,
		Title:  "Education",
		Blocks: educationBlocks(cv.Educations),
	})
	if len(cv.Languages) > 0 {
		var lines []string
		for _, l := range models.SortLanguages(cv.Languages) {
			lines = append(lines, fmt.Sprintf("%s (%s)", l.Name, models.LevelLabel(l.Level)))
		}
		sidebar = append(sidebar, Section{
			Kind:   SectionLanguages,
			Title:  "Languages",
			Blocks: []Block{{Bullets: lines}},
		})
	}

	return &Document{
		Pages: []Page{{
			Size:   PageSize,
			Header: header,
			Columns: []Column{
				{Role: ColumnMain, Width: 0.65, Sections: main},
				{Role: ColumnSidebar, Width: 0.35, Sections: sidebar},
			},
		}},
	}
}
