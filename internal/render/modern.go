package render

import (
	"strings"

	"github.com/khrees2412/cvblue/pkg/models"
)

// buildModern: a full-height accented sidebar carrying identity, contact,
// skills and languages, beside a wide main column
func buildModern(cv *models.CV) *Document {
	p := cv.PersonalInfo

	sidebar := []Section{{
		Kind: SectionProfile,
		Blocks: []Block{{
			Heading:    orDefault(strings.ToUpper(p.Name), "JOHN DOE"),
			Subheading: orDefault(p.Title, "Professional"),
		}},
	}}
	if contacts := personalContacts(p, false); len(contacts) > 0 {
		sidebar = append(sidebar, Section{
			Kind:   SectionContact,
			Title:  "Contact",
			Blocks: []Block{{Contacts: contacts}},
		})
	}
	if groups := GroupSkills(cv.Skills); len(groups) > 0 {
		sidebar = append(sidebar, Section{
			Kind:   SectionSkills,
			Title:  "Skills",
			Blocks: []Block{{Groups: groups}},
		})
	}
	var langs []Block
	for _, l := range models.SortLanguages(cv.Languages) {
		langs = append(langs, Block{Heading: l.Name, Meta: models.LevelLabel(l.Level)})
	}
	sidebar = appendSection(sidebar, Section{Kind: SectionLanguages, Title: "Languages", Blocks: langs})

	var main []Section
	if s, ok := summarySection("Professional Profile", p); ok {
		main = append(main, s)
	}
	main = appendSection(main, Section{
		Kind:   SectionExperience,
		Title:  "Work Experience",
		Blocks: experienceBlocks(cv.Experiences, "Key Responsibilities:"),
	})
	main = appendSection(main, Section{
		Kind:   SectionEducation,
		Title:  "Education",
		Blocks: educationBlocks(cv.Educations),
	})
	main = appendSection(main, Section{
		Kind:   SectionProjects,
		Title:  "Projects",
		Blocks: projectBlocks(cv.Projects),
	})

	return &Document{
		Pages: []Page{{
			Size: PageSize,
			Columns: []Column{
				{Role: ColumnSidebar, Width: 0.32, Accent: true, Sections: sidebar},
				{Role: ColumnMain, Width: 0.68, Sections: main},
			},
		}},
	}
}
