// Package render projects a CV into a layout-specific document tree that
// the PDF backend and the terminal preview consume.
package render

// PageSize of every generated page
const PageSize = "A4"

// ColumnRole tells the backend how to place a column
type ColumnRole string

const (
	ColumnMain    ColumnRole = "main"
	ColumnSidebar ColumnRole = "sidebar"
)

// SectionKind identifies what a section holds
type SectionKind string

const (
	SectionProfile    SectionKind = "profile"
	SectionContact    SectionKind = "contact"
	SectionSummary    SectionKind = "summary"
	SectionExperience SectionKind = "experience"
	SectionEducation  SectionKind = "education"
	SectionProjects   SectionKind = "projects"
	SectionSkills     SectionKind = "skills"
	SectionLanguages  SectionKind = "languages"
)

// Document is the rendered form of one CV
type Document struct {
	Layout Layout
	Title  string
	Pages  []Page
}

// Page is one printed page
type Page struct {
	Size    string
	Header  *Header
	Columns []Column
}

// Header is the full-width block above the columns
type Header struct {
	Name     string
	Title    string
	Contacts []Contact
}

// Contact is a header or sidebar contact line; URL is empty for plain text
type Contact struct {
	Text string
	URL  string
}

// Column is a vertical region of a page. Width is a fraction of the page.
type Column struct {
	Role     ColumnRole
	Width    float64
	Accent   bool
	Sections []Section
}

// Section is a titled group of blocks
type Section struct {
	Kind   SectionKind
	Title  string
	Blocks []Block
}

// Block is one entry in a section. Empty fields are not drawn.
type Block struct {
	Heading    string
	Subheading string
	Meta       string
	Text       string
	Bullets    []string
	Groups     []Group
	Tags       []string
	Contacts   []Contact
	Images     []string
}

// Group is a labelled list inside a block
type Group struct {
	Title string
	Items []string
}

// Section returns the first section of the given kind, or nil
func (d *Document) Section(kind SectionKind) *Section {
	for p := range d.Pages {
		for c := range d.Pages[p].Columns {
			col := &d.Pages[p].Columns[c]
			for s := range col.Sections {
				if col.Sections[s].Kind == kind {
					return &col.Sections[s]
				}
			}
		}
	}
	return nil
}
