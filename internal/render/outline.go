package render

import (
	"fmt"
	"io"
	"strings"
)

// WriteOutline prints a plain-text preview of the document structure
func WriteOutline(w io.Writer, doc *Document) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]\n", doc.Title, doc.Layout)
	for i, page := range doc.Pages {
		fmt.Fprintf(&b, "Page %d (%s)\n", i+1, page.Size)
		if h := page.Header; h != nil {
			fmt.Fprintf(&b, "  %s\n  %s\n", h.Name, h.Title)
			writeContacts(&b, "  ", h.Contacts)
		}
		for _, col := range page.Columns {
			fmt.Fprintf(&b, "  [%s %.0f%%]\n", col.Role, col.Width*100)
			for _, s := range col.Sections {
				if s.Title != "" {
					fmt.Fprintf(&b, "    == %s ==\n", s.Title)
				}
				for _, blk := range s.Blocks {
					writeBlock(&b, "      ", blk)
				}
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeBlock(b *strings.Builder, indent string, blk Block) {
	head := strings.TrimSpace(strings.Join(nonEmpty([]string{blk.Heading, blk.Subheading}), " / "))
	if head != "" {
		b.WriteString(indent + head)
		if blk.Meta != "" {
			b.WriteString("  (" + blk.Meta + ")")
		}
		b.WriteString("\n")
	} else if blk.Meta != "" {
		b.WriteString(indent + blk.Meta + "\n")
	}
	if blk.Text != "" {
		b.WriteString(indent + blk.Text + "\n")
	}
	for _, line := range blk.Bullets {
		b.WriteString(indent + "• " + line + "\n")
	}
	for _, g := range blk.Groups {
		b.WriteString(indent + g.Title + "\n")
		for _, item := range g.Items {
			b.WriteString(indent + "  • " + item + "\n")
		}
	}
	if len(blk.Tags) > 0 {
		b.WriteString(indent + "[" + strings.Join(blk.Tags, "] [") + "]\n")
	}
	writeContacts(b, indent, blk.Contacts)
	if n := len(blk.Images); n > 0 {
		fmt.Fprintf(b, "%s(%d image(s))\n", indent, n)
	}
}

func writeContacts(b *strings.Builder, indent string, contacts []Contact) {
	for _, c := range contacts {
		if c.URL != "" && c.URL != c.Text {
			fmt.Fprintf(b, "%s%s <%s>\n", indent, c.Text, c.URL)
		} else {
			b.WriteString(indent + c.Text + "\n")
		}
	}
}
