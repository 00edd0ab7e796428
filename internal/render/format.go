package render

import (
	"strings"
	"time"

	"github.com/khrees2412/cvblue/pkg/models"
)

var dateLayouts = []string{"2006-01", "2006-01-02", time.RFC3339}

// FormatMonth turns a stored "YYYY-MM" date into "Jan 2006". Empty input
// gives ""; unparseable input is returned unchanged.
func FormatMonth(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2006")
		}
	}
	return s
}

// DateRange renders "<start> - Present" or "<start> - <end>"
func DateRange(start, end string, current bool) string {
	if current {
		return FormatMonth(start) + " - Present"
	}
	if start == "" && end == "" {
		return ""
	}
	return FormatMonth(start) + " - " + FormatMonth(end)
}

// BulletLines splits free text into trimmed, non-empty lines
func BulletLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// OtherSkills is the group for skills without a "Category:" prefix
const OtherSkills = "Other"

// GroupSkills parses "Category: a, b" strings into groups in first-seen
// order. Skills without a colon go to OtherSkills.
func GroupSkills(skills []string) []Group {
	var groups []Group
	index := map[string]int{}
	add := func(category string, items ...string) {
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, Group{Title: category})
		}
		groups[i].Items = append(groups[i].Items, items...)
	}

	for _, skill := range skills {
		category, list, found := strings.Cut(skill, ":")
		if !found {
			if skill = strings.TrimSpace(skill); skill != "" {
				add(OtherSkills, skill)
			}
			continue
		}
		category = strings.TrimSpace(category)
		if category == "" {
			category = OtherSkills
		}
		var items []string
		for _, item := range strings.Split(list, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		add(category, items...)
	}
	return groups
}

// IsImageData reports whether s is a base64 image data URI
func IsImageData(s string) bool {
	return strings.HasPrefix(s, "data:image/") && strings.Contains(s, "base64,")
}

// ProjectImages keeps valid image payloads, up to the per-project cap
func ProjectImages(images []string) []string {
	var out []string
	for _, img := range images {
		if len(out) == models.MaxProjectImages {
			break
		}
		if IsImageData(img) {
			out = append(out, img)
		}
	}
	return out
}

// LinkContacts keeps links with a non-blank URL. A missing title falls
// back to the URL.
func LinkContacts(links []models.Link) []Contact {
	var out []Contact
	for _, l := range links {
		url := strings.TrimSpace(l.URL)
		if url == "" {
			continue
		}
		text := strings.TrimSpace(l.Title)
		if text == "" {
			text = url
		}
		out = append(out, Contact{Text: text, URL: url})
	}
	return out
}

func personalContacts(p models.PersonalInfo, mailto bool) []Contact {
	var out []Contact
	if p.Email != "" {
		c := Contact{Text: p.Email}
		if mailto {
			c.URL = "mailto:" + p.Email
		}
		out = append(out, c)
	}
	if p.Phone != "" {
		out = append(out, Contact{Text: p.Phone})
	}
	if p.Location != "" {
		out = append(out, Contact{Text: p.Location})
	}
	if strings.TrimSpace(p.LinkedIn) != "" {
		out = append(out, Contact{Text: "LinkedIn", URL: strings.TrimSpace(p.LinkedIn)})
	}
	return append(out, LinkContacts(p.Links)...)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func nonEmpty(items []string) []string {
	var out []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
