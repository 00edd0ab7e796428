// Package pdf turns rendered documents into printable PDF files using a
// headless Chrome instance.
package pdf

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/khrees2412/cvblue/internal/render"
)

//go:embed templates
var templateFS embed.FS

var documentTmpl = template.Must(template.New("document.html.tmpl").Funcs(template.FuncMap{
	"percent": func(w float64) string { return fmt.Sprintf("%.0f%%", w*100) },
	"imageURL": func(s string) template.URL {
		if !render.IsImageData(s) {
			return ""
		}
		return template.URL(s)
	},
}).ParseFS(templateFS, "templates/document.html.tmpl"))

func stylesheet(layout render.Layout) (template.CSS, error) {
	css, err := templateFS.ReadFile("templates/" + string(layout) + ".css")
	if err != nil {
		return "", fmt.Errorf("no stylesheet for layout %q: %w", layout, err)
	}
	return template.CSS(css), nil
}

// HTML projects doc into a standalone HTML page styled for its layout
func HTML(doc *render.Document) (string, error) {
	style, err := stylesheet(doc.Layout)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	data := struct {
		Doc   *render.Document
		Style template.CSS
	}{doc, style}
	if err := documentTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
