// Package transfer reads and writes CV files in JSON and XML. It validates
// imported payloads into typed envelopes and never touches the CV store.
package transfer

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Format is an import/export file format
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// Root tags of the XML envelopes
const (
	SingleRoot     = "cv-blue"
	CollectionRoot = "cv-collection"
)

// ParseFormat accepts "json" or "xml" in any case
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatXML:
		return FormatXML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// DetectFormat derives the format from a file name's extension only
func DetectFormat(fileName string) (Format, error) {
	lower := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON, nil
	case strings.HasSuffix(lower, ".xml"):
		return FormatXML, nil
	}
	return "", ErrUnsupportedFormat
}

// Ext returns the file extension without the dot
func (f Format) Ext() string {
	return string(f)
}

// MimeType returns the content type written for the format
func (f Format) MimeType() string {
	if f == FormatXML {
		return "application/xml"
	}
	return "application/json"
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases name and replaces each run of non-alphanumerics with "-"
func Slug(name string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(name), "-")
}

// ExportDate formats t as the UTC calendar date used in file names
func ExportDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// SingleFileName builds "<slug>-<date>.<ext>"
func SingleFileName(name string, format Format, at time.Time) string {
	return fmt.Sprintf("%s-%s.%s", Slug(name), ExportDate(at), format.Ext())
}

// CollectionFileName builds "cv-collection-<date>.<ext>"
func CollectionFileName(format Format, at time.Time) string {
	return fmt.Sprintf("cv-collection-%s.%s", ExportDate(at), format.Ext())
}
