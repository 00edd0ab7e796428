package matcher

import (
	"sort"
	"strings"

	"github.com/khrees2412/cvblue/pkg/models"
)

// Filter returns the CVs whose name, owner name or professional title
// contains term, case-insensitively. An empty term keeps every CV.
// Order is preserved.
func Filter(cvs []models.CV, term string) []models.CV {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.CV, 0, len(cvs))
	for _, cv := range cvs {
		if term == "" || matches(cv, term) {
			out = append(out, cv)
		}
	}
	return out
}

func matches(cv models.CV, term string) bool {
	for _, field := range []string{cv.Name, cv.PersonalInfo.Name, cv.PersonalInfo.Title} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Score rates how well a CV matches a search query, between 0.0 and 1.0
func Score(cv models.CV, query string) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0
	}

	score := 0.0

	// CV name carries the most weight (50%)
	score += matchField(cv.Name, query) * 0.5

	// Owner name (25%)
	score += matchField(cv.PersonalInfo.Name, query) * 0.25

	// Professional title (25%)
	score += matchField(cv.PersonalInfo.Title, query) * 0.25

	return score
}

// Rank returns the CVs matching query, best match first
func Rank(cvs []models.CV, query string) []models.CV {
	type scored struct {
		cv    models.CV
		score float64
	}
	var hits []scored
	for _, cv := range cvs {
		if s := Score(cv, query); s > 0 {
			hits = append(hits, scored{cv, s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	out := make([]models.CV, len(hits))
	for i, h := range hits {
		out[i] = h.cv
	}
	return out
}

// matchField gives 1.0 for a substring match, otherwise the share of
// query keywords found in the field
func matchField(field, query string) float64 {
	fieldLower := strings.ToLower(field)
	if fieldLower == "" {
		return 0
	}
	if strings.Contains(fieldLower, query) {
		return 1.0
	}

	keywords := extractKeywords(query)
	if len(keywords) == 0 {
		return 0
	}
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(fieldLower, kw) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords))
}

// extractKeywords extracts meaningful words from a query
func extractKeywords(query string) []string {
	stopWords := map[string]bool{
		"the": true, "a": true, "an": true, "and": true, "or": true,
		"in": true, "on": true, "at": true, "to": true, "for": true,
		"of": true, "with": true, "cv": true,
	}

	keywords := []string{}
	for _, word := range strings.Fields(query) {
		word = strings.Trim(word, ".,!?;:")
		if len(word) > 1 && !stopWords[word] {
			keywords = append(keywords, word)
		}
	}
	return keywords
}
