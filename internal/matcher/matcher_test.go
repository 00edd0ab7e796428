package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khrees2412/cvblue/pkg/models"
)

func cv(id, name, owner, title string) models.CV {
	c := models.CV{ID: id, Name: name, Content: models.NewContent()}
	c.PersonalInfo.Name = owner
	c.PersonalInfo.Title = title
	return c
}

func ids(cvs []models.CV) []string {
	out := []string{}
	for _, c := range cvs {
		out = append(out, c.ID)
	}
	return out
}

var fixtures = []models.CV{
	cv("1", "Backend Dev @ Acme", "Jane Roe", "Software Engineer"),
	cv("2", "Design portfolio", "Jane Roe", "Product Designer"),
	cv("3", "Untitled CV 1/2/2024", "", ""),
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty term keeps all", "  ", []string{"1", "2", "3"}},
		{"matches CV name", "acme", []string{"1"}},
		{"matches owner name", "JANE", []string{"1", "2"}},
		{"matches title", "designer", []string{"2"}},
		{"no match", "kubernetes", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(fixtures, tt.term)))
		})
	}
}

func TestScore(t *testing.T) {
	assert.Equal(t, 0.0, Score(fixtures[0], ""))
	assert.InDelta(t, 0.5, Score(fixtures[0], "backend"), 0.001)
	assert.InDelta(t, 0.25, Score(fixtures[1], "jane designer"), 0.001)
	assert.Equal(t, 0.0, Score(fixtures[2], "engineer"))
}

func TestRank(t *testing.T) {
	ranked := Rank(fixtures, "design engineer")
	assert.Equal(t, []string{"2", "1"}, ids(ranked))
	assert.Empty(t, Rank(fixtures, "the of"))
}
