package codec

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type link struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type Person struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
	Links  []link   `json:"links"`
	Secret string   `json:"-"`
}

type stamped struct {
	ID string `json:"id"`
	Person
	Active bool      `json:"active"`
	Level  int       `json:"level"`
	At     time.Time `json:"at"`
	Note   string    `json:"note,omitempty"`
}

func TestEncode_Layout(t *testing.T) {
	got, err := Encode(Person{Name: "Ada", Skills: []string{"Go", "SQL"}}, "cv-blue")
	require.NoError(t, err)

	want := Declaration + "\n<cv-blue>\n" +
		"<name>Ada</name><skills><item>Go</item><item>SQL</item></skills><links></links>" +
		"\n</cv-blue>"
	assert.Equal(t, want, got)
}

func TestEncode_EscapesFiveEntities(t *testing.T) {
	got, err := Encode(map[string]any{"v": `a&b<c>d"e'f`}, "r")
	require.NoError(t, err)
	assert.Contains(t, got, "<v>a&amp;b&lt;c&gt;d&quot;e&apos;f</v>")
}

func TestEncode_EmbeddedScalarsAndTime(t *testing.T) {
	v := stamped{
		ID:     "1",
		Person: Person{Name: "Ada", Secret: "hidden"},
		Active: true,
		Level:  3,
		At:     time.Date(2024, 3, 2, 10, 30, 0, 0, time.UTC),
	}
	got, err := Encode(v, "r")
	require.NoError(t, err)

	assert.Contains(t, got, "<id>1</id><name>Ada</name>")
	assert.Contains(t, got, "<active>true</active><level>3</level>")
	assert.Contains(t, got, "<at>2024-03-02T10:30:00Z</at>")
	assert.NotContains(t, got, "hidden")
	assert.NotContains(t, got, "<note>")
	assert.NotContains(t, got, "<Person>")
}

func TestEncode_BareArray(t *testing.T) {
	got, err := Encode([]string{"a", "b"}, "r")
	require.NoError(t, err)
	assert.Contains(t, got, "<r>\n<item>a</item><item>b</item>\n</r>")
}

func TestDecode_MissingRoot(t *testing.T) {
	_, err := Decode(Declaration+"<other><a>1</a></other>", "cv-blue")

	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "cv-blue", fe.Root)
	assert.Contains(t, err.Error(), "missing cv-blue root")
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode("<cv-blue><a>1</b></cv-blue>", "cv-blue")

	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.NotNil(t, fe.Cause)
}

func TestDecode_Heuristic(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want any
	}{
		{
			name: "leaf is text",
			xml:  "<r>hello</r>",
			want: "hello",
		},
		{
			name: "distinct tags make an object",
			xml:  "<r><a>1</a><b>true</b></r>",
			want: map[string]any{"a": "1", "b": "true"},
		},
		{
			name: "repeated tags make a bare array",
			xml:  "<r><item>x</item><item>y</item></r>",
			want: []any{"x", "y"},
		},
		{
			name: "mixed repeated and single tags",
			xml:  "<r><title>t</title><item>x</item><item>y</item></r>",
			want: map[string]any{"title": "t", "items": []any{"x", "y"}},
		},
		{
			name: "two repeated groups are concatenated in first-appearance order",
			xml:  "<r><b>1</b><a>2</a><b>3</b><a>4</a></r>",
			want: []any{"1", "3", "2", "4"},
		},
		{
			name: "root found below other elements",
			xml:  "<wrap><r><a>1</a></r></wrap>",
			want: map[string]any{"a": "1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.xml, "r")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Single-element and empty arrays do not survive a round trip; the
// repetition heuristic cannot tell them from objects or leaves.
func TestRoundTrip_KnownLossyShapes(t *testing.T) {
	encoded, err := Encode(Person{Name: "Ada", Skills: []string{"Go"}}, "r")
	require.NoError(t, err)

	got, err := Decode(encoded, "r")
	require.NoError(t, err)

	obj := got.(map[string]any)
	assert.Equal(t, map[string]any{"item": "Go"}, obj["skills"])
	assert.Equal(t, "", obj["links"])
}

func TestRoundTrip_StringLeaves(t *testing.T) {
	in := map[string]any{
		"personalInfo": map[string]any{"name": "Ada & Co", "aboutMe": "<builds> things"},
		"skills":       []any{"Go", "SQL"},
		"experiences": []any{
			map[string]any{"id": "1", "company": "A", "responsibilities": []any{"x", "y"}},
			map[string]any{"id": "2", "company": "B", "responsibilities": []any{"z", "w"}},
		},
	}

	encoded, err := Encode(in, "cv-blue")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, Declaration))

	got, err := Decode(encoded, "cv-blue")
	require.NoError(t, err)
	assert.Equal(t, in, got)
}
