package media

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khrees2412/cvblue/pkg/models"
)

// smallest valid PNG signature plus IHDR chunk header
var pngHeader = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00,
}

func TestFromBytes(t *testing.T) {
	uri, err := FromBytes(pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	_, err = FromBytes([]byte("just some text"))
	assert.ErrorIs(t, err, ErrNotImage)

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, models.MaxImageSize)...)
	_, err = FromBytes(big)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0644))

	uri, err := LoadImage(path)
	require.NoError(t, err)
	assert.Contains(t, uri, "image/png")

	_, err = LoadImage(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestAppend(t *testing.T) {
	images := []string{"a", "b", "c", "d"}
	out, err := Append(images, "e")
	require.NoError(t, err)
	assert.Len(t, out, models.MaxProjectImages)

	out, err = Append(out, "f")
	assert.ErrorIs(t, err, ErrTooManyImages)
	assert.Len(t, out, models.MaxProjectImages)
}
