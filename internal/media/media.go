// Package media loads project images into the data URIs stored on a CV.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/khrees2412/cvblue/pkg/models"
)

var (
	ErrNotImage      = errors.New("you can only upload image files")
	ErrTooLarge      = errors.New("image must be smaller than 2MB")
	ErrTooManyImages = fmt.Errorf("you can only upload up to %d images per project", models.MaxProjectImages)
)

// FromBytes validates data as an image and encodes it as a base64 data URI
func FromBytes(data []byte) (string, error) {
	if len(data) >= models.MaxImageSize {
		return "", ErrTooLarge
	}
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w (got %s)", ErrNotImage, mtype.String())
	}
	// Detect may append parameters such as charset
	mime, _, _ := strings.Cut(mtype.String(), ";")
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// LoadImage reads an image file from disk into a data URI
func LoadImage(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	// one byte past the ceiling is enough to reject oversized files
	data, err := io.ReadAll(io.LimitReader(f, models.MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return FromBytes(data)
}

// Append adds images to a project's list, refusing to exceed the cap
func Append(existing []string, images ...string) ([]string, error) {
	if len(existing)+len(images) > models.MaxProjectImages {
		return existing, ErrTooManyImages
	}
	out := make([]string, 0, len(existing)+len(images))
	out = append(out, existing...)
	return append(out, images...), nil
}
