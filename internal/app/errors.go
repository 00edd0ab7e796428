package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/khrees2412/cvblue/internal/codec"
	"github.com/khrees2412/cvblue/internal/media"
	"github.com/khrees2412/cvblue/internal/pdf"
	"github.com/khrees2412/cvblue/internal/render"
	"github.com/khrees2412/cvblue/internal/store"
	"github.com/khrees2412/cvblue/internal/transfer"
)

// Sentinel errors for common application errors
var (
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoTarget is returned by actions that need a concrete CV, such as
	// export, when none is active and none was named
	ErrNoTarget = errors.New("no target CV")
)

// Notify turns an error into the single message shown to the user
func Notify(err error) string {
	if err == nil {
		return ""
	}

	var malformed *transfer.MalformedPayloadError
	var structure *transfer.InvalidStructureError
	var xmlErr *codec.FormatError
	var invalid validator.ValidationErrors

	switch {
	case errors.Is(err, transfer.ErrUnsupportedFormat):
		return "Unsupported file format. Please use JSON or XML files."
	case errors.Is(err, transfer.ErrEmptySelection):
		return "Please select at least one CV to export."
	case errors.As(err, &xmlErr):
		return "Failed to import: invalid XML format."
	case errors.As(err, &malformed):
		return "Failed to import: the file could not be parsed."
	case errors.As(err, &structure):
		return "Failed to import: invalid CV data structure."
	case errors.As(err, &invalid):
		return validationMessage(invalid)
	case errors.Is(err, ErrNoTarget), errors.Is(err, store.ErrNoActiveCV):
		return "No active CV. Create or select a CV first."
	case errors.Is(err, store.ErrCVNotFound):
		return "CV not found."
	case errors.Is(err, store.ErrItemNotFound):
		return "Item not found in this CV."
	case errors.Is(err, render.ErrUnknownLayout):
		return "Unknown layout. Choose classic or modern."
	case errors.Is(err, pdf.ErrNotReady):
		return "The PDF is still being generated."
	case errors.Is(err, media.ErrNotImage):
		return "You can only upload image files!"
	case errors.Is(err, media.ErrTooLarge):
		return "Image must be smaller than 2MB!"
	case errors.Is(err, media.ErrTooManyImages):
		return "You can only upload up to 5 images per project!"
	}
	return err.Error()
}

// IsSoft reports errors that leave state untouched and only warrant a
// warning, such as editing with no active CV
func IsSoft(err error) bool {
	return errors.Is(err, store.ErrNoActiveCV)
}

func validationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			msgs = append(msgs, "Please enter a valid email")
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must be within %s %s", fe.Field(), fe.Tag(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}
