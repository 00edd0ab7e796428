package transfer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for file names without a .json or .xml extension
	ErrUnsupportedFormat = errors.New("unsupported file format, please use JSON or XML files")
	// ErrEmptySelection is returned when a collection export would contain no CVs
	ErrEmptySelection = errors.New("no CVs selected for export")
)

// MalformedPayloadError reports content that could not be parsed in its
// declared format
type MalformedPayloadError struct {
	Format Format
	Cause  error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed %s payload: %v", e.Format, e.Cause)
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Cause
}

// FieldError is a single structural problem found in a payload
type FieldError struct {
	Field   string
	Message string
}

// InvalidStructureError reports a payload that parsed but does not have the
// shape of the requested envelope
type InvalidStructureError struct {
	Envelope string
	Errors   []FieldError
	Cause    error
}

func (e *InvalidStructureError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid %s structure", e.Envelope)
	for i, fe := range e.Errors {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%s: %s", fe.Field, fe.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

func (e *InvalidStructureError) Unwrap() error {
	return e.Cause
}
