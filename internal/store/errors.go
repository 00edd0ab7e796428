package store

import "errors"

var (
	// ErrNoActiveCV is returned by the active-CV operations when no CV is
	// selected. State is left untouched.
	ErrNoActiveCV = errors.New("no active CV")
	// ErrCVNotFound is returned when a CV id does not exist
	ErrCVNotFound = errors.New("CV not found")
	// ErrItemNotFound is returned when a nested entry id does not exist in its CV
	ErrItemNotFound = errors.New("entry not found")
)
