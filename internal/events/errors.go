package events

import "errors"

var (
	// ErrNotFound means no event row exists for the given id.
	ErrNotFound = errors.New("event not found")
	// ErrForbidden means the event exists but is owned by another club.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation means a required field is missing or empty.
	ErrValidation = errors.New("missing required fields")
)
