package notification

import "errors"

// Common notification errors
var (
	// ErrNotFound is returned when a notification is not found
	ErrNotFound = errors.New("notification not found")
	// ErrForbidden is returned when a user doesn't own the notification
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned when notification fields are missing
	ErrInvalidInput = errors.New("invalid input")
)
