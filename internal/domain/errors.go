package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist — an unknown catalog item, a trip the caller does
// not own, or a save/summary call when the user has no active trip.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. unknown item kind, end date before start date).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write collides with existing state, such as
// signing up with a username that is already taken.
// Handlers should map this to HTTP 409; the caller may retry with new input.
var ErrConflict = errors.New("conflict")

// ErrUnauthenticated is returned when the caller's credentials are missing,
// invalid, or expired. Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("unauthenticated")
