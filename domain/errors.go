package domain

import "errors"

// Error taxonomy shared by services and the web layer. Services wrap these
// with context via fmt.Errorf("...: %w", ...); the web layer maps each to a
// status code in exactly one place.
var (
	ErrValidation      = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrSelfFollow      = errors.New("cannot follow yourself")
)
