package domain

import "errors"

// ErrNotFound is returned by service functions when the requested trip does
// not exist, or when no trip owns the date a day view was asked for.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when an input was rejected
// and the state left untouched (e.g. blank trip name, empty selection,
// negative budget).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
