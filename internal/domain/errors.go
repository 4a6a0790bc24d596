package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule
// (e.g. a ride aggregated under an empty country code).
var ErrValidation = errors.New("validation error")

// ErrUnknownExperience is returned when an experience label is not one of
// the five labels of the experience scale. The repo rejects such rows when
// loading; the stats functions fail with it rather than miscount.
var ErrUnknownExperience = errors.New("unknown experience label")

// ErrEmptyCollection is returned when an operation needs at least one
// element to produce an answer, such as next/prev navigation.
var ErrEmptyCollection = errors.New("empty collection")
