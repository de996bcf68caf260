package events

import "errors"

var (
	// ErrVenueNotFound is returned when the venue does not exist.
	ErrVenueNotFound = errors.New("venue not found")

	// ErrInvalidInput is returned for an unknown event kind.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service errors.
	ErrInternal = errors.New("service: internal error")
)
