package get_analytics

import "errors"

var (
	// ErrVenueNotFound is returned when the venue has no schedule document.
	ErrVenueNotFound = errors.New("get_analytics: venue not found")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("get_analytics: invalid input data")

	// ErrInternal is returned for internal errors.
	ErrInternal = errors.New("get_analytics: internal error")
)
