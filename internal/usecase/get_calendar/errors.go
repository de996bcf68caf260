package get_calendar

import "errors"

var (
	// ErrVenueNotFound is returned when the venue has no schedule document.
	ErrVenueNotFound = errors.New("get_calendar: venue not found")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("get_calendar: invalid input data")

	// ErrInternal is returned for internal errors.
	ErrInternal = errors.New("get_calendar: internal error")
)
