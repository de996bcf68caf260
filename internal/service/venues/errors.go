package venues

import "errors"

var (
	// ErrVenueNotFound is returned when the venue does not exist.
	ErrVenueNotFound = errors.New("venue not found")

	// ErrVenueExists is returned when creating a venue whose id is taken.
	ErrVenueExists = errors.New("venue already exists")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service errors.
	ErrInternal = errors.New("service: internal error")
)
