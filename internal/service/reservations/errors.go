package reservations

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrVenueNotFound is returned when the venue has no schedule document.
	ErrVenueNotFound = errors.New("venue not found")

	// ErrSlotNotFound is returned when the reservation targets a slot that
	// is not on the schedule.
	ErrSlotNotFound = errors.New("slot not found")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service errors.
	ErrInternal = errors.New("service: internal error")
)
