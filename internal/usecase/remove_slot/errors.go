package remove_slot

import "errors"

var (
	// ErrVenueNotFound is returned when the venue has no schedule document.
	ErrVenueNotFound = errors.New("remove_slot: venue not found")

	// ErrSlotNotFound is returned when the slot is absent from the date.
	ErrSlotNotFound = errors.New("remove_slot: slot not found")

	// ErrSlotHasReservations is returned when the slot still has active
	// reservations; the operator must move or cancel them first.
	ErrSlotHasReservations = errors.New("remove_slot: slot has active reservations")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("remove_slot: invalid input data")

	// ErrInternal is returned for internal errors.
	ErrInternal = errors.New("remove_slot: internal error")
)
