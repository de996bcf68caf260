package copy_slot

import "errors"

var (
	// ErrVenueNotFound is returned when the venue has no schedule document.
	ErrVenueNotFound = errors.New("copy_slot: venue not found")

	// ErrSlotNotFound is returned when the source slot does not exist.
	ErrSlotNotFound = errors.New("copy_slot: slot not found")

	// ErrSlotConflict is returned when the copy would overlap a slot on a
	// target date. No target date is written.
	ErrSlotConflict = errors.New("copy_slot: copy overlaps an existing slot")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("copy_slot: invalid input data")

	// ErrInternal is returned for internal errors.
	ErrInternal = errors.New("copy_slot: internal error")
)
