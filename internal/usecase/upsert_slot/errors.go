package upsert_slot

import "errors"

var (
	// ErrVenueNotFound is returned when the venue has no schedule document.
	ErrVenueNotFound = errors.New("upsert_slot: venue not found")

	// ErrContentNotFound is returned when the slot references a content id
	// absent from the venue catalog.
	ErrContentNotFound = errors.New("upsert_slot: content not found")

	// ErrSlotConflict is returned when the slot overlaps an existing slot
	// on the same date.
	ErrSlotConflict = errors.New("upsert_slot: slot overlaps an existing slot")

	// ErrSlotNotFound is returned when the edit position does not exist.
	ErrSlotNotFound = errors.New("upsert_slot: slot not found")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("upsert_slot: invalid input data")

	// ErrInternal is returned for internal errors.
	ErrInternal = errors.New("upsert_slot: internal error")
)
