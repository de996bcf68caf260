package catalog

import "errors"

var (
	// ErrVenueNotFound is returned when the venue has no schedule document.
	ErrVenueNotFound = errors.New("venue not found")

	// ErrContentNotFound is returned when the content item does not exist.
	ErrContentNotFound = errors.New("content not found")

	// ErrContentInUse is returned when deleting a content item that slots
	// on the schedule still reference.
	ErrContentInUse = errors.New("content is referenced by scheduled slots")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service errors.
	ErrInternal = errors.New("service: internal error")
)
