package accesscontrol

import "errors"

var (
	// ErrInvalidInput is returned for a malformed IP or CIDR entry.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service errors.
	ErrInternal = errors.New("service: internal error")
)
