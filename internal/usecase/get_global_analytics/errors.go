package get_global_analytics

import "errors"

var (
	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("get_global_analytics: invalid input data")

	// ErrInternal is returned for internal errors.
	ErrInternal = errors.New("get_global_analytics: internal error")
)
