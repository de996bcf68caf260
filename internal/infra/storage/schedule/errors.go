package schedule

import "errors"

var (
	// ErrScheduleNotFound is returned when a venue has no schedule document.
	ErrScheduleNotFound = errors.New("schedule.repository: schedule document not found")

	// ErrBuildQuery is returned when SQL building fails.
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery is returned when SQL execution fails.
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrEncodeDocument is returned when a document cannot be marshalled.
	ErrEncodeDocument = errors.New("schedule.repository: failed to encode document")

	// ErrDecodeDocument is returned when a stored document cannot be
	// unmarshalled back into its domain shape.
	ErrDecodeDocument = errors.New("schedule.repository: failed to decode document")
)
