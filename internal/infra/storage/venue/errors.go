package venue

import "errors"

var (
	ErrVenueNotFound = errors.New("venue.repository: venue not found")
	ErrBuildQuery    = errors.New("venue.repository: failed to build query")
	ErrExecQuery     = errors.New("venue.repository: failed to execute query")
	ErrScanRow       = errors.New("venue.repository: failed to scan row")
)
