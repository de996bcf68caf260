package accessevent

import "errors"

var (
	ErrBuildQuery = errors.New("accessevent.repository: failed to build query")
	ErrExecQuery  = errors.New("accessevent.repository: failed to execute query")
	ErrScanRow    = errors.New("accessevent.repository: failed to scan row")
)
