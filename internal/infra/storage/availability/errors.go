package availability

import "errors"

var (
	// ErrAvailabilityNotFound no row for the requested day
	ErrAvailabilityNotFound = errors.New("availability.repository: availability not found")

	// ErrBuildQuery failed to build the SQL query
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery failed to execute the SQL query
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow failed to scan a result row
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
