package blocked

import "errors"

var (
	// ErrBlockedPeriodNotFound no blocked period with this id
	ErrBlockedPeriodNotFound = errors.New("blocked.repository: blocked period not found")

	// ErrBuildQuery failed to build the SQL query
	ErrBuildQuery = errors.New("blocked.repository: failed to build query")

	// ErrExecQuery failed to execute the SQL query
	ErrExecQuery = errors.New("blocked.repository: failed to execute query")

	// ErrScanRow failed to scan a result row
	ErrScanRow = errors.New("blocked.repository: failed to scan row")
)
