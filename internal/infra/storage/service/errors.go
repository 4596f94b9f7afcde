package service

import "errors"

var (
	// ErrServiceNotFound no service with this id in the salon
	ErrServiceNotFound = errors.New("service.repository: service not found")

	// ErrBuildQuery failed to build the SQL query
	ErrBuildQuery = errors.New("service.repository: failed to build query")

	// ErrExecQuery failed to execute the SQL query
	ErrExecQuery = errors.New("service.repository: failed to execute query")

	// ErrScanRow failed to scan a result row
	ErrScanRow = errors.New("service.repository: failed to scan row")
)
