package booking

import "errors"

var (
	// ErrBookingNotFound no booking matched the id or token
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotConflict the storage exclusion constraint rejected an overlapping confirmed booking
	ErrSlotConflict = errors.New("booking.repository: slot conflicts with a confirmed booking")

	// ErrStatusNotConfirmed the status update matched no confirmed booking
	ErrStatusNotConfirmed = errors.New("booking.repository: booking is not confirmed")

	// ErrBuildQuery failed to build the SQL query
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery failed to execute the SQL query
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow failed to scan a result row
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
