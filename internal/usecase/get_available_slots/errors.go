package get_available_slots

import "errors"

var (
	// ErrServiceNotFound the service does not exist or is deactivated
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidInput malformed request data
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal storage failure
	ErrInternal = errors.New("get_available_slots: internal error")
)
