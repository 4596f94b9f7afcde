package availability

import "errors"

var (
	// ErrInvalidInput malformed day, times or range
	ErrInvalidInput = errors.New("availability.service: invalid input data")

	// ErrInternal storage failure
	ErrInternal = errors.New("availability.service: internal error")
)
