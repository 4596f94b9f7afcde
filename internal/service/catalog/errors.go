package catalog

import "errors"

var (
	// ErrServiceNotFound unknown id, or inactive for public lookups
	ErrServiceNotFound = errors.New("catalog.service: service not found")

	ErrInvalidInput = errors.New("catalog.service: invalid input data")
	ErrInternal     = errors.New("catalog.service: internal error")
)
