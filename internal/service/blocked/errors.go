package blocked

import "errors"

var (
	ErrBlockedPeriodNotFound = errors.New("blocked.service: blocked period not found")
	ErrInvalidInput          = errors.New("blocked.service: invalid input data")
	ErrInternal              = errors.New("blocked.service: internal error")
)
