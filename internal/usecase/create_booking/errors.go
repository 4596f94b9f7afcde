package create_booking

import (
	"errors"

	"github.com/m04kA/SalonBookingService/internal/scheduling"
)

var (
	// ErrInvalidInput malformed request data
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrRejected the request is well formed but cannot be admitted; see RejectionError
	ErrRejected = errors.New("create_booking: booking rejected")

	// ErrInternal storage or token generation failure
	ErrInternal = errors.New("create_booking: internal error")
)

// RejectionError carries the business reason a booking was refused.
// errors.Is(err, ErrRejected) holds for it.
type RejectionError struct {
	Reason scheduling.Reason
}

func (e *RejectionError) Error() string {
	return "create_booking: booking rejected: " + string(e.Reason)
}

func (e *RejectionError) Is(target error) bool {
	return target == ErrRejected
}

func rejected(reason scheduling.Reason) error {
	return &RejectionError{Reason: reason}
}
