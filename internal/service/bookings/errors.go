package bookings

import "errors"

var (
	// ErrBookingNotFound no booking matched the id or cancel token
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrAccessDenied the booking belongs to another customer
	ErrAccessDenied = errors.New("bookings.service: access denied")

	// ErrCannotChangeStatus the booking is already cancelled or completed
	ErrCannotChangeStatus = errors.New("bookings.service: booking is no longer confirmed")

	// ErrCancellationWindow customers cannot cancel within 24 hours of the appointment
	ErrCancellationWindow = errors.New("bookings.service: cancellation not allowed within 24 hours of appointment")

	// ErrInvalidInput malformed request data
	ErrInvalidInput = errors.New("bookings.service: invalid input data")

	// ErrInternal storage failure
	ErrInternal = errors.New("bookings.service: internal error")
)
