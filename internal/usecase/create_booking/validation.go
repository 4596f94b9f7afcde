package create_booking

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// validateRequest checks the request shape. Business rules are left to scheduling.DecideBooking.
func validateRequest(req *Request) error {
	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime == "" {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len([]rune(name)) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if len(req.CustomerEmail) > domain.MaxCustomerEmailLength {
		return fmt.Errorf("%w: customerEmail exceeds %d characters", ErrInvalidInput, domain.MaxCustomerEmailLength)
	}
	addr, err := mail.ParseAddress(req.CustomerEmail)
	if err != nil || addr.Address != req.CustomerEmail {
		return fmt.Errorf("%w: customerEmail is not a valid address", ErrInvalidInput)
	}

	if req.CustomerPhone != nil && len(*req.CustomerPhone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customerPhone exceeds %d characters", ErrInvalidInput, domain.MaxCustomerPhoneLength)
	}

	return nil
}
