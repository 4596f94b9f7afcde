package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Request booking request from the public form
type Request struct {
	ServiceID     uuid.UUID
	Date          time.Time // calendar date; the time of day is ignored
	StartTime     types.TimeString
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	CustomerID    *string // set when the request came through the customer gateway
}

// Response the confirmed booking
type Response struct {
	ID            uuid.UUID
	ServiceID     uuid.UUID
	ServiceName   string
	ServicePrice  float64
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	Status        string
	CancelToken   string
	CreatedAt     time.Time
}
