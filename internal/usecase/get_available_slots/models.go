package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Request slots of one service on one date
type Request struct {
	ServiceID uuid.UUID
	Date      time.Time
}

// Response free start times of the date in ascending order.
// Closed is true when the salon does not open that weekday.
type Response struct {
	Date            time.Time
	ServiceID       uuid.UUID
	DurationMinutes int
	Slots           []types.TimeString
	Closed          bool
}
