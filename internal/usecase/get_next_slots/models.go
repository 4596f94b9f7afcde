package get_next_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Limits bounds for Request.Limit
type Limits struct {
	Default int
	Max     int
}

// Request the earliest free slots of a service. Limit 0 means the default.
type Request struct {
	ServiceID uuid.UUID
	Limit     int
}

type Response struct {
	ServiceID       uuid.UUID
	DurationMinutes int
	Slots           []Slot
}

// Slot a free start; DayName is the short label shown on quick-book buttons ("Mon, Jan 2").
type Slot struct {
	Date    time.Time
	Time    types.TimeString
	DayName string
}
