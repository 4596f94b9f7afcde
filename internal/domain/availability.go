package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/pkg/types"
)

// WeeklyAvailability opening hours for one day of the week.
// At most one row per salon and day; rows are upserted, never deleted.
type WeeklyAvailability struct {
	ID          uuid.UUID
	SalonID     uuid.UUID
	DayOfWeek   int // 0 = Sunday ... 6 = Saturday
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOpen returns true if the salon accepts bookings on this day.
func (a *WeeklyAvailability) IsOpen() bool {
	return a != nil && a.IsAvailable
}

// BlockedPeriod closes part or all of a date. Both times nil means the whole day.
type BlockedPeriod struct {
	ID        uuid.UUID
	SalonID   uuid.UUID
	Date      time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    *string
	CreatedAt time.Time
}

// IsWholeDay returns true if the block has no time range.
func (b *BlockedPeriod) IsWholeDay() bool {
	return b.StartTime == nil || b.EndTime == nil
}

// WeekdayIndex maps a date to the 0=Sunday day index.
func WeekdayIndex(date time.Time) int {
	return int(date.Weekday())
}
