package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking is a customer's reservation of one service on the salon timeline.
// Only confirmed bookings occupy time.
type Booking struct {
	ID            uuid.UUID
	SalonID       uuid.UUID
	ServiceID     uuid.UUID
	CustomerID    *string // set when booked by a signed-in customer
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	Status        BookingStatus
	CancelToken   string

	// Denormalized for history and exports
	ServiceName  string
	ServicePrice float64

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking occupies the timeline
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// CanChangeStatus returns true while the booking is confirmed; cancelled and completed are terminal.
func (b *Booking) CanChangeStatus() bool {
	return b.Status == StatusConfirmed
}

// StartsAt returns the start instant in the location of BookingDate.
func (b *Booking) StartsAt() time.Time {
	return b.StartTime.OnDate(b.BookingDate)
}

// BookingsFilter filters booking listings.
type BookingsFilter struct {
	SalonID    uuid.UUID
	CustomerID *string
	StartDate  *time.Time
	EndDate    *time.Time
	Status     *BookingStatus

	Ascending     bool // multi-day listings: oldest first instead of newest first
	LockForUpdate bool // lock matched rows when run inside a read-write transaction
}

// IsSingleDay reports whether the filter targets exactly one date.
func (f BookingsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}
