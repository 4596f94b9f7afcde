// Package scheduling computes bookable slots and admission decisions for a
// single salon timeline. Everything here is pure: callers fetch the data,
// pass it in together with the current time, and persist the outcome.
//
// Wall-clock times are zero-padded "HH:mm" strings and are compared as
// strings. Dates are interpreted in the location of the supplied now.
package scheduling

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// MinAdvanceBooking minimum lead time between now and a slot start.
const MinAdvanceBooking = 2 * time.Hour

// CancellationNoticeHours customers cannot cancel within this many hours of the start.
const CancellationNoticeHours = 24

// Interval half-open wall-clock range [Start, End).
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// DoTimeSlotsOverlap reports whether a and b intersect. Touching intervals do not overlap.
func DoTimeSlotsOverlap(a, b Interval) bool {
	startsInside := !a.Start.IsBefore(b.Start) && a.Start.IsBefore(b.End)
	endsInside := a.End.IsAfter(b.Start) && !a.End.IsAfter(b.End)
	contains := !a.Start.IsAfter(b.Start) && !a.End.IsBefore(b.End)
	return startsInside || endsInside || contains
}

// IsSlotBlocked reports whether slotStart falls inside any block, or any block covers the whole day.
// Only the start instant is tested; a slot that begins before a block and runs into it passes.
func IsSlotBlocked(slotStart types.TimeString, blocks []*domain.BlockedPeriod) bool {
	for _, b := range blocks {
		if b.IsWholeDay() {
			return true
		}
		if !slotStart.IsBefore(*b.StartTime) && slotStart.IsBefore(*b.EndTime) {
			return true
		}
	}
	return false
}

// IsAdvanceBookingValid reports whether the slot starts no earlier than now + MinAdvanceBooking.
func IsAdvanceBookingValid(date time.Time, start types.TimeString, now time.Time) bool {
	return !SlotInstant(date, start, now.Location()).Before(now.Add(MinAdvanceBooking))
}

// IsWithinWorkingHours is inclusive at both ends.
func IsWithinWorkingHours(slotStart, slotEnd, workStart, workEnd types.TimeString) bool {
	return !slotStart.IsBefore(workStart) && !slotEnd.IsAfter(workEnd)
}

// CanCustomerCancel applies the notice rule to a customer cancellation: rejected when the
// start is between 0 and 24 whole hours away (hours truncated toward zero).
// Appointments already in the past stay cancellable.
func CanCustomerCancel(bookingStart, now time.Time) bool {
	hours := int(bookingStart.Sub(now).Hours())
	return !(hours > 0 && hours < CancellationNoticeHours)
}

// SlotInstant places a wall-clock time on date's calendar day in loc.
func SlotInstant(date time.Time, start types.TimeString, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return start.OnDate(time.Date(y, m, d, 0, 0, 0, 0, loc))
}

// DateOnly truncates t to midnight of its calendar day in loc.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// bookingInterval returns the occupied range of a booking.
func bookingInterval(b *domain.Booking) Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// conflictsWithBookings reports whether slot overlaps any confirmed booking.
func conflictsWithBookings(slot Interval, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if DoTimeSlotsOverlap(slot, bookingInterval(b)) {
			return true
		}
	}
	return false
}
