package scheduling

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Reason why a booking request was rejected.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonServiceNotFound     Reason = "service_not_found"
	ReasonTooSoon             Reason = "too_soon"
	ReasonClosed              Reason = "closed"
	ReasonOutsideWorkingHours Reason = "outside_working_hours"
	ReasonSlotBlocked         Reason = "slot_blocked"
	ReasonAlreadyBooked       Reason = "already_booked"
)

var reasonMessages = map[Reason]string{
	ReasonServiceNotFound:     "Service not found",
	ReasonTooSoon:             "Bookings must be made at least 2 hours in advance",
	ReasonClosed:              "Salon is closed on this day",
	ReasonOutsideWorkingHours: "Selected time is outside working hours",
	ReasonSlotBlocked:         "This time slot is not available",
	ReasonAlreadyBooked:       "This time slot is already booked",
}

// Message user-facing text for the reason.
func (r Reason) Message() string {
	return reasonMessages[r]
}

// BookingInput a proposed booking and the state of its date.
type BookingInput struct {
	Service      *domain.Service
	Date         time.Time
	StartTime    types.TimeString
	Availability *domain.WeeklyAvailability
	Blocks       []*domain.BlockedPeriod
	Bookings     []*domain.Booking
	Now          time.Time
}

// Decision outcome of DecideBooking. EndTime is set only when Admitted.
type Decision struct {
	Admitted bool
	EndTime  types.TimeString
	Reason   Reason
}

func reject(r Reason) Decision {
	return Decision{Reason: r}
}

// DecideBooking checks a proposed booking. Checks run in a fixed order and
// the first failing one determines the reason.
func DecideBooking(in BookingInput) Decision {
	if in.Service == nil || !in.Service.IsActive {
		return reject(ReasonServiceNotFound)
	}

	endTime := in.StartTime.AddMinutes(in.Service.DurationMinutes)

	if !IsAdvanceBookingValid(in.Date, in.StartTime, in.Now) {
		return reject(ReasonTooSoon)
	}

	if !in.Availability.IsOpen() {
		return reject(ReasonClosed)
	}

	// endTime wraps past midnight; such a booking cannot fit any single-day window.
	crossesMidnight := in.StartTime.Minutes()+in.Service.DurationMinutes >= types.MinutesPerDay
	if crossesMidnight || !IsWithinWorkingHours(in.StartTime, endTime, in.Availability.StartTime, in.Availability.EndTime) {
		return reject(ReasonOutsideWorkingHours)
	}

	if IsSlotBlocked(in.StartTime, in.Blocks) {
		return reject(ReasonSlotBlocked)
	}

	if conflictsWithBookings(Interval{Start: in.StartTime, End: endTime}, in.Bookings) {
		return reject(ReasonAlreadyBooked)
	}

	return Decision{Admitted: true, EndTime: endTime}
}
