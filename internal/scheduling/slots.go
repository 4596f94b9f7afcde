package scheduling

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

const (
	// SlotGridStepMinutes candidate starts are offered on this grid whatever the service duration.
	SlotGridStepMinutes = 30

	// NextSlotsHorizonDays how many days ComputeNextSlots looks ahead, today included.
	NextSlotsHorizonDays = 14
)

// DayInput everything needed to compute one day's slots.
type DayInput struct {
	Date            time.Time
	DurationMinutes int
	Availability    *domain.WeeklyAvailability // nil when the day has no row
	Blocks          []*domain.BlockedPeriod
	Bookings        []*domain.Booking
	Now             time.Time
}

// DaySlots ascending free start times of one date.
// Closed is set when the salon does not open that day at all.
type DaySlots struct {
	Date   time.Time
	Slots  []types.TimeString
	Closed bool
}

// ComputeSlots walks the 30-minute grid across the day's opening window and
// keeps every start that is not blocked and free of bookings. The 2h lead time
// only filters today's slots. A closed or whole-day-blocked date yields no slots.
func ComputeSlots(in DayInput) DaySlots {
	result := DaySlots{Date: in.Date, Slots: []types.TimeString{}}

	if !in.Availability.IsOpen() {
		result.Closed = true
		return result
	}
	if hasWholeDayBlock(in.Blocks) {
		return result
	}

	workStart := in.Availability.StartTime.Minutes()
	workEnd := in.Availability.EndTime.Minutes()
	today := isSameDate(in.Date, in.Now)

	// Absolute minutes: a slot running past midnight never fits the window.
	for t := workStart; t+in.DurationMinutes <= workEnd; t += SlotGridStepMinutes {
		start := types.FromMinutes(t)
		slot := Interval{Start: start, End: start.AddMinutes(in.DurationMinutes)}

		if today && !IsAdvanceBookingValid(in.Date, start, in.Now) {
			continue
		}
		if IsSlotBlocked(start, in.Blocks) {
			continue
		}
		if conflictsWithBookings(slot, in.Bookings) {
			continue
		}
		result.Slots = append(result.Slots, start)
	}

	return result
}

// NextInput data for the multi-day lookup. Blocks and bookings are keyed by
// domain.DateFormat; availability by day of week (0 = Sunday).
type NextInput struct {
	DurationMinutes int
	Availability    map[int]*domain.WeeklyAvailability
	BlocksByDate    map[string][]*domain.BlockedPeriod
	BookingsByDate  map[string][]*domain.Booking
	Now             time.Time
	HorizonDays     int
	Limit           int
}

// NextSlot a free start on a specific date.
type NextSlot struct {
	Date time.Time
	Time types.TimeString
}

// ComputeNextSlots collects up to Limit free slots walking forward from
// today, one day at a time, for at most HorizonDays days.
func ComputeNextSlots(in NextInput) []NextSlot {
	horizon := in.HorizonDays
	if horizon <= 0 {
		horizon = NextSlotsHorizonDays
	}

	if in.Limit <= 0 {
		return []NextSlot{}
	}
	result := make([]NextSlot, 0, in.Limit)

	today := DateOnly(in.Now, in.Now.Location())
	for i := 0; i < horizon; i++ {
		date := today.AddDate(0, 0, i)
		key := date.Format(domain.DateFormat)

		day := ComputeSlots(DayInput{
			Date:            date,
			DurationMinutes: in.DurationMinutes,
			Availability:    in.Availability[domain.WeekdayIndex(date)],
			Blocks:          in.BlocksByDate[key],
			Bookings:        in.BookingsByDate[key],
			Now:             in.Now,
		})

		for _, slot := range day.Slots {
			result = append(result, NextSlot{Date: date, Time: slot})
			if len(result) == in.Limit {
				return result
			}
		}
	}

	return result
}

// isSameDate compares calendar dates as written; date carries no meaningful location.
func isSameDate(date, now time.Time) bool {
	return date.Format(domain.DateFormat) == now.Format(domain.DateFormat)
}

func hasWholeDayBlock(blocks []*domain.BlockedPeriod) bool {
	for _, b := range blocks {
		if b.IsWholeDay() {
			return true
		}
	}
	return false
}
