package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

func haircut(duration int) *domain.Service {
	return &domain.Service{Name: "Haircut", DurationMinutes: duration, IsActive: true}
}

func baseInput() BookingInput {
	return BookingInput{
		Service:      haircut(30),
		Date:         monday,
		StartTime:    "10:30",
		Availability: openDay(1, "09:00", "17:00"),
		Bookings:     []*domain.Booking{confirmed("10:00", "10:30")},
		Now:          at(monday, 6, 0),
	}
}

func TestDecideBooking_AdmitsAdjacent(t *testing.T) {
	decision := DecideBooking(baseInput())

	assert.True(t, decision.Admitted)
	assert.Equal(t, types.TimeString("11:00"), decision.EndTime)
	assert.Equal(t, ReasonNone, decision.Reason)
}

func TestDecideBooking_AlreadyBooked(t *testing.T) {
	in := baseInput()
	in.StartTime = "10:00"

	decision := DecideBooking(in)

	assert.False(t, decision.Admitted)
	assert.Equal(t, ReasonAlreadyBooked, decision.Reason)
	assert.Empty(t, decision.EndTime)
}

func TestDecideBooking_IgnoresCancelledBookings(t *testing.T) {
	in := baseInput()
	in.StartTime = "10:00"
	in.Bookings[0].Status = domain.StatusCancelled

	assert.True(t, DecideBooking(in).Admitted)
}

func TestDecideBooking_LeadTime(t *testing.T) {
	now := at(monday, 10, 0)

	in := baseInput()
	in.Bookings = nil
	in.Now = now

	in.StartTime = types.NewTimeString(now.Add(time.Hour))
	assert.Equal(t, ReasonTooSoon, DecideBooking(in).Reason)

	in.StartTime = types.NewTimeString(now.Add(2 * time.Hour))
	assert.True(t, DecideBooking(in).Admitted, "exactly two hours ahead is allowed")
}

func TestDecideBooking_Reasons(t *testing.T) {
	inactive := haircut(30)
	inactive.IsActive = false

	closed := openDay(1, "09:00", "17:00")
	closed.IsAvailable = false

	tests := []struct {
		name     string
		modify   func(in *BookingInput)
		expected Reason
	}{
		{"missing service", func(in *BookingInput) { in.Service = nil }, ReasonServiceNotFound},
		{"inactive service", func(in *BookingInput) { in.Service = inactive }, ReasonServiceNotFound},
		{"no availability row", func(in *BookingInput) { in.Availability = nil }, ReasonClosed},
		{"unavailable day", func(in *BookingInput) { in.Availability = closed }, ReasonClosed},
		{"before opening", func(in *BookingInput) { in.StartTime = "08:30" }, ReasonOutsideWorkingHours},
		{"runs past closing", func(in *BookingInput) { in.StartTime = "16:45" }, ReasonOutsideWorkingHours},
		{"blocked", func(in *BookingInput) {
			in.Blocks = []*domain.BlockedPeriod{block("10:30", "11:00")}
		}, ReasonSlotBlocked},
		{"whole day blocked", func(in *BookingInput) {
			in.Blocks = []*domain.BlockedPeriod{wholeDayBlock()}
		}, ReasonSlotBlocked},
		{"overlapping booking", func(in *BookingInput) { in.StartTime = "09:45" }, ReasonAlreadyBooked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.modify(&in)

			decision := DecideBooking(in)
			assert.False(t, decision.Admitted)
			assert.Equal(t, tt.expected, decision.Reason)
			assert.NotEmpty(t, decision.Reason.Message())
		})
	}
}

func TestDecideBooking_Precedence(t *testing.T) {
	// Too soon, closed and blocked at once: lead time is checked first.
	in := baseInput()
	in.Availability = nil
	in.Blocks = []*domain.BlockedPeriod{wholeDayBlock()}
	in.Now = at(monday, 10, 0)
	assert.Equal(t, ReasonTooSoon, DecideBooking(in).Reason)

	// Closed wins over outside hours.
	in = baseInput()
	in.Availability = nil
	in.StartTime = "20:00"
	assert.Equal(t, ReasonClosed, DecideBooking(in).Reason)

	// Outside hours wins over blocked.
	in = baseInput()
	in.StartTime = "17:00"
	in.Blocks = []*domain.BlockedPeriod{wholeDayBlock()}
	assert.Equal(t, ReasonOutsideWorkingHours, DecideBooking(in).Reason)

	// Blocked wins over already booked.
	in = baseInput()
	in.StartTime = "10:00"
	in.Blocks = []*domain.BlockedPeriod{block("10:00", "10:30")}
	assert.Equal(t, ReasonSlotBlocked, DecideBooking(in).Reason)
}

func TestDecideBooking_RejectsMidnightCrossing(t *testing.T) {
	in := baseInput()
	in.Availability = openDay(1, "00:00", "23:59")
	in.Bookings = nil
	in.Service = haircut(90)
	in.StartTime = "23:30"

	decision := DecideBooking(in)
	assert.Equal(t, ReasonOutsideWorkingHours, decision.Reason)
}

// A long service starting right before a block is admitted; only the start is checked against blocks.
func TestDecideBooking_BlockChecksStartOnly(t *testing.T) {
	in := baseInput()
	in.Bookings = nil
	in.Service = haircut(90)
	in.StartTime = "11:00"
	in.Blocks = []*domain.BlockedPeriod{block("12:00", "13:00")}

	assert.True(t, DecideBooking(in).Admitted)
}

func TestDecideBooking_Deterministic(t *testing.T) {
	in := baseInput()
	first := DecideBooking(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DecideBooking(in))
	}
}

// Every slot offered by ComputeSlots must be admitted by DecideBooking with the same inputs.
func TestDecideBooking_AgreesWithComputeSlots(t *testing.T) {
	availability := openDay(1, "09:00", "15:00")
	blocks := []*domain.BlockedPeriod{block("12:00", "12:30")}
	bookings := []*domain.Booking{confirmed("10:00", "11:00")}
	now := at(monday, 8, 0)

	day := ComputeSlots(DayInput{
		Date:            monday,
		DurationMinutes: 60,
		Availability:    availability,
		Blocks:          blocks,
		Bookings:        bookings,
		Now:             now,
	})

	for _, slot := range day.Slots {
		decision := DecideBooking(BookingInput{
			Service:      haircut(60),
			Date:         monday,
			StartTime:    slot,
			Availability: availability,
			Blocks:       blocks,
			Bookings:     bookings,
			Now:          now,
		})
		assert.True(t, decision.Admitted, "slot %s", slot)
	}
}
