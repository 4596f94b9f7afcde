package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// BookingRepository bookings storage
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ServiceRepository service catalog storage
type ServiceRepository interface {
	GetByID(ctx context.Context, salonID, id uuid.UUID) (*domain.Service, error)
}

// AvailabilityRepository weekly opening hours storage
type AvailabilityRepository interface {
	GetByDay(ctx context.Context, salonID uuid.UUID, dayOfWeek int) (*domain.WeeklyAvailability, error)
}

// BlockedRepository blocked periods storage
type BlockedRepository interface {
	ListByDate(ctx context.Context, salonID uuid.UUID, date time.Time) ([]*domain.BlockedPeriod, error)
}

// TransactionManager gives all reads one snapshot
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotsObserver records result sizes
type SlotsObserver interface {
	ObserveSlots(query string, count int)
}

// TimeProvider current time source (replaced in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger printf-style logger
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider wall clock in the salon's location
type RealTimeProvider struct {
	Location *time.Location
}

func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
