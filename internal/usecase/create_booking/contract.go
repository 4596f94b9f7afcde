package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// BookingRepository bookings storage
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
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

// TransactionManager runs the admission check and insert atomically
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher notifies about confirmed bookings after commit
type EventPublisher interface {
	BookingConfirmed(ctx context.Context, booking *domain.Booking)
}

// DecisionRecorder counts admission outcomes
type DecisionRecorder interface {
	RecordDecision(reason string)
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
