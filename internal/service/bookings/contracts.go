package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// BookingRepository bookings storage
type BookingRepository interface {
	GetByID(ctx context.Context, salonID, id uuid.UUID) (*domain.Booking, error)
	GetByCancelToken(ctx context.Context, salonID uuid.UUID, token string) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, salonID, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error)
}

// EventPublisher notifies about cancellations
type EventPublisher interface {
	BookingCancelled(ctx context.Context, booking *domain.Booking, actor string)
}

// CancellationRecorder counts cancellations per actor
type CancellationRecorder interface {
	RecordCancellation(actor string)
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
