package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// AvailabilityRepository weekly opening hours storage
type AvailabilityRepository interface {
	ListBySalon(ctx context.Context, salonID uuid.UUID) ([]*domain.WeeklyAvailability, error)
	Upsert(ctx context.Context, day *domain.WeeklyAvailability) (*domain.WeeklyAvailability, error)
}

// TransactionManager runs fn in one transaction
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger printf-style logger
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
