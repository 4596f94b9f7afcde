package blocked

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// BlockedRepository blocked periods storage
type BlockedRepository interface {
	Create(ctx context.Context, period *domain.BlockedPeriod) (*domain.BlockedPeriod, error)
	ListByRange(ctx context.Context, salonID uuid.UUID, from, to *time.Time) ([]*domain.BlockedPeriod, error)
	Delete(ctx context.Context, salonID, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
