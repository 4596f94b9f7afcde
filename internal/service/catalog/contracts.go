package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// ServiceRepository bookable services storage
type ServiceRepository interface {
	List(ctx context.Context, salonID uuid.UUID, includeInactive bool) ([]*domain.Service, error)
	GetByID(ctx context.Context, salonID, id uuid.UUID) (*domain.Service, error)
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	Deactivate(ctx context.Context, salonID, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
