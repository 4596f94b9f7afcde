package update_availability

import (
	"context"

	"github.com/m04kA/SalonBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	UpsertWeek(ctx context.Context, reqs []models.UpsertDayRequest) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
