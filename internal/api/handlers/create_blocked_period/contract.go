package create_blocked_period

import (
	"context"

	"github.com/m04kA/SalonBookingService/internal/service/blocked/models"
)

type BlockedService interface {
	Create(ctx context.Context, req *models.CreateBlockedPeriodRequest) (*models.BlockedPeriodResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
