package get_blocked_periods

import (
	"context"

	"github.com/m04kA/SalonBookingService/internal/service/blocked/models"
)

type BlockedService interface {
	List(ctx context.Context, req *models.ListBlockedPeriodsRequest) (*models.BlockedPeriodListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
