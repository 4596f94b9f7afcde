package create_blocked_period

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/service/blocked/models"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// CreateBlockedPeriodRequest HTTP request model. Omit both times to block the whole day.
type CreateBlockedPeriodRequest struct {
	Date      string            `json:"date"` // YYYY-MM-DD
	StartTime *types.TimeString `json:"startTime,omitempty"`
	EndTime   *types.TimeString `json:"endTime,omitempty"`
	Reason    *string           `json:"reason,omitempty"`
}

func (r *CreateBlockedPeriodRequest) ToServiceRequest(date time.Time) *models.CreateBlockedPeriodRequest {
	return &models.CreateBlockedPeriodRequest{
		Date:      date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Reason:    r.Reason,
	}
}
