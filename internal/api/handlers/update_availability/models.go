package update_availability

import (
	"github.com/m04kA/SalonBookingService/internal/service/availability/models"
)

// UpdateAvailabilityRequest HTTP request model. Days not listed keep their hours.
type UpdateAvailabilityRequest struct {
	Days []models.UpsertDayRequest `json:"days"`
}
