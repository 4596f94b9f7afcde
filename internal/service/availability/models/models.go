package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// UpsertDayRequest sets the opening hours of one weekday
type UpsertDayRequest struct {
	DayOfWeek   int              `json:"dayOfWeek"` // 0 = Sunday
	StartTime   types.TimeString `json:"startTime"`
	EndTime     types.TimeString `json:"endTime"`
	IsAvailable bool             `json:"isAvailable"`
}

type DayResponse struct {
	ID          string    `json:"id"`
	DayOfWeek   int       `json:"dayOfWeek"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	IsAvailable bool      `json:"isAvailable"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type WeekResponse struct {
	Days []DayResponse `json:"days"`
}

func FromDomainDay(d *domain.WeeklyAvailability) *DayResponse {
	if d == nil {
		return nil
	}
	return &DayResponse{
		ID:          d.ID.String(),
		DayOfWeek:   d.DayOfWeek,
		StartTime:   d.StartTime.String(),
		EndTime:     d.EndTime.String(),
		IsAvailable: d.IsAvailable,
		UpdatedAt:   d.UpdatedAt,
	}
}

func FromDomainWeek(days []*domain.WeeklyAvailability) *WeekResponse {
	resp := &WeekResponse{Days: make([]DayResponse, 0, len(days))}
	for _, d := range days {
		resp.Days = append(resp.Days, *FromDomainDay(d))
	}
	return resp
}

// ToDomainDay builds the row to upsert for salonID.
func (r *UpsertDayRequest) ToDomainDay(salonID uuid.UUID) *domain.WeeklyAvailability {
	return &domain.WeeklyAvailability{
		SalonID:     salonID,
		DayOfWeek:   r.DayOfWeek,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsAvailable: r.IsAvailable,
	}
}
