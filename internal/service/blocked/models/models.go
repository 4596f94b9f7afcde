package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// CreateBlockedPeriodRequest blocks a whole date, or a time range on it when both times are set
type CreateBlockedPeriodRequest struct {
	Date      time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    *string
}

// ListBlockedPeriodsRequest optional inclusive date range
type ListBlockedPeriodsRequest struct {
	From *time.Time
	To   *time.Time
}

type BlockedPeriodResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	StartTime *string   `json:"startTime"`
	EndTime   *string   `json:"endTime"`
	WholeDay  bool      `json:"wholeDay"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type BlockedPeriodListResponse struct {
	BlockedPeriods []BlockedPeriodResponse `json:"blockedPeriods"`
}

func FromDomainBlockedPeriod(p *domain.BlockedPeriod) *BlockedPeriodResponse {
	if p == nil {
		return nil
	}

	resp := &BlockedPeriodResponse{
		ID:        p.ID.String(),
		Date:      p.Date.Format(domain.DateFormat),
		WholeDay:  p.IsWholeDay(),
		Reason:    p.Reason,
		CreatedAt: p.CreatedAt,
	}
	if !p.IsWholeDay() {
		start, end := p.StartTime.String(), p.EndTime.String()
		resp.StartTime = &start
		resp.EndTime = &end
	}
	return resp
}

func FromDomainBlockedPeriodList(periods []*domain.BlockedPeriod) *BlockedPeriodListResponse {
	resp := &BlockedPeriodListResponse{
		BlockedPeriods: make([]BlockedPeriodResponse, 0, len(periods)),
	}
	for _, p := range periods {
		resp.BlockedPeriods = append(resp.BlockedPeriods, *FromDomainBlockedPeriod(p))
	}
	return resp
}

func (r *CreateBlockedPeriodRequest) ToDomainBlockedPeriod(salonID uuid.UUID) *domain.BlockedPeriod {
	return &domain.BlockedPeriod{
		SalonID:   salonID,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Reason:    r.Reason,
	}
}
