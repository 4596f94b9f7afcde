package get_next_slots

import (
	"github.com/m04kA/SalonBookingService/internal/domain"
	getNextSlots "github.com/m04kA/SalonBookingService/internal/usecase/get_next_slots"
)

type NextSlotsResponse struct {
	ServiceID       string     `json:"serviceId"`
	DurationMinutes int        `json:"durationMinutes"`
	Slots           []NextSlot `json:"slots"`
}

type NextSlot struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	DayName string `json:"dayName"`
}

func FromUseCaseResponse(resp *getNextSlots.Response) *NextSlotsResponse {
	slots := make([]NextSlot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = NextSlot{
			Date:    s.Date.Format(domain.DateFormat),
			Time:    s.Time.String(),
			DayName: s.DayName,
		}
	}
	return &NextSlotsResponse{
		ServiceID:       resp.ServiceID.String(),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
