package get_available_slots

import (
	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SalonBookingService/internal/usecase/get_available_slots"
)

const msgClosed = "Salon is closed on this day"

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string   `json:"date"`
	ServiceID       string   `json:"serviceId"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"`
	Closed          bool     `json:"closed"`
	Message         string   `json:"message,omitempty"`
}

func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	out := &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID.String(),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
		Closed:          resp.Closed,
	}
	if resp.Closed {
		out.Message = msgClosed
	}
	return out
}

// ToUseCaseRequest builds the use case request from query parameters.
func ToUseCaseRequest(serviceIDStr, dateStr string) (*getAvailableSlots.Request, error) {
	serviceID, err := uuid.Parse(serviceIDStr)
	if err != nil {
		return nil, err
	}

	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
