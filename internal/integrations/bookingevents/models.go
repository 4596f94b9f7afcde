package bookingevents

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// Logger printf-style logger
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Salon contact details copied into every event for the email templates.
type Salon struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Event is the message value written to the bookings topic.
type Event struct {
	Type          string  `json:"type"`
	OccurredAt    string  `json:"occurredAt"`
	BookingID     string  `json:"bookingId"`
	Status        string  `json:"status"`
	CancelledBy   string  `json:"cancelledBy,omitempty"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	ServiceName   string  `json:"serviceName"`
	ServicePrice  float64 `json:"servicePrice"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	CancelToken   string  `json:"cancelToken,omitempty"`
	Salon         Salon   `json:"salon"`
}

func newEvent(eventType string, b *domain.Booking, salon Salon, actor string, now time.Time) Event {
	event := Event{
		Type:          eventType,
		OccurredAt:    now.UTC().Format(time.RFC3339),
		BookingID:     b.ID.String(),
		Status:        string(b.Status),
		CancelledBy:   actor,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		ServiceName:   b.ServiceName,
		ServicePrice:  b.ServicePrice,
		Date:          b.BookingDate.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		EndTime:       b.EndTime.String(),
		Salon:         salon,
	}
	// Only the confirmation email offers the cancel link.
	if eventType == EventBookingConfirmed {
		event.CancelToken = b.CancelToken
	}
	return event
}
