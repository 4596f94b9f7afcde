package models

import (
	"errors"
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// ErrInvalidStatus unknown or disallowed status value
var ErrInvalidStatus = errors.New("invalid booking status")

// Actors recorded on cancellations
const (
	ActorCustomer = "customer"
	ActorAdmin    = "admin"
)

// ListBookingsRequest admin listing filter; nil fields are not applied
type ListBookingsRequest struct {
	Date   *time.Time
	Status *string
}

// BookingResponse booking as returned by the API. The cancel token is only ever
// returned by the create endpoint.
type BookingResponse struct {
	ID            string  `json:"id"`
	ServiceID     string  `json:"serviceId"`
	ServiceName   string  `json:"serviceName"`
	ServicePrice  float64 `json:"servicePrice"`
	CustomerID    *string `json:"customerId,omitempty"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Date          string  `json:"date"`      // "2025-03-10"
	StartTime     string  `json:"startTime"` // "10:00"
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	CancelledAt   *string `json:"cancelledAt,omitempty"` // RFC 3339

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CustomerBookingsResponse a customer's history split at today.
// Upcoming holds confirmed bookings from today on; everything else is Past.
type CustomerBookingsResponse struct {
	Upcoming []BookingResponse `json:"upcoming"`
	Past     []BookingResponse `json:"past"`
}

func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID.String(),
		ServiceID:     b.ServiceID.String(),
		ServiceName:   b.ServiceName,
		ServicePrice:  b.ServicePrice,
		CustomerID:    b.CustomerID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Date:          b.BookingDate.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		EndTime:       b.EndTime.String(),
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelled := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus parses any known status.
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToAdminTargetStatus parses a status an admin may move a confirmed booking to.
func ToAdminTargetStatus(status string) (domain.BookingStatus, error) {
	s, err := ToDomainBookingStatus(status)
	if err != nil {
		return "", err
	}
	if s == domain.StatusConfirmed {
		return "", ErrInvalidStatus
	}
	return s, nil
}
