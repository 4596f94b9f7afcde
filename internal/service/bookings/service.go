package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SalonBookingService/internal/scheduling"
	"github.com/m04kA/SalonBookingService/internal/service/bookings/models"
)

// Service booking lookups, listings and status changes after creation
type Service struct {
	salonID       uuid.UUID
	bookingRepo   BookingRepository
	events        EventPublisher
	cancellations CancellationRecorder
	timeProvider  TimeProvider
	logger        Logger
}

func NewService(
	salonID uuid.UUID,
	location *time.Location,
	bookingRepo BookingRepository,
	events EventPublisher,
	cancellations CancellationRecorder,
	logger Logger,
) *Service {
	return &Service{
		salonID:       salonID,
		bookingRepo:   bookingRepo,
		events:        events,
		cancellations: cancellations,
		timeProvider:  &RealTimeProvider{Location: location},
		logger:        logger,
	}
}

// Get returns a booking by id or cancel token.
// A token grants access on its own; an id only to the customer who owns the booking.
func (s *Service) Get(ctx context.Context, idOrToken string, customerID *string) (*models.BookingResponse, error) {
	booking, err := s.resolve(ctx, "Get", idOrToken, customerID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// CancelByCustomer cancels a confirmed booking on the customer's behalf.
// Rejected while the appointment is less than 24 whole hours away; appointments
// already in the past stay cancellable.
func (s *Service) CancelByCustomer(ctx context.Context, idOrToken string, customerID *string) (*models.BookingResponse, error) {
	booking, err := s.resolve(ctx, "CancelByCustomer", idOrToken, customerID)
	if err != nil {
		return nil, err
	}

	if !booking.CanChangeStatus() {
		s.logger.Warn("CancelByCustomer: booking id=%s has status=%s", booking.ID, booking.Status)
		return nil, ErrCannotChangeStatus
	}

	now := s.timeProvider.Now()
	start := scheduling.SlotInstant(booking.BookingDate, booking.StartTime, now.Location())
	if !scheduling.CanCustomerCancel(start, now) {
		s.logger.Warn("CancelByCustomer: booking id=%s starts at %s, inside the notice window",
			booking.ID, start.Format(time.RFC3339))
		return nil, ErrCancellationWindow
	}

	return s.changeStatus(ctx, "CancelByCustomer", booking.ID, domain.StatusCancelled, models.ActorCustomer)
}

// UpdateStatus moves a confirmed booking to cancelled or completed. Admin only; no notice window.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%s to status=%s", id, status)

	target, err := models.ToAdminTargetStatus(status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", status, id)
		return nil, fmt.Errorf("%w: status must be cancelled or completed", ErrInvalidInput)
	}

	return s.changeStatus(ctx, "UpdateStatus", id, target, models.ActorAdmin)
}

// ListBookings admin listing, optionally for one date and one status.
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter := domain.BookingsFilter{SalonID: s.salonID}

	if req.Date != nil {
		date := scheduling.DateOnly(*req.Date, s.timeProvider.Now().Location())
		filter.StartDate = &date
		filter.EndDate = &date
	}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBookings: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// ListCustomerBookings returns the customer's history split into upcoming and past.
func (s *Service) ListCustomerBookings(ctx context.Context, customerID string) (*models.CustomerBookingsResponse, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		SalonID:    s.salonID,
		CustomerID: &customerID,
	})
	if err != nil {
		s.logger.Error("ListCustomerBookings: repository error for customer=%s: %v", customerID, err)
		return nil, fmt.Errorf("%w: ListCustomerBookings - repository error: %v", ErrInternal, err)
	}

	today := s.timeProvider.Now().Format(domain.DateFormat)

	resp := &models.CustomerBookingsResponse{
		Upcoming: make([]models.BookingResponse, 0),
		Past:     make([]models.BookingResponse, 0),
	}
	for _, b := range bookings {
		item := *models.FromDomainBooking(b)
		if b.IsActive() && b.BookingDate.Format(domain.DateFormat) >= today {
			resp.Upcoming = append(resp.Upcoming, item)
		} else {
			resp.Past = append(resp.Past, item)
		}
	}

	s.logger.Info("ListCustomerBookings: customer=%s upcoming=%d past=%d",
		customerID, len(resp.Upcoming), len(resp.Past))
	return resp, nil
}

// ListRange returns every booking with from <= date <= to, oldest first.
func (s *Service) ListRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}
	if to.Sub(from) > domain.MaxExportRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidInput, domain.MaxExportRangeDays)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		SalonID:   s.salonID,
		StartDate: &from,
		EndDate:   &to,
		Ascending: true,
	})
	if err != nil {
		s.logger.Error("ListRange: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRange - repository error: %v", ErrInternal, err)
	}
	return bookings, nil
}

// resolve finds a booking by id or cancel token and applies the ownership rule.
func (s *Service) resolve(ctx context.Context, op, idOrToken string, customerID *string) (*domain.Booking, error) {
	if idOrToken == "" {
		return nil, fmt.Errorf("%w: booking id or token is required", ErrInvalidInput)
	}

	var (
		booking *domain.Booking
		err     error
	)

	id, parseErr := uuid.Parse(idOrToken)
	byID := parseErr == nil
	if byID {
		booking, err = s.bookingRepo.GetByID(ctx, s.salonID, id)
	} else {
		booking, err = s.bookingRepo.GetByCancelToken(ctx, s.salonID, idOrToken)
	}

	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking not found", op)
		return nil, ErrBookingNotFound
	}
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if byID && !ownedBy(booking, customerID) {
		s.logger.Warn("%s: booking id=%s requested without owning customer", op, booking.ID)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

func (s *Service) changeStatus(ctx context.Context, op string, id uuid.UUID, status domain.BookingStatus, actor string) (*models.BookingResponse, error) {
	updated, err := s.bookingRepo.UpdateStatus(ctx, s.salonID, id, status)
	if errors.Is(err, bookingRepo.ErrStatusNotConfirmed) {
		// Either already terminal or gone; tell them apart for the caller.
		if _, getErr := s.bookingRepo.GetByID(ctx, s.salonID, id); errors.Is(getErr, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Warn("%s: booking id=%s is no longer confirmed", op, id)
		return nil, ErrCannotChangeStatus
	}
	if err != nil {
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: booking id=%s is now %s (by %s)", op, id, status, actor)

	if status == domain.StatusCancelled {
		s.cancellations.RecordCancellation(actor)
		s.events.BookingCancelled(ctx, updated, actor)
	}

	return models.FromDomainBooking(updated), nil
}

func ownedBy(b *domain.Booking, customerID *string) bool {
	return customerID != nil && b.CustomerID != nil && *customerID == *b.CustomerID
}
