package create_booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
	availabilityRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/service"
	"github.com/m04kA/SalonBookingService/internal/scheduling"
)

// UseCase admits and stores a booking
type UseCase struct {
	salonID          uuid.UUID
	bookingRepo      BookingRepository
	serviceRepo      ServiceRepository
	availabilityRepo AvailabilityRepository
	blockedRepo      BlockedRepository
	txManager        TransactionManager
	events           EventPublisher
	decisions        DecisionRecorder
	timeProvider     TimeProvider
	newToken         func() (string, error)
	logger           Logger
}

func NewUseCase(
	salonID uuid.UUID,
	location *time.Location,
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	availabilityRepo AvailabilityRepository,
	blockedRepo BlockedRepository,
	txManager TransactionManager,
	events EventPublisher,
	decisions DecisionRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonID:          salonID,
		bookingRepo:      bookingRepo,
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		blockedRepo:      blockedRepo,
		txManager:        txManager,
		events:           events,
		decisions:        decisions,
		timeProvider:     &RealTimeProvider{Location: location},
		newToken:         newCancelToken,
		logger:           logger,
	}
}

// Execute validates the request and runs the admission check and the insert in one
// serializable transaction. Concurrent requests for the same slot end with exactly
// one confirmed booking; the loser gets a RejectionError with ReasonAlreadyBooked.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%s, date=%s, time=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := scheduling.DateOnly(req.Date, now.Location())

	token, err := uc.newToken()
	if err != nil {
		uc.logger.Error("CreateBooking: failed to generate cancel token: %v", err)
		return nil, fmt.Errorf("%w: cancel token: %v", ErrInternal, err)
	}

	var created *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		service, err := uc.serviceRepo.GetByID(txCtx, uc.salonID, req.ServiceID)
		if err != nil && !errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return fmt.Errorf("%w: get service: %w", ErrInternal, err)
		}

		availability, err := uc.availabilityRepo.GetByDay(txCtx, uc.salonID, domain.WeekdayIndex(date))
		if err != nil && !errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			return fmt.Errorf("%w: get availability: %w", ErrInternal, err)
		}

		blocks, err := uc.blockedRepo.ListByDate(txCtx, uc.salonID, date)
		if err != nil {
			return fmt.Errorf("%w: list blocked periods: %w", ErrInternal, err)
		}

		confirmed := domain.StatusConfirmed
		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			SalonID:       uc.salonID,
			StartDate:     &date,
			EndDate:       &date,
			Status:        &confirmed,
			LockForUpdate: true,
		})
		if err != nil {
			return fmt.Errorf("%w: list bookings: %w", ErrInternal, err)
		}

		decision := scheduling.DecideBooking(scheduling.BookingInput{
			Service:      service,
			Date:         date,
			StartTime:    req.StartTime,
			Availability: availability,
			Blocks:       blocks,
			Bookings:     bookings,
			Now:          now,
		})
		if !decision.Admitted {
			return rejected(decision.Reason)
		}

		booking := &domain.Booking{
			SalonID:       uc.salonID,
			ServiceID:     service.ID,
			CustomerID:    req.CustomerID,
			CustomerName:  strings.TrimSpace(req.CustomerName),
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			BookingDate:   date,
			StartTime:     req.StartTime,
			EndTime:       decision.EndTime,
			Status:        domain.StatusConfirmed,
			CancelToken:   token,
			ServiceName:   service.Name,
			ServicePrice:  service.Price,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if errors.Is(err, bookingRepo.ErrSlotConflict) {
			return rejected(scheduling.ReasonAlreadyBooked)
		}
		if err != nil {
			return fmt.Errorf("%w: create booking: %w", ErrInternal, err)
		}
		return nil
	})

	var rejection *RejectionError
	if errors.As(err, &rejection) {
		uc.decisions.RecordDecision(string(rejection.Reason))
		uc.logger.Warn("CreateBooking: rejected %s %s: %s",
			date.Format(domain.DateFormat), req.StartTime, rejection.Reason)
		return nil, err
	}
	if err != nil {
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.decisions.RecordDecision("admitted")
	uc.logger.Info("CreateBooking: created booking id=%s %s %s-%s",
		created.ID, date.Format(domain.DateFormat), created.StartTime, created.EndTime)

	uc.events.BookingConfirmed(ctx, created)

	return &Response{
		ID:            created.ID,
		ServiceID:     created.ServiceID,
		ServiceName:   created.ServiceName,
		ServicePrice:  created.ServicePrice,
		CustomerName:  created.CustomerName,
		CustomerEmail: created.CustomerEmail,
		CustomerPhone: created.CustomerPhone,
		BookingDate:   created.BookingDate,
		StartTime:     created.StartTime,
		EndTime:       created.EndTime,
		Status:        string(created.Status),
		CancelToken:   created.CancelToken,
		CreatedAt:     created.CreatedAt,
	}, nil
}

// newCancelToken returns 32 random bytes hex encoded.
func newCancelToken() (string, error) {
	buf := make([]byte, domain.CancelTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
