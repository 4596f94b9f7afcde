package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
	availabilityRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/availability"
	serviceRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/service"
	"github.com/m04kA/SalonBookingService/internal/scheduling"
)

// UseCase lists the bookable start times of a date
type UseCase struct {
	salonID          uuid.UUID
	bookingRepo      BookingRepository
	serviceRepo      ServiceRepository
	availabilityRepo AvailabilityRepository
	blockedRepo      BlockedRepository
	txManager        TransactionManager
	observer         SlotsObserver
	timeProvider     TimeProvider
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
	observer SlotsObserver,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonID:          salonID,
		bookingRepo:      bookingRepo,
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		blockedRepo:      blockedRepo,
		txManager:        txManager,
		observer:         observer,
		timeProvider:     &RealTimeProvider{Location: location},
		logger:           logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	if req.ServiceID == uuid.Nil {
		return nil, fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	date := scheduling.DateOnly(req.Date, now.Location())

	var (
		service      *domain.Service
		availability *domain.WeeklyAvailability
		blocks       []*domain.BlockedPeriod
		bookings     []*domain.Booking
	)

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error

		service, err = uc.serviceRepo.GetByID(txCtx, uc.salonID, req.ServiceID)
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: get service: %v", ErrInternal, err)
		}
		if !service.IsActive {
			return ErrServiceNotFound
		}

		availability, err = uc.availabilityRepo.GetByDay(txCtx, uc.salonID, domain.WeekdayIndex(date))
		if err != nil && !errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			return fmt.Errorf("%w: get availability: %v", ErrInternal, err)
		}

		blocks, err = uc.blockedRepo.ListByDate(txCtx, uc.salonID, date)
		if err != nil {
			return fmt.Errorf("%w: list blocked periods: %v", ErrInternal, err)
		}

		confirmed := domain.StatusConfirmed
		bookings, err = uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			SalonID:   uc.salonID,
			StartDate: &date,
			EndDate:   &date,
			Status:    &confirmed,
		})
		if err != nil {
			return fmt.Errorf("%w: list bookings: %v", ErrInternal, err)
		}
		return nil
	})
	if errors.Is(err, ErrServiceNotFound) {
		uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
		return nil, err
	}
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to read day state: %v", err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	day := scheduling.ComputeSlots(scheduling.DayInput{
		Date:            date,
		DurationMinutes: service.DurationMinutes,
		Availability:    availability,
		Blocks:          blocks,
		Bookings:        bookings,
		Now:             now,
	})
	uc.observer.ObserveSlots("day", len(day.Slots))

	uc.logger.Info("GetAvailableSlots: %d slots on %s (closed=%t)",
		len(day.Slots), date.Format(domain.DateFormat), day.Closed)

	return &Response{
		Date:            date,
		ServiceID:       service.ID,
		DurationMinutes: service.DurationMinutes,
		Slots:           day.Slots,
		Closed:          day.Closed,
	}, nil
}
