package get_next_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
	serviceRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/service"
	"github.com/m04kA/SalonBookingService/internal/scheduling"
)

// UseCase finds the earliest free slots across the booking horizon
type UseCase struct {
	salonID          uuid.UUID
	limits           Limits
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
	limits Limits,
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
		limits:           limits,
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
	uc.logger.Info("GetNextSlots: service=%s, limit=%d", req.ServiceID, req.Limit)

	if req.ServiceID == uuid.Nil {
		return nil, fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}
	if req.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	limit := uc.effectiveLimit(req.Limit)

	now := uc.timeProvider.Now()
	from := scheduling.DateOnly(now, now.Location())
	to := from.AddDate(0, 0, scheduling.NextSlotsHorizonDays-1)

	var (
		service  *domain.Service
		days     []*domain.WeeklyAvailability
		blocks   []*domain.BlockedPeriod
		bookings []*domain.Booking
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

		days, err = uc.availabilityRepo.ListBySalon(txCtx, uc.salonID)
		if err != nil {
			return fmt.Errorf("%w: list availability: %v", ErrInternal, err)
		}

		blocks, err = uc.blockedRepo.ListByRange(txCtx, uc.salonID, &from, &to)
		if err != nil {
			return fmt.Errorf("%w: list blocked periods: %v", ErrInternal, err)
		}

		confirmed := domain.StatusConfirmed
		bookings, err = uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			SalonID:   uc.salonID,
			StartDate: &from,
			EndDate:   &to,
			Status:    &confirmed,
			Ascending: true,
		})
		if err != nil {
			return fmt.Errorf("%w: list bookings: %v", ErrInternal, err)
		}
		return nil
	})
	if errors.Is(err, ErrServiceNotFound) {
		uc.logger.Warn("GetNextSlots: service id=%s not found", req.ServiceID)
		return nil, err
	}
	if err != nil {
		uc.logger.Error("GetNextSlots: failed to read horizon state: %v", err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	next := scheduling.ComputeNextSlots(scheduling.NextInput{
		DurationMinutes: service.DurationMinutes,
		Availability:    availabilityByDay(days),
		BlocksByDate:    blocksByDate(blocks),
		BookingsByDate:  bookingsByDate(bookings),
		Now:             now,
		HorizonDays:     scheduling.NextSlotsHorizonDays,
		Limit:           limit,
	})
	uc.observer.ObserveSlots("next", len(next))

	slots := make([]Slot, 0, len(next))
	for _, s := range next {
		slots = append(slots, Slot{
			Date:    s.Date,
			Time:    s.Time,
			DayName: s.Date.Format(domain.DayNameFormat),
		})
	}

	uc.logger.Info("GetNextSlots: found %d of %d requested slots", len(slots), limit)

	return &Response{
		ServiceID:       service.ID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}

func (uc *UseCase) effectiveLimit(requested int) int {
	if requested == 0 {
		return uc.limits.Default
	}
	if uc.limits.Max > 0 && requested > uc.limits.Max {
		return uc.limits.Max
	}
	return requested
}

func availabilityByDay(days []*domain.WeeklyAvailability) map[int]*domain.WeeklyAvailability {
	out := make(map[int]*domain.WeeklyAvailability, len(days))
	for _, d := range days {
		out[d.DayOfWeek] = d
	}
	return out
}

func blocksByDate(blocks []*domain.BlockedPeriod) map[string][]*domain.BlockedPeriod {
	out := make(map[string][]*domain.BlockedPeriod)
	for _, b := range blocks {
		key := b.Date.Format(domain.DateFormat)
		out[key] = append(out[key], b)
	}
	return out
}

func bookingsByDate(bookings []*domain.Booking) map[string][]*domain.Booking {
	out := make(map[string][]*domain.Booking)
	for _, b := range bookings {
		key := b.BookingDate.Format(domain.DateFormat)
		out[key] = append(out[key], b)
	}
	return out
}
