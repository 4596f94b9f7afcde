package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/service/availability/models"
)

// Service weekly opening hours of the salon
type Service struct {
	salonID          uuid.UUID
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

func NewService(salonID uuid.UUID, availabilityRepo AvailabilityRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		salonID:          salonID,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// List returns every configured weekday, Sunday first. Days without a row are closed.
func (s *Service) List(ctx context.Context) (*models.WeekResponse, error) {
	days, err := s.availabilityRepo.ListBySalon(ctx, s.salonID)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(days), nil
}

// Upsert creates or replaces the row for one weekday.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertDayRequest) (*models.DayResponse, error) {
	s.logger.Info("Upsert: day=%d %s-%s available=%t", req.DayOfWeek, req.StartTime, req.EndTime, req.IsAvailable)

	if err := validateDay(req); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.availabilityRepo.Upsert(ctx, req.ToDomainDay(s.salonID))
	if err != nil {
		s.logger.Error("Upsert: repository error for day=%d: %v", req.DayOfWeek, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved day=%d id=%s", saved.DayOfWeek, saved.ID)
	return models.FromDomainDay(saved), nil
}

// UpsertWeek applies several days in one transaction: either every day is saved or none.
// Invalid input is rejected before anything is written.
func (s *Service) UpsertWeek(ctx context.Context, reqs []models.UpsertDayRequest) (*models.WeekResponse, error) {
	seen := make(map[int]bool, len(reqs))
	for i := range reqs {
		if err := validateDay(&reqs[i]); err != nil {
			s.logger.Warn("UpsertWeek: validation failed: %v", err)
			return nil, err
		}
		if seen[reqs[i].DayOfWeek] {
			return nil, fmt.Errorf("%w: day %d given twice", ErrInvalidInput, reqs[i].DayOfWeek)
		}
		seen[reqs[i].DayOfWeek] = true
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		for i := range reqs {
			if _, err := s.Upsert(ctx, &reqs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("UpsertWeek: rolled back %d days: %v", len(reqs), err)
		return nil, err
	}

	return s.List(ctx)
}

func validateDay(req *models.UpsertDayRequest) error {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	return nil
}
