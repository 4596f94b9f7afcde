package blocked

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
	blockedRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/blocked"
	"github.com/m04kA/SalonBookingService/internal/service/blocked/models"
)

// Service closes dates or parts of dates for booking
type Service struct {
	salonID     uuid.UUID
	blockedRepo BlockedRepository
	logger      Logger
}

func NewService(salonID uuid.UUID, blockedRepo BlockedRepository, logger Logger) *Service {
	return &Service{
		salonID:     salonID,
		blockedRepo: blockedRepo,
		logger:      logger,
	}
}

func (s *Service) List(ctx context.Context, req *models.ListBlockedPeriodsRequest) (*models.BlockedPeriodListResponse, error) {
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}

	periods, err := s.blockedRepo.ListByRange(ctx, s.salonID, req.From, req.To)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedPeriodList(periods), nil
}

// Create stores a block. Both times or neither; a partial block needs start < end.
func (s *Service) Create(ctx context.Context, req *models.CreateBlockedPeriodRequest) (*models.BlockedPeriodResponse, error) {
	s.logger.Info("Create: blocking date=%s", req.Date.Format(domain.DateFormat))

	if err := validateBlock(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.blockedRepo.Create(ctx, req.ToDomainBlockedPeriod(s.salonID))
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created blocked period id=%s", created.ID)
	return models.FromDomainBlockedPeriod(created), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Delete: deleting blocked period id=%s", id)

	err := s.blockedRepo.Delete(ctx, s.salonID, id)
	if errors.Is(err, blockedRepo.ErrBlockedPeriodNotFound) {
		s.logger.Warn("Delete: blocked period id=%s not found", id)
		return ErrBlockedPeriodNotFound
	}
	if err != nil {
		s.logger.Error("Delete: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

func validateBlock(req *models.CreateBlockedPeriodRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if (req.StartTime == nil) != (req.EndTime == nil) {
		return fmt.Errorf("%w: startTime and endTime must be given together", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxBlockReasonLength {
		return fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
	}
	if req.StartTime == nil {
		return nil
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(*req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	return nil
}
