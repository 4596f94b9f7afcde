package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
	serviceRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/service"
	"github.com/m04kA/SalonBookingService/internal/service/catalog/models"
)

// Service the salon's list of bookable treatments
type Service struct {
	salonID     uuid.UUID
	serviceRepo ServiceRepository
	logger      Logger
}

func NewService(salonID uuid.UUID, serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		salonID:     salonID,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// List returns services ordered by name. Inactive ones only for admins.
func (s *Service) List(ctx context.Context, includeInactive bool) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.List(ctx, s.salonID, includeInactive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// Get returns an active service.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.ServiceResponse, error) {
	svc, err := s.get(ctx, "Get", id)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		s.logger.Warn("Get: service id=%s is inactive", id)
		return nil, ErrServiceNotFound
	}
	return models.FromDomainService(svc), nil
}

func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%q duration=%d", req.Name, req.DurationMinutes)

	svc := req.ToDomainService(s.salonID)
	svc.Name = strings.TrimSpace(svc.Name)
	if err := validateService(svc); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created service id=%s", created.ID)
	return models.FromDomainService(created), nil
}

// Update applies a partial update. Bookings already made keep their copied name and price.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%s", id)

	svc, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	req.ApplyToService(svc)
	svc.Name = strings.TrimSpace(svc.Name)
	if err := validateService(svc); err != nil {
		s.logger.Warn("Update: validation failed for service id=%s: %v", id, err)
		return nil, err
	}

	updated, err := s.serviceRepo.Update(ctx, svc)
	if errors.Is(err, serviceRepo.ErrServiceNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		s.logger.Error("Update: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(updated), nil
}

// Deactivate is the delete operation; the row stays for booking history.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Deactivate: deactivating service id=%s", id)

	err := s.serviceRepo.Deactivate(ctx, s.salonID, id)
	if errors.Is(err, serviceRepo.ErrServiceNotFound) {
		s.logger.Warn("Deactivate: service id=%s not found", id)
		return ErrServiceNotFound
	}
	if err != nil {
		s.logger.Error("Deactivate: repository error for service id=%s: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) get(ctx context.Context, op string, id uuid.UUID) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, s.salonID, id)
	if errors.Is(err, serviceRepo.ErrServiceNotFound) {
		s.logger.Warn("%s: service id=%s not found", op, id)
		return nil, ErrServiceNotFound
	}
	if err != nil {
		s.logger.Error("%s: repository error for service id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return svc, nil
}

func validateService(svc *domain.Service) error {
	if svc.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(svc.Name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	if svc.Description != nil && len(*svc.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description is longer than %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	if svc.DurationMinutes < domain.MinServiceDurationMinutes || svc.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d", ErrInvalidInput,
			domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if svc.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
