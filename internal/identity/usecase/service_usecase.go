package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/hubgate/internal/identity/domain"
)

// serviceUseCase implements ServiceUseCase.
type serviceUseCase struct {
	serviceRepo ServiceRepository
}

// NewServiceUseCase creates a new ServiceUseCase with the provided repository.
func NewServiceUseCase(serviceRepo ServiceRepository) ServiceUseCase {
	return &serviceUseCase{serviceRepo: serviceRepo}
}

// Create persists a new service.
func (s *serviceUseCase) Create(ctx context.Context, service *domain.Service) error {
	service.ID = uuid.Must(uuid.NewV7())
	return s.serviceRepo.Create(ctx, service)
}

// FindService retrieves a service by name.
func (s *serviceUseCase) FindService(ctx context.Context, name string) (*domain.Service, error) {
	return s.serviceRepo.GetByName(ctx, name)
}
