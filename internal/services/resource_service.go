package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/resource-dashboard/internal/models"
	"github.com/yukikurage/resource-dashboard/internal/period"
	"github.com/yukikurage/resource-dashboard/internal/repository"
	"github.com/yukikurage/resource-dashboard/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrResourceNotFound  = errors.New("resource not found")
	ErrDuplicateResource = errors.New("an active resource with this name, year, and month already exists")
	ErrNameRequired      = errors.New("name is required")
	ErrInvalidPeriod     = errors.New("year and month must form a valid period")
)

// ResourceService handles resource attendance records
type ResourceService struct {
	resourceRepo repository.ResourceRepository
}

// NewResourceService creates a new ResourceService
func NewResourceService(resourceRepo repository.ResourceRepository) *ResourceService {
	return &ResourceService{
		resourceRepo: resourceRepo,
	}
}

// CreateResourceInput represents input for creating a resource
type CreateResourceInput struct {
	Name        string
	Period      period.Period
	WorkingDays *decimal.Decimal
	PresentDay  decimal.Decimal
}

// UpdateResourceInput represents input for updating a resource.
// Nil fields keep their stored value.
type UpdateResourceInput struct {
	Name        *string
	WorkingDays *decimal.Decimal
	PresentDay  *decimal.Decimal
}

// ListResourcesInput represents filters for listing resources
type ListResourcesInput struct {
	Year            *int
	Month           *int
	IncludeInactive bool
	Pagination      *utils.PaginationParams
}

// Create stores a new active resource for the given period
func (s *ResourceService) Create(input CreateResourceInput) (*models.Resource, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !input.Period.Valid() {
		return nil, ErrInvalidPeriod
	}

	if err := s.ensureUnique(name, input.Period, 0); err != nil {
		return nil, err
	}

	resource := &models.Resource{
		Name:        name,
		Year:        input.Period.Year,
		Month:       input.Period.Month,
		WorkingDays: input.WorkingDays,
		PresentDay:  input.PresentDay,
		IsActive:    true,
	}

	if err := s.resourceRepo.Create(resource); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return resource, nil
}

// Update changes an existing resource; its period never changes
func (s *ResourceService) Update(id uint64, input UpdateResourceInput) (*models.Resource, error) {
	resource, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		resource.Name = name
	}
	if input.WorkingDays != nil {
		resource.WorkingDays = input.WorkingDays
	}
	if input.PresentDay != nil {
		resource.PresentDay = *input.PresentDay
	}

	if resource.IsActive {
		if err := s.ensureUnique(resource.Name, resource.Period(), resource.ID); err != nil {
			return nil, err
		}
	}

	if err := s.resourceRepo.Update(resource); err != nil {
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}

	return resource, nil
}

// Delete soft-deletes a resource
func (s *ResourceService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.resourceRepo.SoftDelete(id); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}

	return nil
}

// Get returns a resource whatever its active flag
func (s *ResourceService) Get(id uint64) (*models.Resource, error) {
	resource, err := s.resourceRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}
	return resource, nil
}

// List returns resources matching the filters, active ones by default
func (s *ResourceService) List(input ListResourcesInput) ([]models.Resource, int64, error) {
	filter := repository.ResourceFilter{
		Year:       input.Year,
		Month:      input.Month,
		Pagination: input.Pagination,
	}

	var (
		resources []models.Resource
		total     int64
		err       error
	)
	if input.IncludeInactive {
		resources, total, err = s.resourceRepo.ListAll(filter)
	} else {
		resources, total, err = s.resourceRepo.ListActive(filter)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list resources: %w", err)
	}

	return resources, total, nil
}

// Upsert updates the active resource for (name, period) or creates it.
// It reports whether a new record was created.
func (s *ResourceService) Upsert(input CreateResourceInput) (*models.Resource, bool, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, false, ErrNameRequired
	}
	if !input.Period.Valid() {
		return nil, false, ErrInvalidPeriod
	}

	existing, err := s.resourceRepo.FindActiveByName(name, input.Period)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("failed to find resource: %w", err)
		}
		input.Name = name
		created, err := s.Create(input)
		return created, err == nil, err
	}

	if input.WorkingDays != nil {
		existing.WorkingDays = input.WorkingDays
	}
	existing.PresentDay = input.PresentDay
	if err := s.resourceRepo.Update(existing); err != nil {
		return nil, false, fmt.Errorf("failed to update resource: %w", err)
	}
	return existing, false, nil
}

// ensureUnique verifies no other active resource shares (name, period)
func (s *ResourceService) ensureUnique(name string, p period.Period, excludeID uint64) error {
	exists, err := s.resourceRepo.ExistsActive(name, p, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check resource uniqueness: %w", err)
	}
	if exists {
		return ErrDuplicateResource
	}
	return nil
}

// FindOrCreate returns the active resource for (name, period), creating an
// empty one when none exists. It reports whether a new record was created.
func (s *ResourceService) FindOrCreate(name string, p period.Period) (*models.Resource, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, ErrNameRequired
	}

	existing, err := s.resourceRepo.FindActiveByName(name, p)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to find resource: %w", err)
	}

	created, err := s.Create(CreateResourceInput{Name: name, Period: p})
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}
