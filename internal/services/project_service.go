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
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidProjectType = errors.New("invalid project type")
	ErrUnknownResource    = errors.New("referenced resource does not exist or is inactive")
)

// ProjectService handles project reports and their resource references
type ProjectService struct {
	projectRepo  repository.ProjectRepository
	resourceRepo repository.ResourceRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, resourceRepo repository.ResourceRepository) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		resourceRepo: resourceRepo,
	}
}

// ProjectInput represents the full editable state of a project.
// Year and Month fall back to Default when nil.
type ProjectInput struct {
	Name               string
	Type               models.ProjectType
	Year               *int
	Month              *int
	Default            period.Period
	ResourceIDs        []uint64
	AssignedResourceID *uint64
	PointOfContactID   *uint64
	PresentDay         decimal.Decimal
	BillableDays       decimal.Decimal
	NonBillableDays    decimal.Decimal
	IsActive           *bool
}

// ListProjectsInput represents filters for listing projects
type ListProjectsInput struct {
	Year       *int
	Month      *int
	Pagination *utils.PaginationParams
}

// ProjectList is a page of projects plus the values offered by the filter UI
type ProjectList struct {
	Projects []models.Project
	Total    int64
	Years    []int
	Months   []int
}

// Create stores a new project with its member and role references
func (s *ProjectService) Create(input ProjectInput) (*models.Project, error) {
	project := &models.Project{IsActive: true}
	if err := s.apply(project, input); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.Get(project.ID)
}

// Update replaces the editable state of a project
func (s *ProjectService) Update(id uint64, input ProjectInput) (*models.Project, error) {
	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	// A missing year or month keeps the project's own value.
	input.Default = project.Period()
	if err := s.apply(project, input); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.Get(id)
}

// Delete soft-deletes a project
func (s *ProjectService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.projectRepo.SoftDelete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// Get returns a project with relations whatever its active flag
func (s *ProjectService) Get(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// List returns active projects; year and month filter independently
func (s *ProjectService) List(input ListProjectsInput) (*ProjectList, error) {
	projects, total, err := s.projectRepo.ListActive(repository.ProjectFilter{
		Year:          input.Year,
		Month:         input.Month,
		WithRelations: true,
		Pagination:    input.Pagination,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	years, months, err := s.projectRepo.ActivePeriods()
	if err != nil {
		return nil, fmt.Errorf("failed to load project periods: %w", err)
	}

	return &ProjectList{
		Projects: projects,
		Total:    total,
		Years:    years,
		Months:   months,
	}, nil
}

// Options returns the active projects of a period for selection widgets
func (s *ProjectService) Options(p period.Period) ([]models.Project, error) {
	projects, _, err := s.projectRepo.ListActive(repository.ProjectFilter{
		Year:  &p.Year,
		Month: &p.Month,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list project options: %w", err)
	}
	return projects, nil
}

// EnsureMember finds or creates the active project named name in p and adds
// resourceID to its members. New projects are billable with the given days.
func (s *ProjectService) EnsureMember(name string, p period.Period, resourceID uint64, billable, nonBillable decimal.Decimal) (*models.Project, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, ErrNameRequired
	}
	if !p.Valid() {
		return nil, false, ErrInvalidPeriod
	}

	created := false
	project, err := s.projectRepo.FindActiveByName(name, p)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("failed to find project: %w", err)
		}
		project = &models.Project{
			Name:            name,
			Type:            models.ProjectTypeBillable,
			Year:            p.Year,
			Month:           p.Month,
			BillableDays:    billable,
			NonBillableDays: nonBillable,
			IsActive:        true,
		}
		if err := s.projectRepo.Create(project); err != nil {
			return nil, false, fmt.Errorf("failed to create project: %w", err)
		}
		created = true
	}

	if err := s.projectRepo.AddMember(project.ID, resourceID); err != nil {
		return nil, false, fmt.Errorf("failed to add project member: %w", err)
	}

	return project, created, nil
}

// apply validates input and copies it onto project
func (s *ProjectService) apply(project *models.Project, input ProjectInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrNameRequired
	}
	if !input.Type.Valid() {
		return ErrInvalidProjectType
	}

	p := input.Default
	if input.Year != nil {
		p.Year = *input.Year
	}
	if input.Month != nil {
		p.Month = *input.Month
	}
	if !p.Valid() {
		return ErrInvalidPeriod
	}

	members, err := s.activeResources(input.ResourceIDs)
	if err != nil {
		return err
	}
	if err := s.ensureActive(input.AssignedResourceID); err != nil {
		return err
	}
	if err := s.ensureActive(input.PointOfContactID); err != nil {
		return err
	}

	project.Name = name
	project.Type = input.Type
	project.Year = p.Year
	project.Month = p.Month
	project.Resources = members
	project.AssignedResourceID = input.AssignedResourceID
	project.PointOfContactID = input.PointOfContactID
	project.AssignedResource = nil
	project.PointOfContact = nil
	project.PresentDay = input.PresentDay
	project.BillableDays = input.BillableDays
	project.NonBillableDays = input.NonBillableDays
	if input.IsActive != nil {
		project.IsActive = *input.IsActive
	}

	return nil
}

func (s *ProjectService) activeResources(ids []uint64) ([]models.Resource, error) {
	if len(ids) == 0 {
		return []models.Resource{}, nil
	}

	unique := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	resources, err := s.resourceRepo.FindActiveByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load resources: %w", err)
	}
	if len(resources) != len(unique) {
		return nil, ErrUnknownResource
	}
	return resources, nil
}

func (s *ProjectService) ensureActive(id *uint64) error {
	if id == nil {
		return nil
	}
	if _, err := s.resourceRepo.FindActiveByID(*id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownResource
		}
		return fmt.Errorf("failed to find resource: %w", err)
	}
	return nil
}
