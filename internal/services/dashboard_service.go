package services

import (
	"fmt"
	"time"

	"github.com/yukikurage/resource-dashboard/internal/constants"
	"github.com/yukikurage/resource-dashboard/internal/metrics"
	"github.com/yukikurage/resource-dashboard/internal/models"
	"github.com/yukikurage/resource-dashboard/internal/period"
	"github.com/yukikurage/resource-dashboard/internal/repository"
)

// DashboardService assembles the period-scoped dashboard views
type DashboardService struct {
	resourceRepo repository.ResourceRepository
	projectRepo  repository.ProjectRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(resourceRepo repository.ResourceRepository, projectRepo repository.ProjectRepository) *DashboardService {
	return &DashboardService{
		resourceRepo: resourceRepo,
		projectRepo:  projectRepo,
	}
}

// MonthOption is one entry of the month selector
type MonthOption struct {
	Number int
	Name   string
}

// Home is the landing view for a period
type Home struct {
	Period    period.Period
	Current   period.Period
	Years     []int
	Months    []MonthOption
	Projects  []models.Project
	Resources []models.Resource
}

// Attendance is the metrics view for a period
type Attendance struct {
	Period    period.Period
	Resources []models.Resource
	Projects  []models.Project
	Metrics   metrics.Result
}

// Home loads the active projects and resources of p
func (s *DashboardService) Home(p period.Period, now time.Time) (*Home, error) {
	resources, projects, err := s.load(p, true)
	if err != nil {
		return nil, err
	}

	return &Home{
		Period:    p,
		Current:   period.Of(now),
		Years:     SelectableYears(),
		Months:    MonthOptions(),
		Projects:  projects,
		Resources: resources,
	}, nil
}

// Attendance computes the productivity metrics of p
func (s *DashboardService) Attendance(p period.Period) (*Attendance, error) {
	resources, projects, err := s.load(p, false)
	if err != nil {
		return nil, err
	}

	return &Attendance{
		Period:    p,
		Resources: resources,
		Projects:  projects,
		Metrics:   metrics.Compute(resources, projects),
	}, nil
}

func (s *DashboardService) load(p period.Period, withRelations bool) ([]models.Resource, []models.Project, error) {
	resources, _, err := s.resourceRepo.ListActive(repository.ResourceFilter{
		Year:  &p.Year,
		Month: &p.Month,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list resources: %w", err)
	}

	projects, _, err := s.projectRepo.ListActive(repository.ProjectFilter{
		Year:          &p.Year,
		Month:         &p.Month,
		WithRelations: withRelations,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return resources, projects, nil
}

// SelectableYears lists the years offered by the period selector
func SelectableYears() []int {
	years := make([]int, 0, constants.MaxSelectableYear-constants.MinSelectableYear+1)
	for y := constants.MinSelectableYear; y <= constants.MaxSelectableYear; y++ {
		years = append(years, y)
	}
	return years
}

// MonthOptions lists January through December
func MonthOptions() []MonthOption {
	months := make([]MonthOption, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, MonthOption{Number: int(m), Name: m.String()})
	}
	return months
}
