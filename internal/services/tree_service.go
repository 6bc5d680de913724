package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/resource-dashboard/internal/models"
	"github.com/yukikurage/resource-dashboard/internal/period"
	"github.com/yukikurage/resource-dashboard/internal/repository"
	"github.com/yukikurage/resource-dashboard/internal/tree"
	"gorm.io/gorm"
)

// TreeService builds the relationship trees
type TreeService struct {
	resourceRepo repository.ResourceRepository
	projectRepo  repository.ProjectRepository
}

// NewTreeService creates a new TreeService
func NewTreeService(resourceRepo repository.ResourceRepository, projectRepo repository.ProjectRepository) *TreeService {
	return &TreeService{
		resourceRepo: resourceRepo,
		projectRepo:  projectRepo,
	}
}

// ProjectTree returns one node per active project of p, or the single
// project projectID when given. The returned project is nil for the
// period-wide tree.
func (s *TreeService) ProjectTree(p period.Period, projectID *uint64) ([]tree.Node, *models.Project, error) {
	if projectID != nil {
		project, err := s.projectRepo.FindActiveByID(*projectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrProjectNotFound
			}
			return nil, nil, fmt.Errorf("failed to find project: %w", err)
		}
		return []tree.Node{tree.ProjectNode(*project)}, project, nil
	}

	projects, _, err := s.projectRepo.ListActive(repository.ProjectFilter{
		Year:          &p.Year,
		Month:         &p.Month,
		WithRelations: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return tree.BuildProjectTree(projects), nil, nil
}

// ResourceTree returns one node per active resource of p ordered by project
// count, or the single resource resourceID when given.
func (s *TreeService) ResourceTree(p period.Period, resourceID *uint64) ([]tree.Node, error) {
	resources, err := s.resources(p, resourceID)
	if err != nil {
		return nil, err
	}

	in, err := s.roleProjects(resources)
	if err != nil {
		return nil, err
	}

	return tree.BuildResourceTree(in), nil
}

// ResourceOptions returns the role counts of every active resource of p
func (s *TreeService) ResourceOptions(p period.Period) ([]tree.Summary, error) {
	resources, err := s.resources(p, nil)
	if err != nil {
		return nil, err
	}

	in, err := s.roleProjects(resources)
	if err != nil {
		return nil, err
	}

	summaries := make([]tree.Summary, 0, len(in))
	for _, rp := range in {
		summaries = append(summaries, tree.Summarize(rp))
	}
	tree.SortSummaries(summaries)
	return summaries, nil
}

func (s *TreeService) resources(p period.Period, resourceID *uint64) ([]models.Resource, error) {
	if resourceID != nil {
		resource, err := s.resourceRepo.FindActiveByID(*resourceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrResourceNotFound
			}
			return nil, fmt.Errorf("failed to find resource: %w", err)
		}
		return []models.Resource{*resource}, nil
	}

	resources, _, err := s.resourceRepo.ListActive(repository.ResourceFilter{
		Year:  &p.Year,
		Month: &p.Month,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}

func (s *TreeService) roleProjects(resources []models.Resource) ([]tree.RoleProjects, error) {
	out := make([]tree.RoleProjects, 0, len(resources))
	for _, resource := range resources {
		rp := tree.RoleProjects{Resource: resource}

		var err error
		if rp.POC, err = s.projectRepo.ListActiveByRole(resource.ID, repository.RolePOC); err != nil {
			return nil, fmt.Errorf("failed to list poc projects: %w", err)
		}
		if rp.Responsible, err = s.projectRepo.ListActiveByRole(resource.ID, repository.RoleResponsible); err != nil {
			return nil, fmt.Errorf("failed to list responsible projects: %w", err)
		}
		if rp.Assigned, err = s.projectRepo.ListActiveByRole(resource.ID, repository.RoleMember); err != nil {
			return nil, fmt.Errorf("failed to list member projects: %w", err)
		}

		out = append(out, rp)
	}
	return out, nil
}
