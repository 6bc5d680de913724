package repository

import (
	"errors"

	"github.com/yukikurage/resource-dashboard/internal/models"
	"github.com/yukikurage/resource-dashboard/internal/period"
	"github.com/yukikurage/resource-dashboard/internal/utils"
)

// ErrNoRowsAffected is returned when an update matched no row.
var ErrNoRowsAffected = errors.New("repository: no rows affected")

// ProjectRole identifies how a resource relates to a project.
type ProjectRole string

const (
	RolePOC         ProjectRole = "poc"
	RoleResponsible ProjectRole = "responsible"
	RoleMember      ProjectRole = "member"
)

// ResourceRepository defines the interface for resource data access
type ResourceRepository interface {
	// Create creates a new resource
	Create(resource *models.Resource) error

	// Update saves every column of an existing resource
	Update(resource *models.Resource) error

	// SoftDelete clears the active flag
	SoftDelete(id uint64) error

	// FindByID finds a resource by ID regardless of its active flag
	FindByID(id uint64) (*models.Resource, error)

	// FindActiveByID finds an active resource by ID
	FindActiveByID(id uint64) (*models.Resource, error)

	// FindActiveByIDs returns the active resources among ids
	FindActiveByIDs(ids []uint64) ([]models.Resource, error)

	// FindActiveByName finds the active resource for a name within a period
	FindActiveByName(name string, p period.Period) (*models.Resource, error)

	// ExistsActive reports whether another active resource uses name in p
	ExistsActive(name string, p period.Period, excludeID uint64) (bool, error)

	// ListActive lists active resources
	ListActive(filter ResourceFilter) ([]models.Resource, int64, error)

	// ListAll lists resources regardless of their active flag
	ListAll(filter ResourceFilter) ([]models.Resource, int64, error)
}

// ResourceFilter holds filtering options for listing resources
type ResourceFilter struct {
	Year       *int
	Month      *int
	Pagination *utils.PaginationParams
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a project together with its member references
	Create(project *models.Project) error

	// Update saves a project and replaces its members
	Update(project *models.Project) error

	// SoftDelete clears the active flag
	SoftDelete(id uint64) error

	// FindByID finds a project regardless of its active flag, with relations
	FindByID(id uint64) (*models.Project, error)

	// FindActiveByID finds an active project with relations
	FindActiveByID(id uint64) (*models.Project, error)

	// FindActiveByName finds the active project for a name within a period
	FindActiveByName(name string, p period.Period) (*models.Project, error)

	// AddMember adds a resource to a project's member set
	AddMember(projectID, resourceID uint64) error

	// ListActive lists active projects
	ListActive(filter ProjectFilter) ([]models.Project, int64, error)

	// ListActiveByRole lists active projects where resourceID holds role
	ListActiveByRole(resourceID uint64, role ProjectRole) ([]models.Project, error)

	// ActivePeriods returns the distinct years and months of active projects
	ActivePeriods() (years []int, months []int, err error)
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	Year          *int
	Month         *int
	WithRelations bool
	Pagination    *utils.PaginationParams
}
