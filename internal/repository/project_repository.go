package repository

import (
	"fmt"

	"github.com/yukikurage/resource-dashboard/internal/database"
	"github.com/yukikurage/resource-dashboard/internal/models"
	"github.com/yukikurage/resource-dashboard/internal/period"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// active is the default view: only rows with is_active set.
func (r *GormProjectRepository) active() *gorm.DB {
	return r.db.Model(&models.Project{}).Scopes(database.Active("projects"))
}

// all includes soft-deleted rows.
func (r *GormProjectRepository) all() *gorm.DB {
	return r.db.Model(&models.Project{})
}

// withRelations preloads related resources whatever their active flag, so
// references to soft-deleted resources stay visible.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Resources", func(db *gorm.DB) *gorm.DB {
			return db.Order("resources.name ASC")
		}).
		Preload("AssignedResource").
		Preload("PointOfContact")
}

// Create creates a project together with its member references
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Omit("AssignedResource", "PointOfContact", "Resources.*").Create(project).Error
}

// Update saves a project and replaces its members
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(project).Error; err != nil {
			return err
		}

		members := tx.Model(project).Association("Resources")
		if len(project.Resources) == 0 {
			return members.Clear()
		}
		return members.Replace(project.Resources)
	})
}

// SoftDelete clears the active flag
func (r *GormProjectRepository) SoftDelete(id uint64) error {
	result := r.all().Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// FindByID finds a project regardless of its active flag, with relations
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.all().Scopes(withRelations).Where("projects.id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindActiveByID finds an active project with relations
func (r *GormProjectRepository) FindActiveByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.active().Scopes(withRelations).Where("projects.id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindActiveByName finds the active project for a name within a period
func (r *GormProjectRepository) FindActiveByName(name string, p period.Period) (*models.Project, error) {
	var project models.Project
	if err := r.active().
		Scopes(database.ForPeriod("projects", p)).
		Where("projects.name = ?", name).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// AddMember adds a resource to a project's member set
func (r *GormProjectRepository) AddMember(projectID, resourceID uint64) error {
	link := models.ProjectResource{ProjectID: projectID, ResourceID: resourceID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

// ListActive lists active projects
func (r *GormProjectRepository) ListActive(filter ProjectFilter) ([]models.Project, int64, error) {
	query := r.active()
	if filter.Year != nil {
		query = query.Where("projects.year = ?", *filter.Year)
	}
	if filter.Month != nil {
		query = query.Where("projects.month = ?", *filter.Month)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("projects.name ASC, projects.id ASC")
	if filter.WithRelations {
		listQuery = listQuery.Scopes(withRelations)
	}
	if filter.Pagination != nil {
		listQuery = listQuery.Scopes(database.Paginate(*filter.Pagination))
	}

	projects := []models.Project{}
	if err := listQuery.Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// ListActiveByRole lists active projects where resourceID holds role
func (r *GormProjectRepository) ListActiveByRole(resourceID uint64, role ProjectRole) ([]models.Project, error) {
	query := r.active()
	switch role {
	case RolePOC:
		query = query.Where("projects.point_of_contact_id = ?", resourceID)
	case RoleResponsible:
		query = query.Where("projects.assigned_resource_id = ?", resourceID)
	case RoleMember:
		query = query.
			Joins("JOIN project_resources ON project_resources.project_id = projects.id").
			Where("project_resources.resource_id = ?", resourceID)
	default:
		return nil, fmt.Errorf("unknown project role %q", role)
	}

	projects := []models.Project{}
	if err := query.Order("projects.name ASC, projects.id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ActivePeriods returns the distinct years and months of active projects
func (r *GormProjectRepository) ActivePeriods() ([]int, []int, error) {
	years := []int{}
	if err := r.active().Distinct().Order("year ASC").Pluck("year", &years).Error; err != nil {
		return nil, nil, err
	}
	months := []int{}
	if err := r.active().Distinct().Order("month ASC").Pluck("month", &months).Error; err != nil {
		return nil, nil, err
	}
	return years, months, nil
}
