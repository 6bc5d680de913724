package repository

import (
	"github.com/yukikurage/resource-dashboard/internal/database"
	"github.com/yukikurage/resource-dashboard/internal/models"
	"github.com/yukikurage/resource-dashboard/internal/period"
	"gorm.io/gorm"
)

// GormResourceRepository is a GORM implementation of ResourceRepository
type GormResourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &GormResourceRepository{db: db}
}

// active is the default view: only rows with is_active set.
func (r *GormResourceRepository) active() *gorm.DB {
	return r.db.Model(&models.Resource{}).Scopes(database.Active("resources"))
}

// all includes soft-deleted rows.
func (r *GormResourceRepository) all() *gorm.DB {
	return r.db.Model(&models.Resource{})
}

// Create creates a new resource
func (r *GormResourceRepository) Create(resource *models.Resource) error {
	return r.db.Create(resource).Error
}

// Update saves every column of an existing resource
func (r *GormResourceRepository) Update(resource *models.Resource) error {
	return r.db.Save(resource).Error
}

// SoftDelete clears the active flag
func (r *GormResourceRepository) SoftDelete(id uint64) error {
	result := r.all().Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// FindByID finds a resource by ID regardless of its active flag
func (r *GormResourceRepository) FindByID(id uint64) (*models.Resource, error) {
	var resource models.Resource
	if err := r.all().Where("resources.id = ?", id).First(&resource).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// FindActiveByID finds an active resource by ID
func (r *GormResourceRepository) FindActiveByID(id uint64) (*models.Resource, error) {
	var resource models.Resource
	if err := r.active().Where("resources.id = ?", id).First(&resource).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// FindActiveByIDs returns the active resources among ids
func (r *GormResourceRepository) FindActiveByIDs(ids []uint64) ([]models.Resource, error) {
	resources := []models.Resource{}
	if len(ids) == 0 {
		return resources, nil
	}
	if err := r.active().Where("resources.id IN ?", ids).Order("resources.name ASC").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

// FindActiveByName finds the active resource for a name within a period
func (r *GormResourceRepository) FindActiveByName(name string, p period.Period) (*models.Resource, error) {
	var resource models.Resource
	if err := r.active().
		Scopes(database.ForPeriod("resources", p)).
		Where("resources.name = ?", name).
		First(&resource).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// ExistsActive reports whether another active resource uses name in p
func (r *GormResourceRepository) ExistsActive(name string, p period.Period, excludeID uint64) (bool, error) {
	query := r.active().
		Scopes(database.ForPeriod("resources", p)).
		Where("resources.name = ?", name)
	if excludeID != 0 {
		query = query.Where("resources.id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListActive lists active resources
func (r *GormResourceRepository) ListActive(filter ResourceFilter) ([]models.Resource, int64, error) {
	return r.list(r.active(), filter)
}

// ListAll lists resources regardless of their active flag
func (r *GormResourceRepository) ListAll(filter ResourceFilter) ([]models.Resource, int64, error) {
	return r.list(r.all(), filter)
}

func (r *GormResourceRepository) list(query *gorm.DB, filter ResourceFilter) ([]models.Resource, int64, error) {
	if filter.Year != nil {
		query = query.Where("resources.year = ?", *filter.Year)
	}
	if filter.Month != nil {
		query = query.Where("resources.month = ?", *filter.Month)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("resources.year DESC, resources.month DESC, resources.name ASC")
	if filter.Pagination != nil {
		listQuery = listQuery.Scopes(database.Paginate(*filter.Pagination))
	}

	resources := []models.Resource{}
	if err := listQuery.Find(&resources).Error; err != nil {
		return nil, 0, err
	}
	return resources, total, nil
}
