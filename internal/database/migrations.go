package database

import (
	"fmt"

	"github.com/yukikurage/resource-dashboard/internal/logger"
	"github.com/yukikurage/resource-dashboard/internal/models"
	"gorm.io/gorm"
)

// AddIndexes makes sure the lookup indexes declared on the models exist.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model any
		table string
		name  string
	}{
		// Period lookups
		{&models.Resource{}, "resources", "idx_resources_period_name"},
		{&models.Project{}, "projects", "idx_projects_period"},

		// Active-only views
		{&models.Resource{}, "resources", "idx_resources_is_active"},
		{&models.Project{}, "projects", "idx_projects_is_active"},

		// Role lookups for resource trees
		{&models.Project{}, "projects", "idx_projects_assigned_resource_id"},
		{&models.Project{}, "projects", "idx_projects_point_of_contact_id"},
		{&models.ProjectResource{}, "project_resources", "idx_project_resources_resource_id"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logger.Get().WithField("table", idx.table).Infof("Created index %s", idx.name)
	}

	return nil
}
