package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/resource-dashboard/internal/database"
	"github.com/yukikurage/resource-dashboard/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDB returns a migrated in-memory sqlite database. A single connection
// is kept so every query, transactions included, sees the same schema.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.MigrateModels(db); err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	return db
}

// Days is shorthand for a decimal day count.
func Days(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// CreateResource inserts an active resource.
func CreateResource(t *testing.T, db *gorm.DB, name string, year, month int, presentDay float64) models.Resource {
	t.Helper()

	resource := models.Resource{
		Name:       name,
		Year:       year,
		Month:      month,
		PresentDay: Days(presentDay),
		IsActive:   true,
	}
	if err := db.Create(&resource).Error; err != nil {
		t.Fatalf("CreateResource() failed: %v", err)
	}
	return resource
}

// CreateProject inserts an active project. Members, assignee and POC are
// taken from the given struct.
func CreateProject(t *testing.T, db *gorm.DB, project models.Project) models.Project {
	t.Helper()

	project.IsActive = true
	if project.Type == "" {
		project.Type = models.ProjectTypeBillable
	}
	if err := db.Omit("AssignedResource", "PointOfContact", "Resources.*").Create(&project).Error; err != nil {
		t.Fatalf("CreateProject() failed: %v", err)
	}
	return project
}

// Deactivate clears the active flag of a row.
func Deactivate(t *testing.T, db *gorm.DB, model any, id uint64) {
	t.Helper()

	if err := db.Model(model).Where("id = ?", id).Update("is_active", false).Error; err != nil {
		t.Fatalf("Deactivate() failed: %v", err)
	}
}
