package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/resource-dashboard/internal/period"
	"github.com/yukikurage/resource-dashboard/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.PageSize)
	}
}

// Active restricts a query on table to rows whose is_active flag is set.
func Active(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".is_active = ?", true)
	}
}

// ForPeriod restricts a query on table to one year/month.
func ForPeriod(table string, p period.Period) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".year = ? AND "+table+".month = ?", p.Year, p.Month)
	}
}
