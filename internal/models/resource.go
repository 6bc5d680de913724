package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/resource-dashboard/internal/constants"
	"github.com/yukikurage/resource-dashboard/internal/period"
	"gorm.io/gorm"
)

// Resource is one employee's attendance for a single month.
type Resource struct {
	ID           uint64           `gorm:"primarykey" json:"id"`
	Name         string           `gorm:"type:varchar(255);not null;index:idx_resources_period_name,priority:3" json:"name"`
	Year         int              `gorm:"not null;index:idx_resources_period_name,priority:1" json:"year"`
	Month        int              `gorm:"not null;index:idx_resources_period_name,priority:2" json:"month"`
	WorkingDays  *decimal.Decimal `gorm:"type:decimal(6,2)" json:"working_days"`
	PresentDay   decimal.Decimal  `gorm:"type:decimal(6,2);not null" json:"present_day"`
	PresentHours decimal.Decimal  `gorm:"type:decimal(8,2);not null" json:"present_hours"`
	IsActive     bool             `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// BeforeSave keeps the derived attendance columns in sync.
func (r *Resource) BeforeSave(tx *gorm.DB) error {
	r.PresentHours = r.PresentDay.Mul(decimal.NewFromInt(constants.HoursPerDay))
	if r.WorkingDays == nil && (period.Period{Year: r.Year, Month: r.Month}).Valid() {
		wd := decimal.NewFromInt(int64(period.WorkingDays(r.Year, r.Month)))
		r.WorkingDays = &wd
	}
	return nil
}

// Period returns the month this record belongs to.
func (r Resource) Period() period.Period {
	return period.Period{Year: r.Year, Month: r.Month}
}
