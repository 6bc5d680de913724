package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/resource-dashboard/internal/constants"
	"github.com/yukikurage/resource-dashboard/internal/period"
	"gorm.io/gorm"
)

type ProjectType string

const (
	ProjectTypeBillable    ProjectType = "billable"
	ProjectTypeNonBillable ProjectType = "non_billable"
	ProjectTypeInternal    ProjectType = "internal"
	ProjectTypeSupport     ProjectType = "support"
	ProjectTypeTraining    ProjectType = "training"
)

// ProjectTypes lists every type in display order.
var ProjectTypes = []ProjectType{
	ProjectTypeBillable,
	ProjectTypeNonBillable,
	ProjectTypeInternal,
	ProjectTypeSupport,
	ProjectTypeTraining,
}

var projectTypeLabels = map[ProjectType]string{
	ProjectTypeBillable:    "Billable",
	ProjectTypeNonBillable: "Non-Billable",
	ProjectTypeInternal:    "Internal",
	ProjectTypeSupport:     "Support",
	ProjectTypeTraining:    "Training",
}

// Valid reports whether t is one of the known project types.
func (t ProjectType) Valid() bool {
	_, ok := projectTypeLabels[t]
	return ok
}

// Label returns the display label, or "Unknown".
func (t ProjectType) Label() string {
	if label, ok := projectTypeLabels[t]; ok {
		return label
	}
	return "Unknown"
}

// Project is a project's monthly report and its resource relationships.
type Project struct {
	ID                 uint64          `gorm:"primarykey" json:"id"`
	Name               string          `gorm:"type:varchar(255);not null" json:"name"`
	Type               ProjectType     `gorm:"type:varchar(30);not null" json:"type"`
	Year               int             `gorm:"not null;index:idx_projects_period,priority:1" json:"year"`
	Month              int             `gorm:"not null;index:idx_projects_period,priority:2" json:"month"`
	AssignedResourceID *uint64         `gorm:"index" json:"assigned_resource_id"`
	PointOfContactID   *uint64         `gorm:"index" json:"point_of_contact_id"`
	PresentDay         decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"present_day"`
	BillableDays       decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"billable_days"`
	NonBillableDays    decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"non_billable_days"`
	BillableHours      decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"billable_hours"`
	NonBillableHours   decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"non_billable_hours"`
	IsActive           bool            `gorm:"not null;index" json:"is_active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	// Relations
	Resources        []Resource `gorm:"many2many:project_resources" json:"resources,omitempty"`
	AssignedResource *Resource  `gorm:"foreignKey:AssignedResourceID" json:"assigned_resource,omitempty"`
	PointOfContact   *Resource  `gorm:"foreignKey:PointOfContactID" json:"point_of_contact,omitempty"`
}

// BeforeSave recomputes hour columns from their day counterparts.
func (p *Project) BeforeSave(tx *gorm.DB) error {
	perDay := decimal.NewFromInt(constants.HoursPerDay)
	p.BillableHours = p.BillableDays.Mul(perDay)
	p.NonBillableHours = p.NonBillableDays.Mul(perDay)
	return nil
}

// Period returns the month this report belongs to.
func (p Project) Period() period.Period {
	return period.Period{Year: p.Year, Month: p.Month}
}

// DisplayName is the name followed by the type label, e.g. "Apollo (Billable)".
func (p Project) DisplayName() string {
	return p.Name + " (" + p.Type.Label() + ")"
}
