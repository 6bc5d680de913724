package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/resource-dashboard/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID                 uint64             `json:"id"`
	Name               string             `json:"name"`
	Type               models.ProjectType `json:"type"`
	TypeLabel          string             `json:"type_label"`
	Year               int                `json:"year"`
	Month              int                `json:"month"`
	PresentDay         decimal.Decimal    `json:"present_day"`
	BillableDays       decimal.Decimal    `json:"billable_days"`
	NonBillableDays    decimal.Decimal    `json:"non_billable_days"`
	BillableHours      decimal.Decimal    `json:"billable_hours"`
	NonBillableHours   decimal.Decimal    `json:"non_billable_hours"`
	IsActive           bool               `json:"is_active"`
	AssignedResourceID *uint64            `json:"assigned_resource_id"`
	PointOfContactID   *uint64            `json:"point_of_contact_id"`
	AssignedResource   *ResourceRefDTO    `json:"assigned_resource,omitempty"`
	PointOfContact     *ResourceRefDTO    `json:"point_of_contact,omitempty"`
	Resources          []ResourceRefDTO   `json:"resources"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// ProjectListResponse represents a paginated list of projects plus the
// year and month values available to the filter
type ProjectListResponse struct {
	Projects   []ProjectDTO `json:"projects"`
	Years      []int        `json:"years"`
	Months     []int        `json:"months"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalCount int64        `json:"total_count"`
	TotalPages int          `json:"total_pages"`
}

// ProjectOptionDTO is one entry of the project selector
type ProjectOptionDTO struct {
	ID    uint64             `json:"id"`
	Name  string             `json:"name"`
	Type  models.ProjectType `json:"type"`
	Label string             `json:"label"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	out := ProjectDTO{
		ID:                 project.ID,
		Name:               project.Name,
		Type:               project.Type,
		TypeLabel:          project.Type.Label(),
		Year:               project.Year,
		Month:              project.Month,
		PresentDay:         Round(project.PresentDay),
		BillableDays:       Round(project.BillableDays),
		NonBillableDays:    Round(project.NonBillableDays),
		BillableHours:      Round(project.BillableHours),
		NonBillableHours:   Round(project.NonBillableHours),
		IsActive:           project.IsActive,
		AssignedResourceID: project.AssignedResourceID,
		PointOfContactID:   project.PointOfContactID,
		Resources:          make([]ResourceRefDTO, len(project.Resources)),
		CreatedAt:          project.CreatedAt,
		UpdatedAt:          project.UpdatedAt,
	}

	if project.AssignedResource != nil {
		ref := ToResourceRefDTO(*project.AssignedResource)
		out.AssignedResource = &ref
	}
	if project.PointOfContact != nil {
		ref := ToResourceRefDTO(*project.PointOfContact)
		out.PointOfContact = &ref
	}
	for i, r := range project.Resources {
		out.Resources[i] = ToResourceRefDTO(r)
	}

	return out
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		out[i] = ToProjectDTO(p)
	}
	return out
}

// ToProjectOptionDTOs converts projects to selector entries
func ToProjectOptionDTOs(projects []models.Project) []ProjectOptionDTO {
	out := make([]ProjectOptionDTO, len(projects))
	for i, p := range projects {
		out[i] = ProjectOptionDTO{
			ID:    p.ID,
			Name:  p.Name,
			Type:  p.Type,
			Label: p.Type.Label(),
		}
	}
	return out
}
