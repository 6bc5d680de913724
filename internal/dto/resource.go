package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/resource-dashboard/internal/models"
)

// ResourceDTO represents a resource in API responses
type ResourceDTO struct {
	ID           uint64           `json:"id"`
	Name         string           `json:"name"`
	Year         int              `json:"year"`
	Month        int              `json:"month"`
	WorkingDays  *decimal.Decimal `json:"working_days"`
	PresentDay   decimal.Decimal  `json:"present_day"`
	PresentHours decimal.Decimal  `json:"present_hours"`
	IsActive     bool             `json:"is_active"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ResourceRefDTO is a short reference to a resource
type ResourceRefDTO struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// ResourceListResponse represents a paginated list of resources
type ResourceListResponse struct {
	Resources  []ResourceDTO `json:"resources"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalCount int64         `json:"total_count"`
	TotalPages int           `json:"total_pages"`
}

// ToResourceDTO converts a Resource model to ResourceDTO
func ToResourceDTO(resource models.Resource) ResourceDTO {
	var workingDays *decimal.Decimal
	if resource.WorkingDays != nil {
		wd := Round(*resource.WorkingDays)
		workingDays = &wd
	}
	return ResourceDTO{
		ID:           resource.ID,
		Name:         resource.Name,
		Year:         resource.Year,
		Month:        resource.Month,
		WorkingDays:  workingDays,
		PresentDay:   Round(resource.PresentDay),
		PresentHours: Round(resource.PresentHours),
		IsActive:     resource.IsActive,
		CreatedAt:    resource.CreatedAt,
		UpdatedAt:    resource.UpdatedAt,
	}
}

// ToResourceRefDTO converts a Resource model to ResourceRefDTO
func ToResourceRefDTO(resource models.Resource) ResourceRefDTO {
	return ResourceRefDTO{
		ID:       resource.ID,
		Name:     resource.Name,
		IsActive: resource.IsActive,
	}
}

// ToResourceDTOs converts a slice of resources
func ToResourceDTOs(resources []models.Resource) []ResourceDTO {
	out := make([]ResourceDTO, len(resources))
	for i, r := range resources {
		out[i] = ToResourceDTO(r)
	}
	return out
}

// Round rounds a day or hour figure to two decimals
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// TotalPages returns the number of pages needed for total items
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
