package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yukikurage/resource-dashboard/internal/dto"
	apierrors "github.com/yukikurage/resource-dashboard/internal/errors"
	"github.com/yukikurage/resource-dashboard/internal/middleware"
	"github.com/yukikurage/resource-dashboard/internal/services"
	"github.com/yukikurage/resource-dashboard/internal/utils"
)

type ResourceHandler struct {
	resourceService *services.ResourceService
}

func NewResourceHandler(resourceService *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
	}
}

// ListResources returns resources, optionally filtered by ?year= and ?month=.
// ?include_inactive=true also returns soft-deleted rows.
func (h *ResourceHandler) ListResources(c *gin.Context) {
	year, ok := optionalInt(c, "year")
	if !ok {
		apierrors.BadRequest(c, "Invalid year")
		return
	}
	month, ok := optionalInt(c, "month")
	if !ok {
		apierrors.BadRequest(c, "Invalid month")
		return
	}

	params := utils.GetPaginationParams(c)
	resources, total, err := h.resourceService.List(services.ListResourcesInput{
		Year:            year,
		Month:           month,
		IncludeInactive: c.Query("include_inactive") == "true",
		Pagination:      &params,
	})
	if err != nil {
		respondServiceError(c, "ListResources", err)
		return
	}

	c.JSON(http.StatusOK, dto.ResourceListResponse{
		Resources:  dto.ToResourceDTOs(resources),
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: total,
		TotalPages: dto.TotalPages(total, params.PageSize),
	})
}

// GetResource returns a resource loaded by RequireResource
func (h *ResourceHandler) GetResource(c *gin.Context) {
	resource, ok := middleware.GetResource(c)
	if !ok {
		apierrors.InternalError(c, "Resource not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceDTO(*resource))
}

// CreateResource creates a resource in the selected period
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var req struct {
		Name        string           `json:"name" binding:"required,max=255"`
		WorkingDays *decimal.Decimal `json:"working_days"`
		PresentDay  decimal.Decimal  `json:"present_day"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resource, err := h.resourceService.Create(services.CreateResourceInput{
		Name:        req.Name,
		Period:      middleware.GetPeriod(c),
		WorkingDays: req.WorkingDays,
		PresentDay:  req.PresentDay,
	})
	if err != nil {
		respondServiceError(c, "CreateResource", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToResourceDTO(*resource))
}

// UpdateResource changes the name or attendance of a resource
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	resource, ok := middleware.GetResource(c)
	if !ok {
		apierrors.InternalError(c, "Resource not found in context")
		return
	}

	var req struct {
		Name        *string          `json:"name" binding:"omitempty,min=1,max=255"`
		WorkingDays *decimal.Decimal `json:"working_days"`
		PresentDay  *decimal.Decimal `json:"present_day"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.resourceService.Update(resource.ID, services.UpdateResourceInput{
		Name:        req.Name,
		WorkingDays: req.WorkingDays,
		PresentDay:  req.PresentDay,
	})
	if err != nil {
		respondServiceError(c, "UpdateResource", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceDTO(*updated))
}

// DeleteResource soft-deletes a resource
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	resource, ok := middleware.GetResource(c)
	if !ok {
		apierrors.InternalError(c, "Resource not found in context")
		return
	}

	if err := h.resourceService.Delete(resource.ID); err != nil {
		respondServiceError(c, "DeleteResource", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// optionalInt parses an optional integer query value
func optionalInt(c *gin.Context, key string) (*int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// optionalID parses an optional id query value
func optionalID(c *gin.Context, key string) (*uint64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}
