package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yukikurage/resource-dashboard/internal/dto"
	apierrors "github.com/yukikurage/resource-dashboard/internal/errors"
	"github.com/yukikurage/resource-dashboard/internal/middleware"
	"github.com/yukikurage/resource-dashboard/internal/models"
	"github.com/yukikurage/resource-dashboard/internal/services"
	"github.com/yukikurage/resource-dashboard/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// projectRequest is the full editable state of a project
type projectRequest struct {
	Name               string             `json:"name" binding:"required,max=255"`
	Type               models.ProjectType `json:"type" binding:"required,projecttype"`
	Year               *int               `json:"year" binding:"omitempty,min=1"`
	Month              *int               `json:"month" binding:"omitempty,min=1,max=12"`
	ResourceIDs        []uint64           `json:"resource_ids"`
	AssignedResourceID *uint64            `json:"assigned_resource_id"`
	PointOfContactID   *uint64            `json:"point_of_contact_id"`
	PresentDay         decimal.Decimal    `json:"present_day"`
	BillableDays       decimal.Decimal    `json:"billable_days"`
	NonBillableDays    decimal.Decimal    `json:"non_billable_days"`
	IsActive           *bool              `json:"is_active"`
}

func (r projectRequest) input(c *gin.Context) services.ProjectInput {
	return services.ProjectInput{
		Name:               r.Name,
		Type:               r.Type,
		Year:               r.Year,
		Month:              r.Month,
		Default:            middleware.GetPeriod(c),
		ResourceIDs:        r.ResourceIDs,
		AssignedResourceID: r.AssignedResourceID,
		PointOfContactID:   r.PointOfContactID,
		PresentDay:         r.PresentDay,
		BillableDays:       r.BillableDays,
		NonBillableDays:    r.NonBillableDays,
		IsActive:           r.IsActive,
	}
}

// ListProjects returns active projects; ?year= and ?month= filter independently
func (h *ProjectHandler) ListProjects(c *gin.Context) {
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
	list, err := h.projectService.List(services.ListProjectsInput{
		Year:       year,
		Month:      month,
		Pagination: &params,
	})
	if err != nil {
		respondServiceError(c, "ListProjects", err)
		return
	}

	c.JSON(http.StatusOK, dto.ProjectListResponse{
		Projects:   dto.ToProjectDTOs(list.Projects),
		Years:      list.Years,
		Months:     list.Months,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: list.Total,
		TotalPages: dto.TotalPages(list.Total, params.PageSize),
	})
}

// GetProject returns a project loaded by RequireProject
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject creates a project; year and month default to the resolved period
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.Create(req.input(c))
	if err != nil {
		respondServiceError(c, "CreateProject", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// UpdateProject replaces the editable state of a project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.projectService.Update(project.ID, req.input(c))
	if err != nil {
		respondServiceError(c, "UpdateProject", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated))
}

// DeleteProject soft-deletes a project
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	if err := h.projectService.Delete(project.ID); err != nil {
		respondServiceError(c, "DeleteProject", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ProjectOptions lists the active projects of the resolved period
func (h *ProjectHandler) ProjectOptions(c *gin.Context) {
	projects, err := h.projectService.Options(middleware.GetPeriod(c))
	if err != nil {
		respondServiceError(c, "ProjectOptions", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": dto.ToProjectOptionDTOs(projects)})
}
