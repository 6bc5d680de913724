package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/resource-dashboard/internal/dto"
	"github.com/yukikurage/resource-dashboard/internal/middleware"
	"github.com/yukikurage/resource-dashboard/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	now              func() time.Time
}

func NewDashboardHandler(dashboardService *services.DashboardService, now func() time.Time) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		now:              now,
	}
}

// Home returns the selectors and the active records of the resolved period
func (h *DashboardHandler) Home(c *gin.Context) {
	home, err := h.dashboardService.Home(middleware.GetPeriod(c), h.now())
	if err != nil {
		respondServiceError(c, "Home", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(home))
}

// Attendance returns presence and productivity metrics for the resolved period
func (h *DashboardHandler) Attendance(c *gin.Context) {
	attendance, err := h.dashboardService.Attendance(middleware.GetPeriod(c))
	if err != nil {
		respondServiceError(c, "Attendance", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceResponse(attendance))
}
