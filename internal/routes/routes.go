package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/resource-dashboard/internal/handlers"
	"github.com/yukikurage/resource-dashboard/internal/middleware"
	"github.com/yukikurage/resource-dashboard/internal/repository"
	"github.com/yukikurage/resource-dashboard/internal/services"
	"github.com/yukikurage/resource-dashboard/internal/utils"
	"gorm.io/gorm"
)

// SetupRoutes registers every endpoint on router. The session middleware
// must already be installed.
func SetupRoutes(router *gin.Engine, db *gorm.DB, now func() time.Time) error {
	if err := utils.RegisterValidators(); err != nil {
		return err
	}

	resourceRepo := repository.NewResourceRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	resourceService := services.NewResourceService(resourceRepo)
	projectService := services.NewProjectService(projectRepo, resourceRepo)
	dashboardService := services.NewDashboardService(resourceRepo, projectRepo)
	treeService := services.NewTreeService(resourceRepo, projectRepo)

	dashboardHandler := handlers.NewDashboardHandler(dashboardService, now)
	resourceHandler := handlers.NewResourceHandler(resourceService)
	projectHandler := handlers.NewProjectHandler(projectService)
	treeHandler := handlers.NewTreeHandler(treeService)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(middleware.PeriodContext(now))
	{
		api.GET("/dashboard", middleware.SelectPeriod(now), dashboardHandler.Home)
		api.GET("/attendance", dashboardHandler.Attendance)

		resources := api.Group("/resources")
		{
			resources.GET("", resourceHandler.ListResources)
			resources.POST("", middleware.RequirePeriod(), resourceHandler.CreateResource)
			resources.GET("/:id", middleware.RequireResource(resourceService), resourceHandler.GetResource)
			resources.PUT("/:id", middleware.RequireResource(resourceService), resourceHandler.UpdateResource)
			resources.DELETE("/:id", middleware.RequireResource(resourceService), resourceHandler.DeleteResource)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", middleware.RequireProject(projectService), projectHandler.GetProject)
			projects.PUT("/:id", middleware.RequireProject(projectService), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireProject(projectService), projectHandler.DeleteProject)
		}

		tree := api.Group("/tree")
		{
			tree.GET("/projects", treeHandler.ProjectTree)
			tree.GET("/resources", treeHandler.ResourceTree)
		}

		options := api.Group("/options")
		{
			options.GET("/projects", projectHandler.ProjectOptions)
			options.GET("/resources", treeHandler.ResourceOptions)
		}
	}

	return nil
}
