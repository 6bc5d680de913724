package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/resource-dashboard/internal/constants"
	apierrors "github.com/yukikurage/resource-dashboard/internal/errors"
	"github.com/yukikurage/resource-dashboard/internal/logger"
	"github.com/yukikurage/resource-dashboard/internal/models"
	"github.com/yukikurage/resource-dashboard/internal/services"
)

// RequireResource loads the resource named by :id, whatever its active flag
func RequireResource(resourceService *services.ResourceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "Invalid resource ID")
		if !ok {
			return
		}

		resource, err := resourceService.Get(id)
		if err != nil {
			if errors.Is(err, services.ErrResourceNotFound) {
				apierrors.NotFound(c, "Resource not found")
			} else {
				logger.LogError("middleware", "RequireResource", "load resource", map[string]interface{}{"id": id}, err)
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyResource, resource)
		c.Next()
	}
}

// RequireProject loads the project named by :id with its relations
func RequireProject(projectService *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "Invalid project ID")
		if !ok {
			return
		}

		project, err := projectService.Get(id)
		if err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				apierrors.NotFound(c, "Project not found")
			} else {
				logger.LogError("middleware", "RequireProject", "load project", map[string]interface{}{"id": id}, err)
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// GetResource retrieves the resource loaded by RequireResource
func GetResource(c *gin.Context) (*models.Resource, bool) {
	v, exists := c.Get(constants.ContextKeyResource)
	if !exists {
		return nil, false
	}
	resource, ok := v.(*models.Resource)
	return resource, ok
}

// GetProject retrieves the project loaded by RequireProject
func GetProject(c *gin.Context) (*models.Project, bool) {
	v, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return nil, false
	}
	project, ok := v.(*models.Project)
	return project, ok
}

func parseID(c *gin.Context, message string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, message)
		c.Abort()
		return 0, false
	}
	return id, true
}
