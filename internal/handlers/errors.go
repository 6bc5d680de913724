package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/resource-dashboard/internal/errors"
	"github.com/yukikurage/resource-dashboard/internal/logger"
	"github.com/yukikurage/resource-dashboard/internal/services"
	"github.com/yukikurage/resource-dashboard/internal/utils"
)

// DuplicateResourceMessage is shown when an active resource already uses a name in a period
const DuplicateResourceMessage = "An active resource with this name, year, and month already exists."

// respondBindError reports a payload that failed to bind or validate
func respondBindError(c *gin.Context, err error) {
	if details := utils.ValidationDetails(err); details != nil {
		apierrors.ValidationFailed(c, "", details)
		return
	}
	apierrors.BadRequest(c, "Invalid request body")
}

// respondServiceError maps service sentinel errors to API errors
func respondServiceError(c *gin.Context, funcName string, err error) {
	switch {
	case errors.Is(err, services.ErrResourceNotFound):
		apierrors.NotFound(c, "Resource not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrDuplicateResource):
		apierrors.AlreadyExists(c, DuplicateResourceMessage)
	case errors.Is(err, services.ErrInvalidPeriod):
		apierrors.InvalidPeriod(c, "")
	case errors.Is(err, services.ErrNameRequired):
		apierrors.ValidationFailed(c, err.Error(), map[string]string{"Name": "required"})
	case errors.Is(err, services.ErrInvalidProjectType):
		apierrors.ValidationFailed(c, err.Error(), map[string]string{"Type": "projecttype"})
	case errors.Is(err, services.ErrUnknownResource):
		apierrors.ValidationFailed(c, err.Error(), nil)
	default:
		logger.LogError("handlers", funcName, "service call", nil, err)
		apierrors.InternalError(c, "")
	}
}
