package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/resource-dashboard/internal/errors"
	"github.com/yukikurage/resource-dashboard/internal/middleware"
	"github.com/yukikurage/resource-dashboard/internal/services"
	"github.com/yukikurage/resource-dashboard/internal/tree"
)

const allProjectsLabel = "All Projects"

type TreeHandler struct {
	treeService *services.TreeService
}

func NewTreeHandler(treeService *services.TreeService) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
	}
}

// ProjectTree returns the project-centric tree of the resolved period.
// ?project_id= narrows it to one project, ?root=true wraps the nodes in a
// single root and ?format=text renders it as plain text.
func (h *TreeHandler) ProjectTree(c *gin.Context) {
	projectID, ok := optionalID(c, "project_id")
	if !ok {
		apierrors.BadRequest(c, "Invalid project_id")
		return
	}

	nodes, project, err := h.treeService.ProjectTree(middleware.GetPeriod(c), projectID)
	if err != nil {
		respondServiceError(c, "ProjectTree", err)
		return
	}

	label := allProjectsLabel
	if project != nil {
		label = "Project: " + project.Name
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, tree.Render(tree.Root(label, nodes)))
		return
	}
	if c.Query("root") == "true" {
		c.JSON(http.StatusOK, []tree.Node{tree.Root(label, nodes)})
		return
	}
	c.JSON(http.StatusOK, nodes)
}

// ResourceTree returns the resource-centric tree of the resolved period,
// optionally narrowed by ?resource_id=
func (h *TreeHandler) ResourceTree(c *gin.Context) {
	resourceID, ok := optionalID(c, "resource_id")
	if !ok {
		apierrors.BadRequest(c, "Invalid resource_id")
		return
	}

	nodes, err := h.treeService.ResourceTree(middleware.GetPeriod(c), resourceID)
	if err != nil {
		respondServiceError(c, "ResourceTree", err)
		return
	}

	c.JSON(http.StatusOK, nodes)
}

// ResourceOptions lists the resources of the resolved period with role counts
func (h *TreeHandler) ResourceOptions(c *gin.Context) {
	summaries, err := h.treeService.ResourceOptions(middleware.GetPeriod(c))
	if err != nil {
		respondServiceError(c, "ResourceOptions", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": summaries})
}
