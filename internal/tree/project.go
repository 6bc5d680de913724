package tree

import (
	"fmt"

	"github.com/yukikurage/resource-dashboard/internal/models"
)

// Node types used in project trees.
const (
	TypeRoot      = "root"
	TypeProject   = "project"
	TypeAssigned  = "assigned_resource"
	TypeResources = "resources"
	TypeResource  = "resource"
	TypePOC       = "poc"
)

// ProjectMeta is attached to each project node.
type ProjectMeta struct {
	ID    uint64 `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// ProjectNode builds the node for one project. Children appear in the order
// assigned resource, member resources, point of contact; absent roles are
// left out.
func ProjectNode(p models.Project) Node {
	children := make([]Node, 0, 3)

	if p.AssignedResource != nil {
		children = append(children,
			Leaf("Assigned Resource: "+p.AssignedResource.Name, IconAssigned).WithType(TypeAssigned))
	}

	if len(p.Resources) > 0 {
		members := make([]Node, len(p.Resources))
		for i, r := range p.Resources {
			members[i] = Leaf(r.Name, IconResource).WithType(TypeResource)
		}
		children = append(children,
			Branch(fmt.Sprintf("Resources (%d)", len(members)), IconResources, members...).
				WithType(TypeResources).
				Open())
	}

	if p.PointOfContact != nil {
		children = append(children,
			Leaf("POC: "+p.PointOfContact.Name, IconPOC).WithType(TypePOC))
	}

	return Branch(p.DisplayName(), IconProject, children...).
		WithType(TypeProject).
		WithData(ProjectMeta{ID: p.ID, Type: string(p.Type), Label: p.Type.Label()})
}

// BuildProjectTree maps projects to nodes, preserving their order.
func BuildProjectTree(projects []models.Project) []Node {
	nodes := make([]Node, len(projects))
	for i, p := range projects {
		nodes[i] = ProjectNode(p)
	}
	return nodes
}

// Root wraps nodes under a single synthetic node.
func Root(label string, nodes []Node) Node {
	return Branch(label, IconRoot, nodes...).WithType(TypeRoot).Open()
}
