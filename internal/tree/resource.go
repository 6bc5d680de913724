package tree

import (
	"fmt"
	"sort"

	"github.com/yukikurage/resource-dashboard/internal/models"
)

// Role names for resource-centric groups.
const (
	RolePOC         = "poc"
	RoleResponsible = "responsible"
	RoleAssigned    = "assigned"

	TypeRoleGroup = "role_group"
)

// RoleProjects holds, for one resource, the active projects per role as
// returned by storage. The slices may overlap.
type RoleProjects struct {
	Resource    models.Resource
	POC         []models.Project
	Responsible []models.Project
	Assigned    []models.Project
}

// Summary is the per-resource rollup attached to resource nodes.
type Summary struct {
	ID                  uint64 `json:"id"`
	Name                string `json:"name"`
	TotalProjects       int    `json:"total_projects"`
	POCProjects         int    `json:"poc_projects"`
	ResponsibleProjects int    `json:"responsible_projects"`
	AssignedProjects    int    `json:"assigned_projects"`
}

// GroupMeta is attached to each role group node.
type GroupMeta struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

type roleGroups struct {
	poc         []models.Project
	responsible []models.Project
	assigned    []models.Project
}

// partition de-duplicates each role by project id and drops from the
// assigned role any project already listed as POC or responsible.
func partition(in RoleProjects) roleGroups {
	var g roleGroups
	g.poc = uniqueProjects(in.POC, nil)
	g.responsible = uniqueProjects(in.Responsible, nil)

	counted := make(map[uint64]struct{}, len(g.poc)+len(g.responsible))
	for _, p := range g.poc {
		counted[p.ID] = struct{}{}
	}
	for _, p := range g.responsible {
		counted[p.ID] = struct{}{}
	}
	g.assigned = uniqueProjects(in.Assigned, counted)
	return g
}

func uniqueProjects(projects []models.Project, exclude map[uint64]struct{}) []models.Project {
	seen := make(map[uint64]struct{}, len(projects))
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if _, skip := exclude[p.ID]; skip {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

func (g roleGroups) distinctCount() int {
	ids := make(map[uint64]struct{})
	for _, set := range [][]models.Project{g.poc, g.responsible, g.assigned} {
		for _, p := range set {
			ids[p.ID] = struct{}{}
		}
	}
	return len(ids)
}

// Summarize computes the role counts for one resource.
func Summarize(in RoleProjects) Summary {
	return summarize(in.Resource, partition(in))
}

func summarize(r models.Resource, g roleGroups) Summary {
	return Summary{
		ID:                  r.ID,
		Name:                r.Name,
		TotalProjects:       g.distinctCount(),
		POCProjects:         len(g.poc),
		ResponsibleProjects: len(g.responsible),
		AssignedProjects:    len(g.assigned),
	}
}

// ResourceNode builds the node for one resource with up to three role groups.
// A resource without projects still yields a branch with no children.
func ResourceNode(in RoleProjects) (Node, Summary) {
	g := partition(in)
	summary := summarize(in.Resource, g)

	children := make([]Node, 0, 3)
	for _, grp := range []struct {
		title    string
		role     string
		icon     string
		projects []models.Project
	}{
		{"POC Projects", RolePOC, IconPOC, g.poc},
		{"Responsible Projects", RoleResponsible, IconAssigned, g.responsible},
		{"Assigned Projects", RoleAssigned, IconResources, g.assigned},
	} {
		if len(grp.projects) == 0 {
			continue
		}
		leaves := make([]Node, len(grp.projects))
		for i, p := range grp.projects {
			leaves[i] = Leaf(p.DisplayName(), IconProject).
				WithType(TypeProject).
				WithData(ProjectMeta{ID: p.ID, Type: string(p.Type), Label: p.Type.Label()})
		}
		children = append(children,
			Branch(fmt.Sprintf("%s (%d)", grp.title, len(leaves)), grp.icon, leaves...).
				WithType(TypeRoleGroup).
				WithData(GroupMeta{Role: grp.role, Count: len(leaves)}))
	}

	node := Branch(fmt.Sprintf("%s (%d)", in.Resource.Name, summary.TotalProjects), IconResource, children...).
		WithType(TypeResource).
		WithData(summary)
	return node, summary
}

// BuildResourceTree returns one node per resource ordered by descending total
// project count, then by name.
func BuildResourceTree(in []RoleProjects) []Node {
	type entry struct {
		node    Node
		summary Summary
	}
	entries := make([]entry, len(in))
	for i, rp := range in {
		node, summary := ResourceNode(rp)
		entries[i] = entry{node: node, summary: summary}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return ranksBefore(entries[i].summary, entries[j].summary)
	})

	nodes := make([]Node, len(entries))
	for i, e := range entries {
		nodes[i] = e.node
	}
	return nodes
}

// SortSummaries orders summaries the same way BuildResourceTree orders nodes.
func SortSummaries(summaries []Summary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return ranksBefore(summaries[i], summaries[j])
	})
}

func ranksBefore(a, b Summary) bool {
	if a.TotalProjects != b.TotalProjects {
		return a.TotalProjects > b.TotalProjects
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}
