package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/resource-dashboard/internal/models"
)

func proj(id uint64, name string) models.Project {
	return models.Project{ID: id, Name: name, Type: models.ProjectTypeBillable, IsActive: true}
}

func groupTexts(n Node) []string {
	texts := make([]string, len(n.Children()))
	for i, c := range n.Children() {
		texts[i] = c.Text
	}
	return texts
}

func TestResourceNode_ResponsibleProjectExcludedFromAssigned(t *testing.T) {
	apollo := proj(1, "Apollo")
	in := RoleProjects{
		Resource:    res(1, "R1"),
		Responsible: []models.Project{apollo},
		Assigned:    []models.Project{apollo},
	}

	node, summary := ResourceNode(in)

	assert.Equal(t, []string{"Responsible Projects (1)"}, groupTexts(node))
	assert.Equal(t, Summary{ID: 1, Name: "R1", TotalProjects: 1, ResponsibleProjects: 1}, summary)
	assert.Equal(t, GroupMeta{Role: RoleResponsible, Count: 1}, node.Children()[0].Data)
}

func TestResourceNode_POCProjectExcludedFromAssigned(t *testing.T) {
	apollo, gemini := proj(1, "Apollo"), proj(2, "Gemini")
	in := RoleProjects{
		Resource: res(3, "R3"),
		POC:      []models.Project{apollo},
		Assigned: []models.Project{apollo, gemini},
	}

	node, summary := ResourceNode(in)

	assert.Equal(t, []string{"POC Projects (1)", "Assigned Projects (1)"}, groupTexts(node))
	assert.Equal(t, "Gemini (Billable)", node.Children()[1].Children()[0].Text)
	assert.Equal(t, 2, summary.TotalProjects)
	assert.Equal(t, 1, summary.AssignedProjects)
}

func TestResourceNode_DedupesByIdentityNotName(t *testing.T) {
	a := proj(1, "Apollo")
	sameName := proj(2, "Apollo")
	in := RoleProjects{
		Resource: res(1, "R1"),
		POC:      []models.Project{a},
		Assigned: []models.Project{sameName, sameName},
	}

	summary := Summarize(in)

	assert.Equal(t, 1, summary.AssignedProjects)
	assert.Equal(t, 2, summary.TotalProjects)
}

func TestResourceNode_UnionHasNoDuplicatesAndMatchesTotal(t *testing.T) {
	p1, p2, p3, p4 := proj(1, "A"), proj(2, "B"), proj(3, "C"), proj(4, "D")
	in := RoleProjects{
		Resource:    res(7, "R7"),
		POC:         []models.Project{p1, p2},
		Responsible: []models.Project{p2, p3},
		Assigned:    []models.Project{p1, p3, p4, p4},
	}

	node, summary := ResourceNode(in)

	ids := map[uint64]int{}
	for _, group := range node.Children() {
		for _, leaf := range group.Children() {
			ids[leaf.Data.(ProjectMeta).ID]++
		}
	}
	assert.Equal(t, summary.TotalProjects, len(ids))
	assert.Equal(t, 4, summary.TotalProjects)
	assert.Equal(t, 1, summary.AssignedProjects)
	for id, n := range ids {
		if id == 2 {
			// POC and responsible are distinct roles for the same project.
			assert.Equal(t, 2, n)
			continue
		}
		assert.Equal(t, 1, n, "project %d listed more than once", id)
	}
}

func TestResourceNode_NoProjectsStillPresent(t *testing.T) {
	node, summary := ResourceNode(RoleProjects{Resource: res(9, "Idle")})

	assert.Equal(t, KindBranch, node.Kind())
	assert.Empty(t, node.Children())
	assert.Equal(t, 0, summary.TotalProjects)
	assert.Equal(t, "Idle (0)", node.Text)
}

func TestBuildResourceTree_SortsByTotalThenName(t *testing.T) {
	in := []RoleProjects{
		{Resource: res(1, "Zoe"), Assigned: []models.Project{proj(1, "A")}},
		{Resource: res(2, "Idle")},
		{Resource: res(3, "Amy"), Assigned: []models.Project{proj(1, "A")}},
		{Resource: res(4, "Max"), POC: []models.Project{proj(1, "A")}, Responsible: []models.Project{proj(2, "B")}},
	}

	nodes := BuildResourceTree(in)

	require.Len(t, nodes, 4)
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Data.(Summary).Name
	}
	assert.Equal(t, []string{"Max", "Amy", "Zoe", "Idle"}, names)
}

func TestSortSummaries(t *testing.T) {
	s := []Summary{
		{ID: 2, Name: "b", TotalProjects: 1},
		{ID: 1, Name: "a", TotalProjects: 1},
		{ID: 3, Name: "c", TotalProjects: 5},
	}

	SortSummaries(s)

	assert.Equal(t, []uint64{3, 1, 2}, []uint64{s[0].ID, s[1].ID, s[2].ID})
}
