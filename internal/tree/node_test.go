package tree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_MarshalJSON(t *testing.T) {
	t.Run("leaf omits children", func(t *testing.T) {
		b, err := json.Marshal(Leaf("POC: Ann", IconPOC))
		require.NoError(t, err)
		assert.JSONEq(t, `{"text":"POC: Ann","icon":"fas fa-id-card"}`, string(b))
	})

	t.Run("empty branch emits empty list", func(t *testing.T) {
		b, err := json.Marshal(Branch("Apollo (Billable)", IconProject))
		require.NoError(t, err)
		assert.JSONEq(t, `{"text":"Apollo (Billable)","icon":"fas fa-project-diagram","children":[]}`, string(b))
	})

	t.Run("opened branch with children", func(t *testing.T) {
		n := Branch("Resources (1)", IconResources, Leaf("Ann", IconResource)).Open().WithType(TypeResources)
		b, err := json.Marshal(n)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"text":"Resources (1)","icon":"fas fa-users","type":"resources","opened":true,
			"children":[{"text":"Ann","icon":"fas fa-user"}]
		}`, string(b))
	})
}

func TestNode_UnmarshalJSON_RoundTripsKind(t *testing.T) {
	var nodes []Node
	require.NoError(t, json.Unmarshal([]byte(`[
		{"text":"a","icon":"x","children":[]},
		{"text":"b","icon":"y"}
	]`), &nodes))

	require.Len(t, nodes, 2)
	assert.Equal(t, KindBranch, nodes[0].Kind())
	assert.NotNil(t, nodes[0].Children())
	assert.Empty(t, nodes[0].Children())
	assert.Equal(t, KindLeaf, nodes[1].Kind())
	assert.Nil(t, nodes[1].Children())
}

func TestRender(t *testing.T) {
	root := Root("All Projects", []Node{
		Branch("Apollo (Billable)", IconProject,
			Leaf("Assigned Resource: Ann", IconAssigned),
			Branch("Resources (2)", IconResources, Leaf("Ann", IconResource), Leaf("Bob", IconResource)),
		),
		Branch("Gemini (Internal)", IconProject),
	})

	want := "All Projects\n" +
		"├── Apollo (Billable)\n" +
		"│   ├── Assigned Resource: Ann\n" +
		"│   └── Resources (2)\n" +
		"│       ├── Ann\n" +
		"│       └── Bob\n" +
		"└── Gemini (Internal)\n"
	assert.Equal(t, want, Render(root))
}
