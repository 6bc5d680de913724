// Package tree builds the nested project/resource payloads rendered by the
// front-end tree widget.
package tree

import (
	"encoding/json"
	"strings"
)

// Kind separates nodes that never have children from nodes that always
// carry a (possibly empty) children list.
type Kind int

const (
	KindLeaf Kind = iota
	KindBranch
)

// Icon hints understood by the widget.
const (
	IconRoot      = "fas fa-sitemap"
	IconProject   = "fas fa-project-diagram"
	IconAssigned  = "fas fa-user-tie"
	IconResources = "fas fa-users"
	IconResource  = "fas fa-user"
	IconPOC       = "fas fa-id-card"
)

// Node is one entry of a tree payload.
type Node struct {
	Text   string
	Icon   string
	Type   string
	Opened bool
	Data   any

	kind     Kind
	children []Node
}

// Leaf returns a node without a children list.
func Leaf(text, icon string) Node {
	return Node{Text: text, Icon: icon, kind: KindLeaf}
}

// Branch returns a node whose children list is always present, even when empty.
func Branch(text, icon string, children ...Node) Node {
	if children == nil {
		children = []Node{}
	}
	return Node{Text: text, Icon: icon, kind: KindBranch, children: children}
}

func (n Node) WithType(t string) Node {
	n.Type = t
	return n
}

func (n Node) WithData(data any) Node {
	n.Data = data
	return n
}

func (n Node) Open() Node {
	n.Opened = true
	return n
}

func (n Node) Kind() Kind {
	return n.kind
}

// Children returns the child nodes; nil for leaves.
func (n Node) Children() []Node {
	return n.children
}

type nodeJSON struct {
	Text     string  `json:"text"`
	Icon     string  `json:"icon"`
	Type     string  `json:"type,omitempty"`
	Opened   bool    `json:"opened,omitempty"`
	Data     any     `json:"data,omitempty"`
	Children *[]Node `json:"children,omitempty"`
}

func (n Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{Text: n.Text, Icon: n.Icon, Type: n.Type, Opened: n.Opened, Data: n.Data}
	if n.kind == KindBranch {
		children := n.children
		if children == nil {
			children = []Node{}
		}
		out.Children = &children
	}
	return json.Marshal(out)
}

func (n *Node) UnmarshalJSON(b []byte) error {
	var in nodeJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*n = Node{Text: in.Text, Icon: in.Icon, Type: in.Type, Opened: in.Opened, Data: in.Data}
	if in.Children != nil {
		n.kind = KindBranch
		n.children = *in.Children
	}
	return nil
}

// Render draws the tree as indented text, one node per line.
func Render(root Node) string {
	var sb strings.Builder
	sb.WriteString(root.Text)
	sb.WriteByte('\n')
	renderChildren(&sb, root.children, "")
	return sb.String()
}

func renderChildren(sb *strings.Builder, children []Node, prefix string) {
	for i, child := range children {
		last := i == len(children)-1
		connector, next := "├── ", "│   "
		if last {
			connector, next = "└── ", "    "
		}
		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(child.Text)
		sb.WriteByte('\n')
		renderChildren(sb, child.children, prefix+next)
	}
}
