// Package fake provides in-memory implementations of the platform interfaces:
// a fabricated accessibility graph, an application list, an input recorder,
// and a fixed screen. Tests build a Desktop and hand its Provider to the code
// under test.
package fake

import (
	"fmt"

	"github.com/mj1618/desktop-agent/internal/model"
	"github.com/mj1618/desktop-agent/internal/platform"
)

// Node is one element of a fabricated accessibility graph. Children may point
// back at ancestors to model cyclic graphs.
type Node struct {
	Role        string
	Title       string
	Value       string
	Description string
	Placeholder string
	Text        string
	Actions     []string
	Frame       *model.Rect
	Children    []*Node

	// Failure injection.
	FailAttrs    bool // every String query fails, including role
	FailFrame    bool
	FailChildren bool
	FailActions  bool
	FailPerform  bool
	FailSetValue bool

	parent *Node
}

// Add appends children and records n as their parent.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c.parent == nil {
			c.parent = n
		}
		n.Children = append(n.Children, c)
	}
	return n
}

// El returns a node with the given role and title.
func El(role, title string) *Node {
	return &Node{Role: role, Title: title}
}

// Button returns an AXButton node that advertises AXPress.
func Button(title string, frame *model.Rect) *Node {
	return &Node{Role: "AXButton", Title: title, Actions: []string{platform.ActionPress}, Frame: frame}
}

// Box returns a frame pointer.
func Box(x, y, w, h float64) *model.Rect {
	return &model.Rect{X: x, Y: y, Width: w, Height: h}
}

// Performed records a PerformAction call.
type Performed struct {
	Node   *Node
	Action string
}

// SetValue records a SetString call.
type SetValue struct {
	Node  *Node
	Attr  platform.Attribute
	Value string
}

// Graph implements platform.Accessibility over fabricated nodes keyed by PID.
type Graph struct {
	Roots   map[int]*Node
	RootErr error

	Performed []Performed
	SetValues []SetValue
	Queries   int
	// Minted counts node references handed to the handle table. Like a
	// platform service, the graph mints a fresh reference every time a node is
	// reached.
	Minted int

	refs *platform.HandleTable[*nodeRef]
	ids  map[*Node]uint64
}

// nodeRef is one reference to a node. Two refs are equal when they point at
// the same node.
type nodeRef struct {
	node *Node
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{Roots: make(map[int]*Node)}
}

func (g *Graph) table() *platform.HandleTable[*nodeRef] {
	if g.refs == nil {
		g.ids = make(map[*Node]uint64)
		g.refs = platform.NewHandleTable(
			func(r *nodeRef) uint64 { return g.id(r.node) },
			func(a, b *nodeRef) bool { return a.node == b.node },
			nil,
		)
	}
	return g.refs
}

func (g *Graph) id(n *Node) uint64 {
	if id, ok := g.ids[n]; ok {
		return id
	}
	id := uint64(len(g.ids) + 1)
	g.ids[n] = id
	return id
}

func (g *Graph) mint(n *Node) *nodeRef {
	g.Minted++
	return &nodeRef{node: n}
}

// HandleOf returns the handle for n in the current generation, registering it
// if needed.
func (g *Graph) HandleOf(n *Node) model.Handle {
	return g.table().Intern(g.mint(n))
}

// NodeOf resolves a handle from the current generation.
func (g *Graph) NodeOf(h model.Handle) (*Node, bool) {
	r, ok := g.table().Lookup(h)
	if !ok {
		return nil, false
	}
	return r.node, true
}

func (g *Graph) node(h model.Handle) (*Node, error) {
	g.Queries++
	n, ok := g.NodeOf(h)
	if !ok {
		return nil, fmt.Errorf("handle %d: %w", h, platform.ErrNotFound)
	}
	return n, nil
}

func (g *Graph) ApplicationRoot(pid int) (model.Handle, error) {
	if g.RootErr != nil {
		return 0, g.RootErr
	}
	root, ok := g.Roots[pid]
	if !ok {
		return 0, fmt.Errorf("no application with pid %d: %w", pid, platform.ErrNotFound)
	}
	return g.table().Replace(g.mint(root)), nil
}

func (g *Graph) String(h model.Handle, attr platform.Attribute) (string, error) {
	n, err := g.node(h)
	if err != nil {
		return "", err
	}
	if n.FailAttrs {
		return "", fmt.Errorf("attribute %s: cannot complete", attr)
	}
	switch attr {
	case platform.AttrRole:
		return n.Role, nil
	case platform.AttrTitle:
		return n.Title, nil
	case platform.AttrValue:
		return n.Value, nil
	case platform.AttrDescription:
		return n.Description, nil
	case platform.AttrPlaceholder:
		return n.Placeholder, nil
	case platform.AttrText:
		return n.Text, nil
	}
	return "", fmt.Errorf("attribute %s: %w", attr, platform.ErrNotFound)
}

func (g *Graph) Frame(h model.Handle) (model.Rect, error) {
	n, err := g.node(h)
	if err != nil {
		return model.Rect{}, err
	}
	if n.FailFrame || n.Frame == nil {
		return model.Rect{}, fmt.Errorf("frame: %w", platform.ErrNotFound)
	}
	return *n.Frame, nil
}

func (g *Graph) Children(h model.Handle) ([]model.Handle, error) {
	n, err := g.node(h)
	if err != nil {
		return nil, err
	}
	if n.FailChildren {
		return nil, fmt.Errorf("children: cannot complete")
	}
	out := make([]model.Handle, len(n.Children))
	for i, c := range n.Children {
		out[i] = g.HandleOf(c)
	}
	return out, nil
}

func (g *Graph) Parent(h model.Handle) (model.Handle, error) {
	n, err := g.node(h)
	if err != nil {
		return 0, err
	}
	if n.parent == nil {
		return 0, platform.ErrNotFound
	}
	return g.HandleOf(n.parent), nil
}

func (g *Graph) Actions(h model.Handle) ([]string, error) {
	n, err := g.node(h)
	if err != nil {
		return nil, err
	}
	if n.FailActions {
		return nil, fmt.Errorf("actions: cannot complete")
	}
	return n.Actions, nil
}

func (g *Graph) PerformAction(h model.Handle, action string) error {
	n, err := g.node(h)
	if err != nil {
		return err
	}
	if n.FailPerform {
		return fmt.Errorf("perform %s: action unsupported", action)
	}
	g.Performed = append(g.Performed, Performed{Node: n, Action: action})
	return nil
}

func (g *Graph) SetString(h model.Handle, attr platform.Attribute, value string) error {
	n, err := g.node(h)
	if err != nil {
		return err
	}
	if n.FailSetValue {
		return fmt.Errorf("set %s: attribute unsupported", attr)
	}
	if attr == platform.AttrValue {
		n.Value = value
	}
	g.SetValues = append(g.SetValues, SetValue{Node: n, Attr: attr, Value: value})
	return nil
}
