package walker

import (
	"github.com/mj1618/desktop-agent/internal/logging"
	"github.com/mj1618/desktop-agent/internal/model"
	"github.com/mj1618/desktop-agent/internal/platform"
)

// Limits bound a walk.
type Limits struct {
	MaxElements        int `yaml:"max_elements"`
	MaxChildrenPerNode int `yaml:"max_children_per_node"`
	MaxDepth           int `yaml:"max_depth"` // 0 = unlimited
}

// DefaultLimits returns the standard traversal budget.
func DefaultLimits() Limits {
	return Limits{MaxElements: 500, MaxChildrenPerNode: 100}
}

// Walker performs depth-first, breadth-bounded traversals.
type Walker struct {
	ax         platform.Accessibility
	classifier *Classifier
	limits     Limits
}

// New returns a walker over ax.
func New(ax platform.Accessibility, policy Policy, limits Limits) *Walker {
	return &Walker{ax: ax, classifier: NewClassifier(policy), limits: limits}
}

// walk holds the state of one traversal.
type walk struct {
	*Walker
	snap    *model.Snapshot
	screen  *model.Rect
	nextSID int
	nextIID int
	onPath  map[model.Handle]bool
}

// Walk traverses the graph from root in pre-order and returns the snapshot.
// Attribute failures on a node are tolerated: the value defaults to empty and
// the walk continues. screen is the reference display frame, or nil if it is
// unknown.
func (w *Walker) Walk(root model.Handle, app model.App, screen *model.Rect) *model.Snapshot {
	st := &walk{
		Walker: w,
		snap:   model.NewSnapshot(app),
		screen: screen,
		onPath: make(map[model.Handle]bool),
	}
	st.snap.Limit = w.limits.MaxElements
	if sid, ok := st.visit(root, 0, 0); ok {
		st.snap.Roots = append(st.snap.Roots, sid)
	}
	logging.Debug("walk complete",
		"app", app.BundleID,
		"elements", st.snap.Len(),
		"interactive", st.snap.InteractiveCount(),
		"truncated", st.snap.Truncated)
	return st.snap
}

func (st *walk) exhausted() bool {
	return st.limits.MaxElements > 0 && st.snap.Len() >= st.limits.MaxElements
}

// visit processes one node and its subtree, returning the node's structural ID
// when it was retained.
func (st *walk) visit(h model.Handle, parent, depth int) (int, bool) {
	if st.exhausted() {
		st.snap.Truncated = true
		return 0, false
	}
	if st.onPath[h] {
		return 0, false
	}

	role := st.str(h, platform.AttrRole)
	if st.classifier.Excluded(role) {
		return 0, false
	}

	var frame *model.Rect
	if r, err := st.ax.Frame(h); err == nil {
		frame = &r
	}
	if !Visible(frame, st.screen) {
		return 0, false
	}

	actions, _ := st.ax.Actions(h)

	st.nextSID++
	el := &model.Element{
		StructuralID: st.nextSID,
		Role:         role,
		Handle:       h,
		Parent:       parent,
		Depth:        depth,
		Title:        st.str(h, platform.AttrTitle),
		Value:        st.str(h, platform.AttrValue),
		Placeholder:  st.str(h, platform.AttrPlaceholder),
		Description:  st.str(h, platform.AttrDescription),
		Text:         st.str(h, platform.AttrText),
		Actions:      actions,
		Frame:        frame,
	}
	if st.classifier.Interactive(role, actions) {
		st.nextIID++
		el.InteractionID = st.nextIID
		st.snap.Interactive = append(st.snap.Interactive, el.StructuralID)
	}
	st.snap.Elements[el.StructuralID] = el

	if st.limits.MaxDepth > 0 && depth >= st.limits.MaxDepth {
		return el.StructuralID, true
	}

	children, err := st.ax.Children(h)
	if err != nil || len(children) == 0 {
		return el.StructuralID, true
	}
	if limit := st.limits.MaxChildrenPerNode; limit > 0 && len(children) > limit {
		children = children[:limit]
	}

	st.onPath[h] = true
	for _, c := range children {
		if st.exhausted() {
			st.snap.Truncated = true
			break
		}
		if sid, ok := st.visit(c, el.StructuralID, depth+1); ok {
			el.Children = append(el.Children, sid)
		}
	}
	delete(st.onPath, h)

	return el.StructuralID, true
}

// str reads a string attribute, defaulting to "" on failure.
func (st *walk) str(h model.Handle, attr platform.Attribute) string {
	s, err := st.ax.String(h, attr)
	if err != nil {
		return ""
	}
	return s
}
