package model

// Handle is an opaque reference to a node in the platform accessibility graph.
// It is borrowed from the backend and is only valid until the backend resolves
// the next traversal root. The zero Handle never refers to a node.
type Handle uint64

// Rect is a screen rectangle in the reference display's coordinate space.
type Rect struct {
	X      float64 `yaml:"x"      json:"x"`
	Y      float64 `yaml:"y"      json:"y"`
	Width  float64 `yaml:"width"  json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains reports whether the point lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Overlaps reports whether the two rectangles share any area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height && r.Y+r.Height > o.Y
}

// Element is one retained node of a Snapshot.
type Element struct {
	StructuralID  int    // Pre-order index among retained nodes, from 1
	InteractionID int    // Pre-order index among interactive nodes, from 1; 0 = not interactive
	Role          string // Raw platform role, e.g. "AXButton"
	Handle        Handle
	Parent        int   // Structural ID of the parent; 0 for roots
	Children      []int // Structural IDs in reported order
	Depth         int

	// Attributes captured during the walk. Rendering reads only these, never the
	// live graph.
	Title       string
	Value       string
	Placeholder string
	Description string
	Text        string
	Actions     []string
	Frame       *Rect // nil when the geometry query failed
}

// Interactive reports whether the element was assigned an interaction ID.
func (e *Element) Interactive() bool {
	return e.InteractionID > 0
}
