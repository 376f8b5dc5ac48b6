package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snapshot is an immutable, point-in-time capture of a bounded subset of an
// application's accessibility graph. It is built by the walker, consumed by
// the renderer and the executor, and replaced wholesale on every refresh.
type Snapshot struct {
	ID        string
	App       App
	CreatedAt time.Time

	// Elements maps structural IDs to retained nodes.
	Elements map[int]*Element
	// Roots lists structural IDs of nodes without a recorded parent, in
	// discovery order.
	Roots []int
	// Interactive lists structural IDs in interaction-ID order, so
	// Interactive[k-1] is the element with interaction ID k.
	Interactive []int
	// Running is the application list captured while the snapshot was built.
	Running []App
	// Truncated is set when the element budget stopped the walk early.
	Truncated bool
	// Limit is the element budget the walk ran with.
	Limit int
}

// NewSnapshot returns an empty snapshot for app with a fresh identity.
func NewSnapshot(app App) *Snapshot {
	return &Snapshot{
		ID:        uuid.New().String(),
		App:       app,
		CreatedAt: time.Now(),
		Elements:  make(map[int]*Element),
	}
}

// Len returns the number of retained structural entries.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Elements)
}

// InteractiveCount returns K, the number of interactive elements.
func (s *Snapshot) InteractiveCount() int {
	if s == nil {
		return 0
	}
	return len(s.Interactive)
}

// Get returns the element with the given structural ID.
func (s *Snapshot) Get(structuralID int) (*Element, bool) {
	if s == nil {
		return nil, false
	}
	el, ok := s.Elements[structuralID]
	return el, ok
}

// Lookup resolves an interaction ID to its element.
func (s *Snapshot) Lookup(interactionID int) (*Element, bool) {
	if s == nil || interactionID < 1 || interactionID > len(s.Interactive) {
		return nil, false
	}
	return s.Get(s.Interactive[interactionID-1])
}

// Ordered returns all elements sorted by structural ID.
func (s *Snapshot) Ordered() []*Element {
	if s == nil {
		return nil
	}
	out := make([]*Element, 0, len(s.Elements))
	for id := 1; id <= len(s.Elements); id++ {
		if el, ok := s.Elements[id]; ok {
			out = append(out, el)
		}
	}
	return out
}

// Validate checks the identifier invariants: structural IDs are exactly
// 1..N, every child has a larger structural ID than its parent and points
// back at it, and interaction IDs are dense 1..K in structural order.
func (s *Snapshot) Validate() error {
	n := len(s.Elements)
	for id := 1; id <= n; id++ {
		el, ok := s.Elements[id]
		if !ok {
			return fmt.Errorf("structural id %d missing (have %d elements)", id, n)
		}
		if el.StructuralID != id {
			return fmt.Errorf("element keyed %d carries structural id %d", id, el.StructuralID)
		}
		for _, c := range el.Children {
			child, ok := s.Elements[c]
			if !ok {
				return fmt.Errorf("element %d lists unknown child %d", id, c)
			}
			if c <= id {
				return fmt.Errorf("child %d is not after parent %d", c, id)
			}
			if child.Parent != id {
				return fmt.Errorf("child %d records parent %d, want %d", c, child.Parent, id)
			}
		}
	}

	last := 0
	for k, sid := range s.Interactive {
		el, ok := s.Elements[sid]
		if !ok {
			return fmt.Errorf("interaction id %d points at unknown element %d", k+1, sid)
		}
		if el.InteractionID != k+1 {
			return fmt.Errorf("element %d has interaction id %d, want %d", sid, el.InteractionID, k+1)
		}
		if sid <= last {
			return fmt.Errorf("interaction id %d is out of structural order", k+1)
		}
		last = sid
	}
	count := 0
	for _, el := range s.Elements {
		if el.InteractionID > 0 {
			count++
		}
	}
	if count != len(s.Interactive) {
		return fmt.Errorf("%d elements carry interaction ids but index has %d", count, len(s.Interactive))
	}
	return nil
}
