// Package walker builds Snapshots by walking an application's accessibility
// graph. The Classifier decides which nodes are kept and which are
// interactive; the Walker enforces traversal limits and assigns identifiers.
package walker

import (
	"github.com/mj1618/desktop-agent/internal/model"
	"github.com/mj1618/desktop-agent/internal/platform"
)

// Policy lists the role and action names the classifier keys on.
type Policy struct {
	ExcludedRoles     []string `yaml:"excluded_roles"`
	InteractiveRoles  []string `yaml:"interactive_roles"`
	ActivationActions []string `yaml:"activation_actions"`
	PickActions       []string `yaml:"pick_actions"`
}

// DefaultPolicy returns the macOS policy. Text fields, text areas and buttons
// are always interactive because some controls omit action metadata.
func DefaultPolicy() Policy {
	return Policy{
		ExcludedRoles:     []string{"AXMenuItem", "AXMenuBarItem"},
		InteractiveRoles:  []string{"AXTextField", "AXTextArea", "AXButton"},
		ActivationActions: []string{platform.ActionPress},
		PickActions:       []string{platform.ActionPick},
	}
}

// Attributes are the per-element inputs to classification.
type Attributes struct {
	Role    string
	Actions []string
	Frame   *model.Rect // nil when geometry could not be queried
}

// Classification is the classifier's verdict for one element.
type Classification struct {
	Interactive bool
	Visible     bool
	Excluded    bool
}

// Classifier is pure decision logic over element attributes.
type Classifier struct {
	excluded    map[string]bool
	interactive map[string]bool
	actions     map[string]bool
}

// NewClassifier builds a classifier from a policy.
func NewClassifier(p Policy) *Classifier {
	c := &Classifier{
		excluded:    toSet(p.ExcludedRoles),
		interactive: toSet(p.InteractiveRoles),
		actions:     toSet(p.ActivationActions),
	}
	for _, a := range p.PickActions {
		c.actions[a] = true
	}
	return c
}

// Classify evaluates one element against the reference frame. A nil screen
// means the frame is unknown and every element counts as visible.
func (c *Classifier) Classify(a Attributes, screen *model.Rect) Classification {
	return Classification{
		Excluded:    c.Excluded(a.Role),
		Interactive: c.Interactive(a.Role, a.Actions),
		Visible:     Visible(a.Frame, screen),
	}
}

// Excluded reports whether the role is menu chrome whose subtree is pruned.
func (c *Classifier) Excluded(role string) bool {
	return c.excluded[role]
}

// Interactive reports whether the element offers a primary activation or pick
// action, or has an always-interactive role.
func (c *Classifier) Interactive(role string, actions []string) bool {
	if c.interactive[role] {
		return true
	}
	for _, a := range actions {
		if c.actions[a] {
			return true
		}
	}
	return false
}

// Visible reports whether frame overlaps screen. Partial overlap counts, so a
// control clipped at the display edge is kept. Unknown geometry (either side
// nil) fails open. Zero-area frames are visible when their origin is on
// screen.
func Visible(frame, screen *model.Rect) bool {
	if frame == nil || screen == nil {
		return true
	}
	if frame.Width <= 0 || frame.Height <= 0 {
		return screen.Contains(frame.X, frame.Y)
	}
	return frame.Overlaps(*screen)
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
