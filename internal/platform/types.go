package platform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/desktop-agent/internal/model"
)

// Attribute names a string-valued element attribute.
type Attribute string

const (
	AttrRole        Attribute = "role"
	AttrTitle       Attribute = "title"
	AttrValue       Attribute = "value"
	AttrDescription Attribute = "description"
	AttrPlaceholder Attribute = "placeholder"
	// AttrText is raw text content, for platforms that expose it separately
	// from the value.
	AttrText Attribute = "text"
)

// Action names understood by PerformAction.
const (
	ActionPress = "AXPress"
	ActionPick  = "AXPick"
)

// ErrNotFound is returned when a handle, attribute, or application does not
// resolve.
var ErrNotFound = errors.New("not found")

// ParseRect parses a "x,y,w,h" string into a Rect.
func ParseRect(s string) (model.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return model.Rect{}, fmt.Errorf("invalid rect %q: expected x,y,w,h", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.Rect{}, fmt.Errorf("invalid rect %q: %w", s, err)
		}
		vals[i] = v
	}
	if vals[2] <= 0 || vals[3] <= 0 {
		return model.Rect{}, fmt.Errorf("invalid rect %q: width and height must be positive", s)
	}
	return model.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// StaticScreen is a Screen with a fixed frame, used when the display frame is
// pinned by configuration.
type StaticScreen model.Rect

func (s StaticScreen) Bounds() (model.Rect, error) {
	return model.Rect(s), nil
}
