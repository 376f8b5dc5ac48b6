package platform

import (
	"github.com/mj1618/desktop-agent/internal/keys"
	"github.com/mj1618/desktop-agent/internal/model"
)

// Accessibility is the typed query capability over the platform
// accessibility graph. Every call may fail independently; callers decide
// whether a failure is fatal.
type Accessibility interface {
	// ApplicationRoot returns the root element of the application with the
	// given process ID. It starts a new handle generation: handles returned
	// before this call may stop resolving.
	ApplicationRoot(pid int) (model.Handle, error)

	// String reads a string-valued attribute.
	String(h model.Handle, attr Attribute) (string, error)

	// Frame reads the element's position and size.
	Frame(h model.Handle) (model.Rect, error)

	// Children returns child handles in the order the platform reports them.
	Children(h model.Handle) ([]model.Handle, error)

	// Parent returns the parent handle, or ErrNotFound at the top of the graph.
	Parent(h model.Handle) (model.Handle, error)

	// Actions returns the names of the actions the element can perform.
	Actions(h model.Handle) ([]string, error)

	// PerformAction invokes a named action on the element.
	PerformAction(h model.Handle, action string) error

	// SetString sets a string-valued attribute.
	SetString(h model.Handle, attr Attribute, value string) error
}

// Apps is the application-lifecycle service.
type Apps interface {
	// Running enumerates running applications in platform order.
	Running() ([]model.App, error)

	// Frontmost returns the application that currently has focus.
	Frontmost() (model.App, error)

	// Resolve returns a launchable reference (e.g. a bundle path) for the
	// identifier, or ErrNotFound.
	Resolve(identifier string) (string, error)

	// Launch starts the application, or brings it to the foreground when it
	// is already running.
	Launch(identifier string) error
}

// Inputter posts synthetic low-level input events on the system event tap.
type Inputter interface {
	MouseDown(x, y float64) error
	MouseUp(x, y float64) error
	KeyDown(code keys.Code, mods keys.Modifier) error
	KeyUp(code keys.Code, mods keys.Modifier) error
}

// Screen reports the reference display frame.
type Screen interface {
	Bounds() (model.Rect, error)
}
