package fake

import (
	"errors"
	"fmt"

	"github.com/mj1618/desktop-agent/internal/keys"
	"github.com/mj1618/desktop-agent/internal/model"
	"github.com/mj1618/desktop-agent/internal/platform"
)

// Apps implements platform.Apps over a fixed application list.
type Apps struct {
	List      []model.App
	Front     model.App
	Installed map[string]string // bundle ID -> launchable path

	RunningErr error
	FrontErr   error
	LaunchErr  error

	Launched []string
}

func (a *Apps) Running() ([]model.App, error) {
	if a.RunningErr != nil {
		return nil, a.RunningErr
	}
	return append([]model.App(nil), a.List...), nil
}

func (a *Apps) Frontmost() (model.App, error) {
	if a.FrontErr != nil {
		return model.App{}, a.FrontErr
	}
	if a.Front.PID == 0 {
		return model.App{}, errors.New("no frontmost application")
	}
	return a.Front, nil
}

func (a *Apps) Resolve(identifier string) (string, error) {
	if path, ok := a.Installed[identifier]; ok {
		return path, nil
	}
	for _, app := range a.List {
		if app.BundleID == identifier {
			return "/Applications/" + app.Name + ".app", nil
		}
	}
	return "", fmt.Errorf("application %q: %w", identifier, platform.ErrNotFound)
}

// Launch records the request and makes the application frontmost, adding it
// to the running list when it was not running.
func (a *Apps) Launch(identifier string) error {
	if a.LaunchErr != nil {
		return a.LaunchErr
	}
	a.Launched = append(a.Launched, identifier)
	for _, app := range a.List {
		if app.BundleID == identifier {
			a.Front = app
			return nil
		}
	}
	app := model.App{PID: 1000 + len(a.List), Name: identifier, BundleID: identifier}
	a.List = append(a.List, app)
	a.Front = app
	return nil
}

// EventKind identifies a recorded input event.
type EventKind string

const (
	MouseDown EventKind = "mouse-down"
	MouseUp   EventKind = "mouse-up"
	KeyDown   EventKind = "key-down"
	KeyUp     EventKind = "key-up"
)

// Event is one recorded synthetic input event.
type Event struct {
	Kind EventKind
	X, Y float64
	Code keys.Code
	Mods keys.Modifier
}

// Input implements platform.Inputter by recording events.
type Input struct {
	Events []Event

	FailMouse bool
	FailKeys  bool
}

func (in *Input) MouseDown(x, y float64) error {
	if in.FailMouse {
		return errors.New("mouse event rejected")
	}
	in.Events = append(in.Events, Event{Kind: MouseDown, X: x, Y: y})
	return nil
}

func (in *Input) MouseUp(x, y float64) error {
	if in.FailMouse {
		return errors.New("mouse event rejected")
	}
	in.Events = append(in.Events, Event{Kind: MouseUp, X: x, Y: y})
	return nil
}

func (in *Input) KeyDown(code keys.Code, mods keys.Modifier) error {
	if in.FailKeys {
		return errors.New("key event rejected")
	}
	in.Events = append(in.Events, Event{Kind: KeyDown, Code: code, Mods: mods})
	return nil
}

func (in *Input) KeyUp(code keys.Code, mods keys.Modifier) error {
	if in.FailKeys {
		return errors.New("key event rejected")
	}
	in.Events = append(in.Events, Event{Kind: KeyUp, Code: code, Mods: mods})
	return nil
}

// Count returns the number of recorded events of the given kind.
func (in *Input) Count(kind EventKind) int {
	n := 0
	for _, e := range in.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Screen implements platform.Screen with a settable frame and error.
type Screen struct {
	Frame model.Rect
	Err   error
}

func (s *Screen) Bounds() (model.Rect, error) {
	if s.Err != nil {
		return model.Rect{}, s.Err
	}
	return s.Frame, nil
}

// Desktop bundles one of each fake.
type Desktop struct {
	Graph  *Graph
	Apps   *Apps
	Input  *Input
	Screen *Screen
}

// NewDesktop returns a desktop with a 1440x900 screen and app as the single
// running, frontmost application whose accessibility root is root.
func NewDesktop(app model.App, root *Node) *Desktop {
	d := &Desktop{
		Graph:  NewGraph(),
		Apps:   &Apps{List: []model.App{app}, Front: app},
		Input:  &Input{},
		Screen: &Screen{Frame: model.Rect{Width: 1440, Height: 900}},
	}
	d.Graph.Roots[app.PID] = root
	return d
}

// Provider returns a platform.Provider backed by the desktop's fakes.
func (d *Desktop) Provider() *platform.Provider {
	return &platform.Provider{
		Accessibility: d.Graph,
		Apps:          d.Apps,
		Inputter:      d.Input,
		Screen:        d.Screen,
	}
}
