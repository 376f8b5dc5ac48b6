// Package executor performs actions against elements of a previously built
// snapshot: clicks, text entry, keyboard commands, and application launches.
package executor

import (
	"errors"
	"fmt"
	"time"

	"github.com/mj1618/desktop-agent/internal/keys"
	"github.com/mj1618/desktop-agent/internal/logging"
	"github.com/mj1618/desktop-agent/internal/model"
	"github.com/mj1618/desktop-agent/internal/platform"
)

// Action names reported in results.
const (
	ActionLaunch   = "launch_app"
	ActionClick    = "click_element"
	ActionType     = "type_in_element"
	ActionKeyboard = "keyboard_command"
	ActionWait     = "wait"
)

// Timing holds the settle delays. They are heuristics, not readiness checks.
type Timing struct {
	LaunchWaitRunning time.Duration
	LaunchWaitStarted time.Duration
	ClickSettle       time.Duration
	KeystrokeDelay    time.Duration
}

// DefaultTiming returns the stock delays.
func DefaultTiming() Timing {
	return Timing{
		LaunchWaitRunning: 500 * time.Millisecond,
		LaunchWaitStarted: 3 * time.Second,
		ClickSettle:       300 * time.Millisecond,
		KeystrokeDelay:    50 * time.Millisecond,
	}
}

// Executor dispatches actions to the platform. It never retries.
type Executor struct {
	ax     platform.Accessibility
	apps   platform.Apps
	input  platform.Inputter
	screen platform.Screen
	timing Timing

	// Sleep blocks for the settle delays. Tests replace it to record waits.
	Sleep func(time.Duration)
}

// New returns an executor over the provider's backends.
func New(p *platform.Provider, t Timing) *Executor {
	return &Executor{
		ax:     p.Accessibility,
		apps:   p.Apps,
		input:  p.Inputter,
		screen: p.Screen,
		timing: t,
		Sleep:  time.Sleep,
	}
}

// LaunchApplication starts or foregrounds the application and then waits,
// briefly when it was already running and longer when it was started. The
// caller must refresh its snapshot afterwards.
func (e *Executor) LaunchApplication(identifier string) Result {
	path, err := e.apps.Resolve(identifier)
	if err != nil {
		return fail(ActionLaunch, KindNotFound, "no application for %q: %v", identifier, err)
	}

	running := e.isRunning(identifier)
	if err := e.apps.Launch(identifier); err != nil {
		return fail(ActionLaunch, KindLaunchFailed, "launch %s: %v", identifier, err)
	}

	wait, state := e.timing.LaunchWaitStarted, "started"
	if running {
		wait, state = e.timing.LaunchWaitRunning, "already running"
	}
	logging.Debug("launch", "app", identifier, "path", path, "state", state, "wait", wait)
	e.Sleep(wait)
	return ok(ActionLaunch, fmt.Sprintf("%s (%s)", identifier, state))
}

func (e *Executor) isRunning(identifier string) bool {
	apps, err := e.apps.Running()
	if err != nil {
		logging.Warn("list running applications", "err", err)
		return false
	}
	for _, app := range apps {
		if app.BundleID == identifier {
			return true
		}
	}
	return false
}

// Click activates the element with the given interaction ID. An element whose
// live center lies off the screen is activated natively; otherwise a
// synthetic mouse down/up pair is posted at its center.
func (e *Executor) Click(snap *model.Snapshot, interactionID int) Result {
	el, found := snap.Lookup(interactionID)
	if !found {
		return fail(ActionClick, KindElementNotFound, "no element with ID=%d in the current snapshot", interactionID)
	}
	frame, err := e.ax.Frame(el.Handle)
	if err != nil {
		return fail(ActionClick, KindGeometryUnavailable, "ID=%d: %v", interactionID, err)
	}
	x, y := frame.Center()

	if !e.onScreen(x, y) {
		logging.Debug("click", "id", interactionID, "path", "native", "x", x, "y", y)
		err := e.ax.PerformAction(el.Handle, platform.ActionPress)
		e.Sleep(e.timing.ClickSettle)
		if err != nil {
			return fail(ActionClick, KindActionFailed, "ID=%d: %v", interactionID, err)
		}
		return ok(ActionClick, "native press")
	}

	logging.Debug("click", "id", interactionID, "path", "mouse", "x", x, "y", y)
	err = e.input.MouseDown(x, y)
	if err == nil {
		err = e.input.MouseUp(x, y)
	}
	e.Sleep(e.timing.ClickSettle)
	if err != nil {
		return fail(ActionClick, KindActionFailed, "ID=%d: %v", interactionID, err)
	}
	return ok(ActionClick, fmt.Sprintf("mouse click at %.0f,%.0f", x, y))
}

// onScreen reports whether the point lies on the reference display. An
// unknown display frame counts as off-screen, which selects the native path.
func (e *Executor) onScreen(x, y float64) bool {
	bounds, err := e.screen.Bounds()
	if err != nil {
		logging.Warn("screen bounds", "err", err)
		return false
	}
	return bounds.Contains(x, y)
}

// TypeText sets the element's value. When the platform rejects that, it
// falls back to one key down/up pair per mappable character; characters
// without a key mapping are skipped.
func (e *Executor) TypeText(snap *model.Snapshot, interactionID int, text string) Result {
	el, found := snap.Lookup(interactionID)
	if !found {
		return fail(ActionType, KindElementNotFound, "no element with ID=%d in the current snapshot", interactionID)
	}

	err := e.ax.SetString(el.Handle, platform.AttrValue, text)
	if err == nil {
		return ok(ActionType, "set-value")
	}
	logging.Debug("set value rejected, typing keystrokes", "id", interactionID, "err", err)

	skipped := 0
	for _, r := range text {
		code, mods, mapped := keys.CharKey(r)
		if !mapped {
			skipped++
			continue
		}
		if err := e.press(code, mods); err != nil {
			return fail(ActionType, KindActionFailed, "ID=%d: keystroke %q: %v", interactionID, r, err)
		}
		e.Sleep(e.timing.KeystrokeDelay)
	}
	if skipped > 0 {
		return ok(ActionType, fmt.Sprintf("keystrokes (%d unmapped characters skipped)", skipped))
	}
	return ok(ActionType, "keystrokes")
}

// ExecuteKeyboardCommand posts one down/up pair for a command such as
// "cmd+shift+t".
func (e *Executor) ExecuteKeyboardCommand(command string) Result {
	combo, err := keys.Parse(command)
	if err != nil {
		return fail(ActionKeyboard, KindInvalidCommand, "%v", err)
	}
	if err := e.press(combo.Code, combo.Modifiers); err != nil {
		return fail(ActionKeyboard, KindActionFailed, "%s: %v", command, err)
	}
	if combo.Modifiers == 0 {
		return ok(ActionKeyboard, combo.Key)
	}
	return ok(ActionKeyboard, combo.Modifiers.String()+"+"+combo.Key)
}

func (e *Executor) press(code keys.Code, mods keys.Modifier) error {
	if err := e.input.KeyDown(code, mods); err != nil {
		return err
	}
	return e.input.KeyUp(code, mods)
}

// Wait blocks for d.
func (e *Executor) Wait(d time.Duration) Result {
	if d < 0 {
		return fail(ActionWait, KindInvalidCommand, "negative wait %s", d)
	}
	e.Sleep(d)
	return ok(ActionWait, d.String())
}

// IsKind reports whether err is an executor error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
