// Package session holds the most recently built snapshot and routes actions
// against it. It is the boundary a host controller talks to.
package session

import (
	"fmt"
	"time"

	"github.com/mj1618/desktop-agent/internal/executor"
	"github.com/mj1618/desktop-agent/internal/logging"
	"github.com/mj1618/desktop-agent/internal/model"
	"github.com/mj1618/desktop-agent/internal/notation"
	"github.com/mj1618/desktop-agent/internal/platform"
	"github.com/mj1618/desktop-agent/internal/walker"
)

// Options configures a Session.
type Options struct {
	Limits walker.Limits
	Policy walker.Policy
	Timing executor.Timing
}

// DefaultOptions returns the stock limits, policy, and timing.
func DefaultOptions() Options {
	return Options{
		Limits: walker.DefaultLimits(),
		Policy: walker.DefaultPolicy(),
		Timing: executor.DefaultTiming(),
	}
}

// Session is not safe for concurrent use; callers serialise access.
type Session struct {
	provider *platform.Provider
	walker   *walker.Walker
	exec     *executor.Executor

	snap  *model.Snapshot
	stale bool
}

// New returns a session with no snapshot.
func New(p *platform.Provider, opts Options) *Session {
	return &Session{
		provider: p,
		walker:   walker.New(p.Accessibility, opts.Policy, opts.Limits),
		exec:     executor.New(p, opts.Timing),
	}
}

// Executor exposes the action executor, e.g. to replace its Sleep.
func (s *Session) Executor() *executor.Executor { return s.exec }

// Snapshot returns the latest snapshot, or nil before the first refresh.
func (s *Session) Snapshot() *model.Snapshot { return s.snap }

// Stale reports whether an action has run since the last refresh. Actions
// still resolve against the stale snapshot until the next refresh.
func (s *Session) Stale() bool { return s.snap == nil || s.stale }

// Refresh rebuilds the snapshot from the application that is frontmost now.
// On failure the previous snapshot is kept.
func (s *Session) Refresh() (*model.Snapshot, error) {
	app, err := s.provider.Apps.Frontmost()
	if err != nil {
		return nil, fmt.Errorf("frontmost application: %w", err)
	}

	var screen *model.Rect
	if bounds, err := s.provider.Screen.Bounds(); err != nil {
		logging.Warn("screen bounds unavailable, treating every element as visible", "err", err)
	} else {
		screen = &bounds
	}

	root, err := s.provider.Accessibility.ApplicationRoot(app.PID)
	if err != nil {
		return nil, fmt.Errorf("accessibility root for %s (pid %d): %w", app.Name, app.PID, err)
	}
	snap := s.walker.Walk(root, app, screen)

	running, err := s.provider.Apps.Running()
	if err != nil {
		logging.Warn("list running applications", "err", err)
	}
	snap.Running = running

	s.snap, s.stale = snap, false
	logging.Info("snapshot", "app", app.Name, "elements", snap.Len(), "interactive", snap.InteractiveCount(), "truncated", snap.Truncated)
	return snap, nil
}

// RefreshSnapshot rebuilds the snapshot and returns its notation.
func (s *Session) RefreshSnapshot() (string, error) {
	snap, err := s.Refresh()
	if err != nil {
		return "", err
	}
	return notation.Render(snap), nil
}

// RunningApps lists running applications.
func (s *Session) RunningApps() ([]model.App, error) {
	return s.provider.Apps.Running()
}

func (s *Session) LaunchApplication(identifier string) executor.Result {
	return s.acted(s.exec.LaunchApplication(identifier))
}

func (s *Session) Click(interactionID int) executor.Result {
	return s.acted(s.exec.Click(s.snap, interactionID))
}

func (s *Session) TypeText(interactionID int, text string) executor.Result {
	return s.acted(s.exec.TypeText(s.snap, interactionID, text))
}

func (s *Session) ExecuteKeyboardCommand(spec string) executor.Result {
	return s.acted(s.exec.ExecuteKeyboardCommand(spec))
}

func (s *Session) Wait(d time.Duration) executor.Result {
	return s.exec.Wait(d)
}

func (s *Session) acted(r executor.Result) executor.Result {
	if r.OK {
		s.stale = true
		logging.Debug("action", "action", r.Action, "detail", r.Detail)
	} else {
		logging.Warn("action failed", "action", r.Action, "kind", r.Kind, "err", r.Error)
	}
	return r
}
