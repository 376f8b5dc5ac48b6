package executor

import "fmt"

// Kind classifies a failed action.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindLaunchFailed        Kind = "launch_failed"
	KindElementNotFound     Kind = "element_not_found"
	KindGeometryUnavailable Kind = "geometry_unavailable"
	KindActionFailed        Kind = "action_failed"
	KindInvalidCommand      Kind = "invalid_command"
)

// Error is a typed action failure.
type Error struct {
	Kind   Kind
	Action string
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Action, e.Kind, e.Msg)
}

// Result is the outcome of one action. Failures are reported here rather
// than as Go errors so the caller decides whether to retry.
type Result struct {
	OK     bool   `yaml:"ok"               json:"ok"`
	Action string `yaml:"action"           json:"action"`
	Kind   Kind   `yaml:"kind,omitempty"   json:"kind,omitempty"`
	Error  string `yaml:"error,omitempty"  json:"error,omitempty"`
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`
}

// Err returns nil for a successful result and an *Error otherwise.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return &Error{Kind: r.Kind, Action: r.Action, Msg: r.Error}
}

func ok(action, detail string) Result {
	return Result{OK: true, Action: action, Detail: detail}
}

func fail(action string, kind Kind, format string, args ...interface{}) Result {
	return Result{Action: action, Kind: kind, Error: fmt.Sprintf(format, args...)}
}
