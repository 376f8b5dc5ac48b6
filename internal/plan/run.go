package plan

import (
	"time"

	"github.com/mj1618/desktop-agent/internal/executor"
)

// Target is the action surface a plan runs against. *session.Session
// implements it.
type Target interface {
	LaunchApplication(identifier string) executor.Result
	Click(interactionID int) executor.Result
	TypeText(interactionID int, text string) executor.Result
	ExecuteKeyboardCommand(command string) executor.Result
	Wait(d time.Duration) executor.Result
	RefreshSnapshot() (string, error)
}

// Options controls Run.
type Options struct {
	// ContinueOnError runs the remaining steps after a failure. By default the
	// run stops at the first failed step.
	ContinueOnError bool
	// RefreshAfter refreshes the snapshot once the run ends and attaches the
	// notation to the report.
	RefreshAfter bool
}

// StepReport is the outcome of one step.
type StepReport struct {
	Step   string          `yaml:"step"   json:"step"`
	Result executor.Result `yaml:"result" json:"result"`
}

// Report is the outcome of a run.
type Report struct {
	Steps        []StepReport `yaml:"steps"                   json:"steps"`
	OK           bool         `yaml:"ok"                      json:"ok"`
	Finished     bool         `yaml:"finished"                json:"finished"`
	Snapshot     string       `yaml:"snapshot,omitempty"      json:"snapshot,omitempty"`
	RefreshError string       `yaml:"refresh_error,omitempty" json:"refresh_error,omitempty"`
}

// Run executes the plan's steps in order. A finish step ends the run.
func Run(t Target, p *Plan, opts Options) Report {
	rep := Report{OK: true}
	for _, step := range p.Steps {
		if step.Action == Finish && step.Invalid == "" {
			rep.Finished = true
			rep.Steps = append(rep.Steps, StepReport{Step: step.String(), Result: executor.Result{OK: true, Action: Finish}})
			break
		}
		res := runStep(t, step)
		rep.Steps = append(rep.Steps, StepReport{Step: step.String(), Result: res})
		if !res.OK {
			rep.OK = false
			if !opts.ContinueOnError {
				break
			}
		}
	}

	if opts.RefreshAfter {
		out, err := t.RefreshSnapshot()
		if err != nil {
			rep.RefreshError = err.Error()
		} else {
			rep.Snapshot = out
		}
	}
	return rep
}

func runStep(t Target, s Step) executor.Result {
	if s.Invalid != "" {
		return executor.Result{Action: s.Action, Kind: executor.KindInvalidCommand, Error: s.Invalid}
	}
	a := s.Args
	switch s.Action {
	case OpenApp:
		return t.LaunchApplication(a.BundleID)
	case ClickElement:
		return t.Click(a.ID)
	case TypeInElement:
		return t.TypeText(a.ID, a.Text)
	case KeyboardCommand:
		return t.ExecuteKeyboardCommand(a.Command)
	case Wait:
		return t.Wait(time.Duration(a.Seconds * float64(time.Second)))
	}
	return executor.Result{Action: s.Action, Kind: executor.KindInvalidCommand, Error: "unsupported action"}
}
