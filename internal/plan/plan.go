// Package plan parses and runs action plans: ordered lists of actions in the
// shape an agent replies with, e.g.
//
//	{"actions": [
//	  {"open_app": {"bundle_id": "com.apple.Notes"}},
//	  {"click_element": {"id": 3}},
//	  {"type_in_element": {"id": 4, "text": "groceries"}},
//	  {"keyboard_command": {"command": "cmd+s"}},
//	  {"wait": {"seconds": 1}},
//	  {"finish": {}}
//	]}
//
// The same shape is accepted as YAML, and the "actions" wrapper is optional.
package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Action names.
const (
	OpenApp         = "open_app"
	ClickElement    = "click_element"
	TypeInElement   = "type_in_element"
	KeyboardCommand = "keyboard_command"
	Wait            = "wait"
	Finish          = "finish"
)

var knownActions = map[string]bool{
	OpenApp: true, ClickElement: true, TypeInElement: true,
	KeyboardCommand: true, Wait: true, Finish: true,
}

// Args holds the union of action arguments.
type Args struct {
	BundleID string  `json:"bundle_id,omitempty" yaml:"bundle_id,omitempty"`
	ID       int     `json:"id,omitempty"        yaml:"id,omitempty"`
	Text     string  `json:"text,omitempty"      yaml:"text,omitempty"`
	Command  string  `json:"command,omitempty"   yaml:"command,omitempty"`
	Seconds  float64 `json:"seconds,omitempty"   yaml:"seconds,omitempty"`
}

// Step is one action of a plan. Invalid is set when the step does not name
// exactly one known action; such a step fails when run.
type Step struct {
	Action  string
	Args    Args
	Invalid string
}

// Plan is an ordered list of steps.
type Plan struct {
	Steps []Step
}

type rawStep map[string]*Args

type wrapper struct {
	Actions []rawStep `json:"actions" yaml:"actions"`
}

// Parse decodes a plan from JSON or YAML. Markdown code fences around the
// document are ignored.
func Parse(data []byte) (*Plan, error) {
	data = stripFences(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty plan")
	}

	var raw []rawStep
	var err error
	if data[0] == '{' || data[0] == '[' {
		raw, err = decodeJSON(data)
	} else {
		raw, err = decodeYAML(data)
	}
	if err != nil {
		return nil, err
	}

	p := &Plan{Steps: make([]Step, 0, len(raw))}
	for _, r := range raw {
		p.Steps = append(p.Steps, newStep(r))
	}
	return p, nil
}

func decodeJSON(data []byte) ([]rawStep, error) {
	if data[0] == '[' {
		var steps []rawStep
		if err := json.Unmarshal(data, &steps); err != nil {
			return nil, fmt.Errorf("parse plan: %w", err)
		}
		return steps, nil
	}
	var w wrapper
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	return w.Actions, nil
}

func decodeYAML(data []byte) ([]rawStep, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty plan")
	}
	top := doc.Content[0]
	switch top.Kind {
	case yaml.SequenceNode:
		var steps []rawStep
		if err := top.Decode(&steps); err != nil {
			return nil, fmt.Errorf("parse plan: %w", err)
		}
		return steps, nil
	case yaml.MappingNode:
		var w wrapper
		if err := top.Decode(&w); err != nil {
			return nil, fmt.Errorf("parse plan: %w", err)
		}
		return w.Actions, nil
	}
	return nil, fmt.Errorf("parse plan: expected a list of actions or an actions mapping")
}

func newStep(r rawStep) Step {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)

	switch {
	case len(names) == 0:
		return Step{Invalid: "step names no action"}
	case len(names) > 1:
		return Step{Invalid: "step names more than one action: " + strings.Join(names, ", ")}
	case !knownActions[names[0]]:
		return Step{Action: names[0], Invalid: fmt.Sprintf("unknown action %q", names[0])}
	}
	s := Step{Action: names[0]}
	if args := r[names[0]]; args != nil {
		s.Args = *args
	}
	return s
}

// stripFences removes a surrounding ``` or ```json fence.
func stripFences(data []byte) []byte {
	data = bytes.TrimSpace(data)
	if !bytes.HasPrefix(data, []byte("```")) {
		return data
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[i+1:]
	} else {
		data = data[3:]
	}
	data = bytes.TrimSuffix(bytes.TrimSpace(data), []byte("```"))
	return bytes.TrimSpace(data)
}

// String describes the step as a past action, e.g. "Clicked element: 3".
func (s Step) String() string {
	a := s.Args
	switch {
	case s.Invalid != "":
		return "Invalid step: " + s.Invalid
	case s.Action == OpenApp:
		return "Opened app: " + a.BundleID
	case s.Action == ClickElement:
		return fmt.Sprintf("Clicked element: %d", a.ID)
	case s.Action == TypeInElement:
		return fmt.Sprintf("Typed %q in element: %d", a.Text, a.ID)
	case s.Action == KeyboardCommand:
		return "Executed keyboard command: " + a.Command
	case s.Action == Wait:
		return fmt.Sprintf("Waited for %g seconds", a.Seconds)
	case s.Action == Finish:
		return "Task completed"
	}
	return s.Action
}
