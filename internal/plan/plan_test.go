package plan

import (
	"strings"
	"testing"
)

const agentReply = `{
	"actions": [
		{"open_app": {"bundle_id": "com.apple.Notes"}},
		{"click_element": {"id": 3}},
		{"type_in_element": {"id": 4, "text": "milk, eggs"}},
		{"keyboard_command": {"command": "cmd+s"}},
		{"wait": {"seconds": 1.5}},
		{"finish": {}}
	]
}`

func TestParse_AgentJSON(t *testing.T) {
	p, err := Parse([]byte(agentReply))
	if err != nil {
		t.Fatal(err)
	}
	want := []Step{
		{Action: OpenApp, Args: Args{BundleID: "com.apple.Notes"}},
		{Action: ClickElement, Args: Args{ID: 3}},
		{Action: TypeInElement, Args: Args{ID: 4, Text: "milk, eggs"}},
		{Action: KeyboardCommand, Args: Args{Command: "cmd+s"}},
		{Action: Wait, Args: Args{Seconds: 1.5}},
		{Action: Finish},
	}
	if len(p.Steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(p.Steps), len(want))
	}
	for i, w := range want {
		if p.Steps[i] != w {
			t.Errorf("step %d: got %+v, want %+v", i, p.Steps[i], w)
		}
	}
}

func TestParse_Forms(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bare json list", `[{"click_element": {"id": 3}}, {"finish": {}}]`},
		{"fenced json", "```json\n{\"actions\": [{\"click_element\": {\"id\": 3}}, {\"finish\": {}}]}\n```"},
		{"yaml wrapper", "actions:\n  - click_element:\n      id: 3\n  - finish: {}\n"},
		{"yaml list", "- click_element: {id: 3}\n- finish:\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if len(p.Steps) != 2 {
				t.Fatalf("got %d steps", len(p.Steps))
			}
			if s := p.Steps[0]; s.Action != ClickElement || s.Args.ID != 3 || s.Invalid != "" {
				t.Errorf("first step = %+v", s)
			}
			if s := p.Steps[1]; s.Action != Finish || s.Invalid != "" {
				t.Errorf("second step = %+v", s)
			}
		})
	}
}

func TestParse_InvalidSteps(t *testing.T) {
	p, err := Parse([]byte(`[{"click_element": {"id": 1}, "wait": {"seconds": 1}}, {"scroll": {}}, {}]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Steps) != 3 {
		t.Fatalf("got %d steps", len(p.Steps))
	}
	if !strings.Contains(p.Steps[0].Invalid, "click_element, wait") {
		t.Errorf("multi-action step: %q", p.Steps[0].Invalid)
	}
	if !strings.Contains(p.Steps[1].Invalid, `unknown action "scroll"`) {
		t.Errorf("unknown step: %q", p.Steps[1].Invalid)
	}
	if p.Steps[2].Invalid == "" {
		t.Error("empty step should be invalid")
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "   ", "```\n```", `{"actions": [`, `[{"click_element": {"id": "three"}}]`, "just words"} {
		if _, err := Parse([]byte(in)); err == nil {
			t.Errorf("Parse(%q): expected error", in)
		}
	}
}

func TestStep_String(t *testing.T) {
	tests := []struct {
		step Step
		want string
	}{
		{Step{Action: OpenApp, Args: Args{BundleID: "com.apple.Notes"}}, "Opened app: com.apple.Notes"},
		{Step{Action: ClickElement, Args: Args{ID: 3}}, "Clicked element: 3"},
		{Step{Action: TypeInElement, Args: Args{ID: 4, Text: "hi"}}, `Typed "hi" in element: 4`},
		{Step{Action: KeyboardCommand, Args: Args{Command: "cmd+s"}}, "Executed keyboard command: cmd+s"},
		{Step{Action: Wait, Args: Args{Seconds: 2}}, "Waited for 2 seconds"},
		{Step{Action: Finish}, "Task completed"},
		{Step{Invalid: "step names no action"}, "Invalid step: step names no action"},
	}
	for _, tt := range tests {
		if got := tt.step.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}
