package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/mj1618/desktop-agent/internal/executor"
	"github.com/mj1618/desktop-agent/internal/model"
	"gopkg.in/yaml.v3"
)

var safari = model.App{PID: 1234, Name: "Safari", BundleID: "com.apple.Safari"}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"JSON", FormatJSON, false},
		{"text", FormatText, false},
		{"agent", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestPrint_YAMLToStdout(t *testing.T) {
	result := executor.Result{Action: "click_element", Kind: executor.KindElementNotFound, Error: "no element with ID=9"}

	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := Print(result)
	w.Close()
	os.Stdout = old

	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	buf.ReadFrom(r)
	out := buf.String()

	if bytes.Count([]byte(out), []byte("\n")) <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", out)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if m["ok"] != false || m["kind"] != "element_not_found" {
		t.Errorf("decoded = %v", m)
	}
	if _, ok := m["detail"]; ok {
		t.Error("empty detail should be omitted")
	}
}

func TestFprint_JSON(t *testing.T) {
	var buf bytes.Buffer
	res := AppsResult{Frontmost: &safari, Apps: []model.App{safari}}
	if err := Fprint(&buf, FormatJSON, res); err != nil {
		t.Fatal(err)
	}
	var decoded AppsResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Apps) != 1 || decoded.Apps[0].BundleID != "com.apple.Safari" {
		t.Errorf("decoded = %+v", decoded)
	}
	if !strings.Contains(buf.String(), `"bundle_id": "com.apple.Safari"`) {
		t.Errorf("unexpected keys:\n%s", buf.String())
	}
}

func TestFprint_Text(t *testing.T) {
	snap := model.NewSnapshot(safari)
	res := NewSnapshotResult(snap, "App: Safari (com.apple.Safari)\nwindow")

	var buf bytes.Buffer
	if err := Fprint(&buf, FormatText, res); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "App: Safari (com.apple.Safari)\nwindow\n" {
		t.Errorf("text = %q", buf.String())
	}

	buf.Reset()
	if err := Fprint(&buf, FormatText, executor.Result{OK: true, Action: "wait"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "action: wait") {
		t.Errorf("values without Text should fall back to YAML, got %q", buf.String())
	}
}

func TestAppsResult_Text(t *testing.T) {
	finder := model.App{PID: 300, Name: "Finder", BundleID: "com.apple.finder"}
	res := AppsResult{Frontmost: &safari, Apps: []model.App{finder, safari}}
	lines := strings.Split(strings.TrimSuffix(res.Text(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "*") || strings.HasPrefix(lines[0], "*") {
		t.Errorf("frontmost marker misplaced:\n%s", res.Text())
	}
}

func TestYAML(t *testing.T) {
	s, err := YAML(executor.Result{OK: true, Action: "launch_app", Detail: "com.apple.Safari (started)"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s, "ok: true") || !strings.Contains(s, "detail: com.apple.Safari (started)") {
		t.Errorf("yaml = %s", s)
	}
}

func TestFprint_UnknownFormat(t *testing.T) {
	if err := Fprint(&bytes.Buffer{}, Format("xml"), nil); err == nil {
		t.Error("expected error")
	}
}
