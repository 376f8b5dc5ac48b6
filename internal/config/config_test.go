package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mj1618/desktop-agent/internal/model"
	"github.com/mj1618/desktop-agent/internal/platform"
)

// isolate points the default config path and the working directory at empty
// temp dirs and clears the DESKTOP_AGENT_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, name := range []string{EnvMaxElements, EnvMaxChildren, EnvMaxDepth, EnvLogLevel, EnvScreen} {
		t.Setenv(name, "")
	}
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Walk.MaxElements != 500 || cfg.Walk.MaxChildrenPerNode != 100 || cfg.Walk.MaxDepth != 0 {
		t.Errorf("walk = %+v", cfg.Walk)
	}
	tm := cfg.ExecutorTiming()
	if tm.LaunchWaitRunning != 500*time.Millisecond || tm.LaunchWaitStarted != 3*time.Second ||
		tm.ClickSettle != 300*time.Millisecond || tm.KeystrokeDelay != 50*time.Millisecond {
		t.Errorf("timing = %+v", tm)
	}
	if cfg.Server.Transport != "stdio" || cfg.LogLevel != "info" {
		t.Errorf("server = %+v, log level = %q", cfg.Server, cfg.LogLevel)
	}
}

func TestLoad_DefaultPathFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", "desktop-agent", "config.yaml"), `
walk:
  max_elements: 200
policy:
  excluded_roles: [AXMenuItem, AXMenuBarItem, AXMenu]
timing:
  click_settle_ms: 100
`)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Walk.MaxElements != 200 || cfg.Walk.MaxChildrenPerNode != 100 {
		t.Errorf("file should override only the keys it sets: %+v", cfg.Walk)
	}
	if len(cfg.Policy.ExcludedRoles) != 3 || len(cfg.Policy.InteractiveRoles) != 3 {
		t.Errorf("policy = %+v", cfg.Policy)
	}
	if cfg.Timing.ClickSettleMs != 100 || cfg.Timing.KeystrokeDelayMs != 50 {
		t.Errorf("timing = %+v", cfg.Timing)
	}
	if opts := cfg.SessionOptions(); opts.Limits.MaxElements != 200 || opts.Timing.ClickSettle != 100*time.Millisecond {
		t.Errorf("session options = %+v", opts)
	}
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing explicit config")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "agent.yaml")
	writeFile(t, path, "walk:\n  max_elements: 200\nlog_level: warn\n")
	t.Setenv(EnvMaxElements, "50")
	t.Setenv(EnvMaxDepth, "6")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Walk.MaxElements != 50 || cfg.Walk.MaxDepth != 6 || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	os.Unsetenv(EnvMaxChildren)
	t.Cleanup(func() { os.Unsetenv(EnvMaxChildren) })
	writeFile(t, filepath.Join(dir, ".env"), EnvMaxChildren+"=25\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Walk.MaxChildrenPerNode != 25 {
		t.Errorf("max children = %d, want 25 from .env", cfg.Walk.MaxChildrenPerNode)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
		want string
	}{
		{"bad yaml", "walk: [", nil, "parse config"},
		{"zero budget", "walk:\n  max_elements: 0\n", nil, "max_elements"},
		{"negative children", "walk:\n  max_children_per_node: -1\n", nil, "max_children_per_node"},
		{"negative delay", "timing:\n  keystroke_delay_ms: -5\n", nil, "keystroke_delay_ms"},
		{"bad level", "log_level: loud\n", nil, "log level"},
		{"bad screen", "screen: 0,0,0,900\n", nil, "screen"},
		{"bad transport", "server:\n  transport: websocket\n", nil, "transport"},
		{"bad env int", "", map[string]string{EnvMaxElements: "lots"}, EnvMaxElements},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "agent.yaml")
			writeFile(t, path, tt.file)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
}

type liveScreen struct{}

func (liveScreen) Bounds() (model.Rect, error) { return model.Rect{Width: 100, Height: 100}, nil }

func TestApply_PinsScreen(t *testing.T) {
	p := &platform.Provider{Screen: liveScreen{}}
	cfg := Default()
	if err := cfg.Apply(p); err != nil {
		t.Fatal(err)
	}
	if _, ok := p.Screen.(liveScreen); !ok {
		t.Error("screen should be untouched without a pin")
	}

	cfg.Screen = "0,0,2560,1440"
	if err := cfg.Apply(p); err != nil {
		t.Fatal(err)
	}
	b, err := p.Screen.Bounds()
	if err != nil || b.Width != 2560 || b.Height != 1440 {
		t.Errorf("bounds = %+v, %v", b, err)
	}
}
