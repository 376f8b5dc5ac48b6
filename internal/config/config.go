// Package config loads desktop-agent settings. Values are layered: built-in
// defaults, then a YAML file, then a .env file in the working directory, then
// DESKTOP_AGENT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/mj1618/desktop-agent/internal/executor"
	"github.com/mj1618/desktop-agent/internal/logging"
	"github.com/mj1618/desktop-agent/internal/platform"
	"github.com/mj1618/desktop-agent/internal/session"
	"github.com/mj1618/desktop-agent/internal/walker"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvMaxElements = "DESKTOP_AGENT_MAX_ELEMENTS"
	EnvMaxChildren = "DESKTOP_AGENT_MAX_CHILDREN"
	EnvMaxDepth    = "DESKTOP_AGENT_MAX_DEPTH"
	EnvLogLevel    = "DESKTOP_AGENT_LOG_LEVEL"
	EnvScreen      = "DESKTOP_AGENT_SCREEN"
)

// Config is the full settings tree.
type Config struct {
	Walk     walker.Limits `yaml:"walk"`
	Policy   walker.Policy `yaml:"policy"`
	Timing   Timing        `yaml:"timing"`
	LogLevel string        `yaml:"log_level"`
	// Screen pins the reference display frame as "x,y,w,h" instead of asking
	// the platform.
	Screen string `yaml:"screen"`
	Server Server `yaml:"server"`
}

// Timing holds the executor delays in milliseconds.
type Timing struct {
	LaunchWaitRunningMs int `yaml:"launch_wait_running_ms"`
	LaunchWaitStartedMs int `yaml:"launch_wait_started_ms"`
	ClickSettleMs       int `yaml:"click_settle_ms"`
	KeystrokeDelayMs    int `yaml:"keystroke_delay_ms"`
}

// Server configures the MCP server.
type Server struct {
	Transport string `yaml:"transport"`
	Port      int    `yaml:"port"`
}

// Default returns the built-in settings.
func Default() *Config {
	t := executor.DefaultTiming()
	return &Config{
		Walk:   walker.DefaultLimits(),
		Policy: walker.DefaultPolicy(),
		Timing: Timing{
			LaunchWaitRunningMs: int(t.LaunchWaitRunning / time.Millisecond),
			LaunchWaitStartedMs: int(t.LaunchWaitStarted / time.Millisecond),
			ClickSettleMs:       int(t.ClickSettle / time.Millisecond),
			KeystrokeDelayMs:    int(t.KeystrokeDelay / time.Millisecond),
		},
		LogLevel: "info",
		Server:   Server{Transport: "stdio", Port: 8080},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/desktop-agent/config.yaml, falling back
// to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "desktop-agent", "config.yaml")
}

// Load builds the configuration. An explicit path must exist; the default
// path is used only when present.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	logging.Debug("loaded config", "path", path)
	return nil
}

func (c *Config) applyEnv() error {
	ints := []struct {
		name string
		dst  *int
	}{
		{EnvMaxElements, &c.Walk.MaxElements},
		{EnvMaxChildren, &c.Walk.MaxChildrenPerNode},
		{EnvMaxDepth, &c.Walk.MaxDepth},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		*e.dst = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvScreen); v != "" {
		c.Screen = v
	}
	return nil
}

// Validate rejects unusable settings.
func (c *Config) Validate() error {
	if c.Walk.MaxElements <= 0 {
		return fmt.Errorf("walk.max_elements must be positive, got %d", c.Walk.MaxElements)
	}
	if c.Walk.MaxChildrenPerNode <= 0 {
		return fmt.Errorf("walk.max_children_per_node must be positive, got %d", c.Walk.MaxChildrenPerNode)
	}
	if c.Walk.MaxDepth < 0 {
		return fmt.Errorf("walk.max_depth must not be negative, got %d", c.Walk.MaxDepth)
	}
	for name, ms := range map[string]int{
		"launch_wait_running_ms": c.Timing.LaunchWaitRunningMs,
		"launch_wait_started_ms": c.Timing.LaunchWaitStartedMs,
		"click_settle_ms":        c.Timing.ClickSettleMs,
		"keystroke_delay_ms":     c.Timing.KeystrokeDelayMs,
	} {
		if ms < 0 {
			return fmt.Errorf("timing.%s must not be negative, got %d", name, ms)
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Screen != "" {
		if _, err := platform.ParseRect(c.Screen); err != nil {
			return fmt.Errorf("screen: %w", err)
		}
	}
	switch c.Server.Transport {
	case "", "stdio", "streamable-http":
	default:
		return fmt.Errorf("server.transport %q: use stdio or streamable-http", c.Server.Transport)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	return nil
}

// ExecutorTiming converts the millisecond settings.
func (c *Config) ExecutorTiming() executor.Timing {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	return executor.Timing{
		LaunchWaitRunning: ms(c.Timing.LaunchWaitRunningMs),
		LaunchWaitStarted: ms(c.Timing.LaunchWaitStartedMs),
		ClickSettle:       ms(c.Timing.ClickSettleMs),
		KeystrokeDelay:    ms(c.Timing.KeystrokeDelayMs),
	}
}

// SessionOptions returns the session settings.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		Limits: c.Walk,
		Policy: c.Policy,
		Timing: c.ExecutorTiming(),
	}
}

// Apply pins the provider's screen when Screen is set.
func (c *Config) Apply(p *platform.Provider) error {
	if c.Screen == "" {
		return nil
	}
	r, err := platform.ParseRect(c.Screen)
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	p.Screen = platform.StaticScreen(r)
	return nil
}
