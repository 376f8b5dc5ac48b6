// Package logging provides the process-wide structured logger. Output goes to
// stderr so stdout stays free for command results and the MCP stdio transport.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.Mutex
	logger = newLogger(os.Stderr, log.InfoLevel)
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "desktop-agent",
	})
	l.SetLevel(level)
	return l
}

// ParseLevel converts a level name (debug, info, warn, error) to a log level.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	}
	return log.InfoLevel, fmt.Errorf("unknown log level %q (use debug, info, warn, or error)", s)
}

// Init replaces the global logger, writing to w at the given level.
func Init(w io.Writer, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	mu.Lock()
	logger = newLogger(w, lvl)
	mu.Unlock()
	return nil
}

// Logger returns the global logger.
func Logger() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func Debug(msg string, keyvals ...interface{}) { Logger().Debug(msg, keyvals...) }
func Info(msg string, keyvals ...interface{}) { Logger().Info(msg, keyvals...) }
func Warn(msg string, keyvals ...interface{}) { Logger().Warn(msg, keyvals...) }
func Error(msg string, keyvals ...interface{}) { Logger().Error(msg, keyvals...) }
