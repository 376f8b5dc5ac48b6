package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mj1618/desktop-agent/internal/model"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatYAML:
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatText:
		return FormatText, nil
	}
	return "", fmt.Errorf("unsupported format: %s (use yaml, json, or text)", s)
}

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// Texter is implemented by results with a plain-text rendering.
type Texter interface {
	Text() string
}

// SnapshotResult is the output of the `snapshot` command.
type SnapshotResult struct {
	ID          string    `yaml:"id"                  json:"id"`
	App         model.App `yaml:"app"                 json:"app"`
	Elements    int       `yaml:"elements"            json:"elements"`
	Interactive int       `yaml:"interactive"         json:"interactive"`
	Truncated   bool      `yaml:"truncated,omitempty" json:"truncated,omitempty"`
	Notation    string    `yaml:"notation"            json:"notation"`
}

// NewSnapshotResult summarises snap with its rendered notation.
func NewSnapshotResult(snap *model.Snapshot, notation string) SnapshotResult {
	return SnapshotResult{
		ID:          snap.ID,
		App:         snap.App,
		Elements:    snap.Len(),
		Interactive: snap.InteractiveCount(),
		Truncated:   snap.Truncated,
		Notation:    notation,
	}
}

func (r SnapshotResult) Text() string { return r.Notation }

// AppsResult is the output of the `apps` command.
type AppsResult struct {
	Frontmost *model.App  `yaml:"frontmost,omitempty" json:"frontmost,omitempty"`
	Apps      []model.App `yaml:"apps"                json:"apps"`
}

func (r AppsResult) Text() string {
	var b strings.Builder
	for _, app := range r.Apps {
		mark := " "
		if r.Frontmost != nil && r.Frontmost.PID == app.PID {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s %6d  %-28s %s\n", mark, app.PID, app.Name, app.BundleID)
	}
	return b.String()
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, OutputFormat, v)
}

// Fprint serializes v to w. The text format falls back to YAML for values
// without a Text method.
func Fprint(w io.Writer, f Format, v interface{}) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, v)
	case FormatYAML:
		return WriteYAML(w, v)
	case FormatText:
		t, ok := v.(Texter)
		if !ok {
			return WriteYAML(w, v)
		}
		s := t.Text()
		if !strings.HasSuffix(s, "\n") {
			s += "\n"
		}
		_, err := io.WriteString(w, s)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", f)
	}
}

// WriteJSON serializes v to w as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// WriteYAML serializes v to w as YAML.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// YAML returns v as a YAML document, for transports that carry text.
func YAML(v interface{}) (string, error) {
	var b strings.Builder
	if err := WriteYAML(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}
