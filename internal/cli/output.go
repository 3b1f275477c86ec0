package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/aquamarine5/qqbook-cli/internal/operations"
)

// OutputFormat represents the type of output format
type OutputFormat int

const (
	FormatText OutputFormat = iota
	FormatJSON
)

// ParseFormat converts a string to OutputFormat
func ParseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("invalid format: %s (valid: text, json)", s)
	}
}

// Formatter defines the interface for output formatters
type Formatter interface {
	FormatPlan(req operations.ExportRequest, outputDir string) string
	FormatResult(result operations.ExportResult) string
	FormatEnvironment(report *operations.EnvironmentReport) string
	FormatSettings(settings map[string]string, file string) string
}

// NewFormatter creates a formatter based on format and options
func NewFormatter(format OutputFormat, colorEnabled bool) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	default:
		return &TextFormatter{ColorEnabled: colorEnabled}
	}
}

// TextFormatter formats output as human-readable text
type TextFormatter struct {
	ColorEnabled bool
}

// FormatPlan describes the export that is about to run.
func (f *TextFormatter) FormatPlan(req operations.ExportRequest, outputDir string) string {
	var b strings.Builder

	b.WriteString(f.header("Export"))
	b.WriteString(f.field("Book ID", f.highlight(req.BookID)))
	b.WriteString(f.field("Output", outputDir))
	if len(req.IgnoreChapters) > 0 {
		b.WriteString(f.field("Ignoring", f.warning(strings.Join(req.IgnoreChapters, ","))))
	}
	b.WriteString("\n")

	return b.String()
}

func (f *TextFormatter) FormatResult(result operations.ExportResult) string {
	var b strings.Builder

	switch {
	case result.Success:
		b.WriteString(f.success("✓ " + result.Message))
	case result.State == operations.StateCancelled:
		b.WriteString(f.warning("⚠ " + result.Message))
	default:
		b.WriteString(f.error("✗ " + result.Message))
		if result.Error != "" && result.Error != result.Message {
			b.WriteString("\n")
			b.WriteString(f.muted("  " + result.Error))
		}
	}
	b.WriteString("\n")

	if result.Duration > 0 {
		b.WriteString(f.muted(fmt.Sprintf("  took %s", result.Duration.Round(time.Millisecond))))
		b.WriteString("\n")
	}

	return b.String()
}

func (f *TextFormatter) FormatEnvironment(report *operations.EnvironmentReport) string {
	var b strings.Builder

	b.WriteString(f.header("Environment"))
	runtime := report.Runtime
	if report.RuntimeVersion != "" {
		runtime += " (" + report.RuntimeVersion + ")"
	}
	b.WriteString(f.field("Runtime", runtime))
	b.WriteString(f.field("Exporter", report.EntryPoint))
	b.WriteString(f.field("Manifest", report.Manifest))
	b.WriteString("\n")

	if report.OK {
		b.WriteString(f.success("✓ " + report.Message))
	} else {
		b.WriteString(f.error("✗ environment check failed: " + report.Message))
	}
	b.WriteString("\n")

	return b.String()
}

func (f *TextFormatter) FormatSettings(settings map[string]string, file string) string {
	var b strings.Builder

	b.WriteString(f.header("Configuration"))
	if file == "" {
		file = "(defaults and environment)"
	}
	b.WriteString(f.field("Source", file))
	b.WriteString("\n")

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(f.field(k, settings[k]))
	}

	return b.String()
}

func (f *TextFormatter) header(s string) string {
	if f.ColorEnabled {
		return color.New(color.Bold, color.FgCyan).Sprintf("═══ %s ═══\n", s)
	}
	return fmt.Sprintf("=== %s ===\n", s)
}

func (f *TextFormatter) field(key, value string) string {
	if f.ColorEnabled {
		return fmt.Sprintf("  %s: %s\n", color.CyanString(key), value)
	}
	return fmt.Sprintf("  %s: %s\n", key, value)
}

func (f *TextFormatter) highlight(s string) string {
	if f.ColorEnabled {
		return color.New(color.Bold).Sprint(s)
	}
	return s
}

func (f *TextFormatter) success(s string) string {
	if f.ColorEnabled {
		return color.GreenString(s)
	}
	return s
}

func (f *TextFormatter) warning(s string) string {
	if f.ColorEnabled {
		return color.YellowString(s)
	}
	return s
}

func (f *TextFormatter) error(s string) string {
	if f.ColorEnabled {
		return color.RedString(s)
	}
	return s
}

func (f *TextFormatter) muted(s string) string {
	if f.ColorEnabled {
		return color.New(color.Faint).Sprint(s)
	}
	return s
}

// JSONFormatter formats output as JSON
type JSONFormatter struct{}

// FormatPlan returns nothing; JSON output carries only the final result so
// stdout stays a single document.
func (f *JSONFormatter) FormatPlan(operations.ExportRequest, string) string {
	return ""
}

func (f *JSONFormatter) FormatResult(result operations.ExportResult) string {
	return marshal(result)
}

func (f *JSONFormatter) FormatEnvironment(report *operations.EnvironmentReport) string {
	return marshal(report)
}

func (f *JSONFormatter) FormatSettings(settings map[string]string, file string) string {
	return marshal(struct {
		File     string            `json:"file,omitempty"`
		Settings map[string]string `json:"settings"`
	}{file, settings})
}

func marshal(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": "failed to marshal output: %s"}`+"\n", err)
	}
	return string(data) + "\n"
}

// WriteOutput writes content to w
func WriteOutput(w io.Writer, content string) error {
	_, err := fmt.Fprint(w, content)
	return err
}
