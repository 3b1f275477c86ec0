package cli

import (
	"fmt"
	"io"

	"github.com/aquamarine5/qqbook-cli/internal/operations"
)

// ProgressMode controls how a running export is indicated on stderr.
type ProgressMode string

const (
	ProgressAuto   ProgressMode = "auto"
	ProgressSimple ProgressMode = "simple"
	ProgressNone   ProgressMode = "none"
)

// ParseProgressMode converts a string to ProgressMode
func ParseProgressMode(s string) (ProgressMode, error) {
	switch m := ProgressMode(s); m {
	case ProgressAuto, ProgressSimple, ProgressNone:
		return m, nil
	default:
		return ProgressAuto, fmt.Errorf("invalid progress mode: %s (valid: auto, simple, none)", s)
	}
}

// ReportOptions contains options for report generation
type ReportOptions struct {
	Format       OutputFormat
	Formatter    Formatter
	Progress     ProgressMode
	ColorEnabled bool
	Verbose      bool
}

// NewReportOptions creates report options from flags
func NewReportOptions(flags *RootFlags) (*ReportOptions, error) {
	format, err := ParseFormat(flags.Format)
	if err != nil {
		return nil, err
	}

	progress, err := ParseProgressMode(flags.Progress)
	if err != nil {
		return nil, err
	}

	// Color only makes sense for text output
	colorEnabled := flags.Color
	if format != FormatText {
		colorEnabled = false
	}

	return &ReportOptions{
		Format:       format,
		Formatter:    NewFormatter(format, colorEnabled),
		Progress:     progress,
		ColorEnabled: colorEnabled,
		Verbose:      flags.Verbose,
	}, nil
}

// WritePlan writes the pre-export summary
func WritePlan(w io.Writer, req operations.ExportRequest, outputDir string, opts *ReportOptions) error {
	return WriteOutput(w, opts.Formatter.FormatPlan(req, outputDir))
}

// WriteResult writes a formatted export result
func WriteResult(w io.Writer, result operations.ExportResult, opts *ReportOptions) error {
	return WriteOutput(w, opts.Formatter.FormatResult(result))
}

// WriteEnvironmentReport writes a formatted environment check report
func WriteEnvironmentReport(w io.Writer, report *operations.EnvironmentReport, opts *ReportOptions) error {
	if report == nil {
		return fmt.Errorf("no environment report to write")
	}
	return WriteOutput(w, opts.Formatter.FormatEnvironment(report))
}
