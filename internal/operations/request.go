package operations

import (
	"fmt"
	"strings"
	"time"
)

// IgnoreNone is passed in the ignore position when no chapters are skipped.
// The exporter requires a value there.
const IgnoreNone = "-"

// ExportRequest holds the parameters of a single export.
type ExportRequest struct {
	BookID         string
	IgnoreChapters []string
	OutputDir      string // Empty means <start dir>/<default subdir>/<book id>
	Verbose        bool
}

// ExportResult is returned from every path through ExportOperation.Execute.
// Error is set exactly when Success is false.
type ExportResult struct {
	Success   bool          `json:"success"`
	BookID    string        `json:"book_id"`
	OutputDir string        `json:"output_dir"`
	Message   string        `json:"message"`
	Error     string        `json:"error,omitempty"`
	State     ExportState   `json:"state"`
	ExitCode  int           `json:"exit_code"`
	Duration  time.Duration `json:"duration_ns"`

	// Err is the typed cause behind Error, for errors.Is / errors.As.
	Err error `json:"-"`
}

func (r ExportResult) failed(state ExportState, message string, err error) ExportResult {
	r.Success = false
	r.State = state
	r.Message = message
	r.Error = err.Error()
	r.Err = err
	return r
}

// ValidateBookID accepts non-empty strings of ASCII decimal digits.
func ValidateBookID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidBookID)
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: %s", ErrInvalidBookID, id)
		}
	}
	return nil
}

// IgnoreSpec encodes the ignored chapters for the exporter's argument list.
func IgnoreSpec(chapters []string) string {
	if len(chapters) == 0 {
		return IgnoreNone
	}
	return strings.Join(chapters, ",")
}

// ParseIgnoreList splits a comma separated chapter list, trimming blanks and
// dropping empty entries. It returns nil when nothing remains.
func ParseIgnoreList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
