package operations

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBookID is returned for book ids that are empty or contain
	// anything other than decimal digits.
	ErrInvalidBookID = errors.New("invalid book id")

	// ErrCancelled marks an export stopped by the user while waiting on the
	// exporter.
	ErrCancelled = errors.New("interrupted")
)

// EnvironmentReason identifies which precondition failed.
type EnvironmentReason int

const (
	ReasonRuntimeUnavailable EnvironmentReason = iota
	ReasonEntryPointMissing
	ReasonManifestMissing
)

// EnvironmentError reports a missing runtime or exporter file.
type EnvironmentError struct {
	Reason EnvironmentReason
	Path   string
	Err    error
}

func (e *EnvironmentError) Error() string {
	switch e.Reason {
	case ReasonRuntimeUnavailable:
		return fmt.Sprintf("runtime not available: %s", e.Path)
	case ReasonEntryPointMissing:
		return fmt.Sprintf("exporter script not found: %s", e.Path)
	case ReasonManifestMissing:
		return fmt.Sprintf("exporter manifest not found: %s", e.Path)
	default:
		return fmt.Sprintf("environment check failed: %s", e.Path)
	}
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// SubprocessError carries the exporter's exit code. ExitCode is -1 when the
// process could not be started or was killed by a signal.
type SubprocessError struct {
	ExitCode int
	Err      error
}

func (e *SubprocessError) Error() string {
	return fmt.Sprintf("process exit code %d: %v", e.ExitCode, e.Err)
}

func (e *SubprocessError) Unwrap() error {
	return e.Err
}
