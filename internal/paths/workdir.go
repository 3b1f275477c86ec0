package paths

import (
	"errors"
	"fmt"
	"os"
)

// WithDir changes the process working directory to dir, runs fn and changes
// back to the previous directory. The restore runs on every exit path of fn,
// including panics; a failed restore is joined into the returned error.
//
// The working directory is process-wide state. Callers must not run WithDir
// from concurrent goroutines.
func WithDir(dir string, fn func() error) (err error) {
	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to read working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("failed to enter %s: %w", dir, err)
	}
	defer func() {
		if restoreErr := os.Chdir(prev); restoreErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to restore working directory %s: %w", prev, restoreErr))
		}
	}()

	return fn()
}
