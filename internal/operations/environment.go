package operations

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aquamarine5/qqbook-cli/internal/config"
	"github.com/aquamarine5/qqbook-cli/internal/logging"
)

// probeWaitDelay bounds how long Wait lingers on the version probe's output
// pipes once the probe has been killed.
const probeWaitDelay = 500 * time.Millisecond

// EnvironmentReport is the outcome of an environment check.
type EnvironmentReport struct {
	OK             bool   `json:"ok"`
	Message        string `json:"message"`
	Runtime        string `json:"runtime"`
	RuntimeVersion string `json:"runtime_version,omitempty"`
	EntryPoint     string `json:"entry_point"`
	Manifest       string `json:"manifest"`

	Err error `json:"-"`
}

// EnvironmentChecker verifies that the runtime and the exporter files are
// present. It only reads; nothing is created or modified.
type EnvironmentChecker struct {
	ctx    context.Context
	cfg    config.Exporter
	logger *zap.Logger
}

// NewEnvironmentChecker creates a checker for the given exporter settings.
func NewEnvironmentChecker(ctx context.Context, cfg config.Exporter, logger *zap.Logger) *EnvironmentChecker {
	return &EnvironmentChecker{ctx: ctx, cfg: cfg, logger: logging.OrNop(logger)}
}

// Check reports whether an export can be attempted and why not.
func (c *EnvironmentChecker) Check() (bool, string) {
	r := c.Inspect()
	return r.OK, r.Message
}

// Inspect runs all checks in order and stops at the first failure.
func (c *EnvironmentChecker) Inspect() *EnvironmentReport {
	report := &EnvironmentReport{
		Runtime:    c.cfg.RuntimeBinary,
		EntryPoint: c.cfg.EntryPointPath(),
		Manifest:   c.cfg.ManifestPath(),
	}

	version, err := c.probeRuntime()
	if err != nil {
		return c.fail(report, &EnvironmentError{Reason: ReasonRuntimeUnavailable, Path: c.cfg.RuntimeBinary, Err: err})
	}
	report.RuntimeVersion = version

	if err := fileExists(report.EntryPoint); err != nil {
		return c.fail(report, &EnvironmentError{Reason: ReasonEntryPointMissing, Path: report.EntryPoint, Err: err})
	}
	if err := fileExists(report.Manifest); err != nil {
		return c.fail(report, &EnvironmentError{Reason: ReasonManifestMissing, Path: report.Manifest, Err: err})
	}

	report.OK = true
	report.Message = "environment check passed"
	c.logger.Info("environment check passed",
		zap.String("runtime", report.Runtime),
		zap.String("runtime_version", report.RuntimeVersion),
		zap.String("entry_point", report.EntryPoint))
	return report
}

func (c *EnvironmentChecker) fail(report *EnvironmentReport, err *EnvironmentError) *EnvironmentReport {
	report.OK = false
	report.Message = err.Error()
	report.Err = err
	c.logger.Warn("environment check failed", zap.Error(err))
	return report
}

func (c *EnvironmentChecker) probeRuntime() (string, error) {
	ctx, cancel := context.WithTimeout(c.ctx, c.cfg.CheckTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.cfg.RuntimeBinary, "--version")
	cmd.WaitDelay = probeWaitDelay
	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", errors.Join(err, ctxErr)
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func fileExists(path string) error {
	_, err := os.Stat(path)
	return err
}
