package operations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aquamarine5/qqbook-cli/internal/config"
	"github.com/aquamarine5/qqbook-cli/internal/logging"
	"github.com/aquamarine5/qqbook-cli/internal/paths"
)

// DefaultInterruptGrace is how long the exporter gets to exit after being
// interrupted before it is killed.
const DefaultInterruptGrace = 3 * time.Second

// ExportState is a step of an export. Succeeded, Failed and Cancelled are
// terminal.
type ExportState int

const (
	StateValidating ExportState = iota
	StatePreparing
	StateInvoking
	StateSucceeded
	StateFailed
	StateCancelled
)

func (s ExportState) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StatePreparing:
		return "preparing"
	case StateInvoking:
		return "invoking"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func (s ExportState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ExportOperation runs the external exporter for one request at a time.
type ExportOperation struct {
	ctx      context.Context
	exporter config.Exporter
	subdir   string
	resolver *paths.Resolver
	logger   *zap.Logger

	stdin          io.Reader
	stdout, stderr io.Writer
	onState        func(ExportState)
	interruptGrace time.Duration
}

// NewExportOperation creates an export operation. Cancelling ctx while the
// exporter runs interrupts it and yields a cancelled result.
func NewExportOperation(ctx context.Context, cfg *config.Config, resolver *paths.Resolver, logger *zap.Logger) *ExportOperation {
	exporter := cfg.Exporter
	exporter.Root = resolver.Resolve(exporter.Root)
	exporter.RuntimeBinary = resolver.ResolveCommand(exporter.RuntimeBinary)

	return &ExportOperation{
		ctx:            ctx,
		exporter:       exporter,
		subdir:         cfg.DefaultSubdir,
		resolver:       resolver,
		logger:         logging.OrNop(logger),
		stdin:          os.Stdin,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		interruptGrace: DefaultInterruptGrace,
	}
}

// WithStateHook registers fn to be called on every state transition.
func (e *ExportOperation) WithStateHook(fn func(ExportState)) *ExportOperation {
	e.onState = fn
	return e
}

// WithStdio replaces the streams handed to the exporter.
func (e *ExportOperation) WithStdio(stdin io.Reader, stdout, stderr io.Writer) *ExportOperation {
	e.stdin, e.stdout, e.stderr = stdin, stdout, stderr
	return e
}

// WithInterruptGrace sets how long an interrupted exporter may take to exit.
func (e *ExportOperation) WithInterruptGrace(d time.Duration) *ExportOperation {
	e.interruptGrace = d
	return e
}

// OutputDir returns the absolute output directory for req.
func (e *ExportOperation) OutputDir(req ExportRequest) string {
	if req.OutputDir != "" {
		return e.resolver.Resolve(req.OutputDir)
	}
	return e.resolver.Resolve(filepath.Join(e.subdir, req.BookID))
}

// BuildCommand returns the exporter argv:
// runtime, entry point, book id, ignore spec, output directory.
func (e *ExportOperation) BuildCommand(req ExportRequest, outputDir string) []string {
	return []string{
		e.exporter.RuntimeBinary,
		e.exporter.EntryPointPath(),
		req.BookID,
		IgnoreSpec(req.IgnoreChapters),
		outputDir,
	}
}

// Execute validates req, prepares the output directory and runs the exporter
// from its installation directory. Every failure is reported in the result;
// nothing is retried.
func (e *ExportOperation) Execute(req ExportRequest) ExportResult {
	start := time.Now()
	log := e.logger.With(zap.String("run_id", uuid.NewString()), zap.String("book_id", req.BookID))

	e.transition(StateValidating)
	result := ExportResult{BookID: req.BookID, OutputDir: e.OutputDir(req), ExitCode: -1}

	if err := ValidateBookID(req.BookID); err != nil {
		log.Error("export request rejected", zap.Error(err))
		return e.finish(result.failed(StateFailed, err.Error(), err), start)
	}

	e.transition(StatePreparing)
	if err := os.MkdirAll(result.OutputDir, 0o755); err != nil {
		err = fmt.Errorf("failed to create output directory: %w", err)
		log.Error("export failed", zap.Error(err))
		return e.finish(result.failed(StateFailed, "export failed: "+err.Error(), err), start)
	}
	args := e.BuildCommand(req, result.OutputDir)
	log.Info("export started",
		zap.String("output_dir", result.OutputDir),
		zap.Strings("ignore", req.IgnoreChapters))

	e.transition(StateInvoking)
	runErr := paths.WithDir(e.exporter.Root, func() error {
		if req.Verbose {
			log.Info("running exporter", zap.Strings("args", args), zap.String("dir", e.exporter.Root))
		}
		return e.run(args)
	})

	switch {
	case runErr == nil:
		result.Success = true
		result.State = StateSucceeded
		result.ExitCode = 0
		result.Message = fmt.Sprintf("export completed, files at %s", result.OutputDir)
		log.Info("export completed", zap.String("output_dir", result.OutputDir))

	case e.ctx.Err() != nil:
		result = result.failed(StateCancelled, "operation cancelled by user", ErrCancelled)
		log.Warn("export cancelled by user")

	default:
		code := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			code = exitErr.ExitCode()
		}
		result.ExitCode = code
		result = result.failed(StateFailed,
			fmt.Sprintf("export failed: process exit code %d", code),
			&SubprocessError{ExitCode: code, Err: runErr})
		result.Error = runErr.Error()
		log.Error("export failed", zap.Int("exit_code", code), zap.Error(runErr))
	}

	return e.finish(result, start)
}

func (e *ExportOperation) run(args []string) error {
	cmd := exec.CommandContext(e.ctx, args[0], args[1:]...)
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = e.interruptGrace
	return cmd.Run()
}

func (e *ExportOperation) transition(s ExportState) {
	if e.onState != nil {
		e.onState(s)
	}
}

func (e *ExportOperation) finish(r ExportResult, start time.Time) ExportResult {
	r.Duration = time.Since(start)
	e.transition(r.State)
	return r
}
