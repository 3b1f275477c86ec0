package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/aquamarine5/qqbook-cli/internal/operations"
	"github.com/aquamarine5/qqbook-cli/internal/tui"
	"github.com/aquamarine5/qqbook-cli/internal/tui/models"
)

// errBookIDRequired is returned when no book id is given and no terminal is
// available to ask for one.
var errBookIDRequired = errors.New("book id is required")

// Replaced in tests.
var (
	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	promptExport    = func() (models.ExportAnswers, error) { return tui.PromptExport(os.Stdin, os.Stderr) }
)

func runExport(cmd *cobra.Command, bookID string, flags *RootFlags) error {
	s, err := newSession(flags)
	if err != nil {
		return err
	}

	req, err := buildRequest(cmd, bookID, flags)
	if err != nil {
		return err
	}

	if err := s.startLogging(cmd, req.Verbose); err != nil {
		return err
	}
	defer s.close()

	ok, err := s.checkEnvironment(cmd, false)
	if err != nil {
		return err
	}
	if !ok {
		s.exit(1)
		return nil
	}

	// JSON output keeps stdout for the result document only.
	exporterOut := cmd.OutOrStdout()
	if s.opts.Format == FormatJSON {
		exporterOut = cmd.ErrOrStderr()
	}

	progress := newExportProgress(s.opts.Progress, cmd.ErrOrStderr(), s.opts.ColorEnabled)
	op := operations.NewExportOperation(cmd.Context(), s.cfg, s.resolver, s.logger).
		WithStdio(os.Stdin, exporterOut, cmd.ErrOrStderr()).
		WithStateHook(progress.OnState)

	if err := WritePlan(cmd.OutOrStdout(), req, op.OutputDir(req), s.opts); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}

	result := op.Execute(req)
	if err := WriteResult(cmd.OutOrStdout(), result, s.opts); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if !result.Success {
		s.logger.Debug("exiting with failure", zap.Stringer("state", result.State))
		s.exit(1)
	}
	return nil
}

// buildRequest assembles the export request from the arguments, asking
// interactively when the book id is missing and stdin is a terminal.
func buildRequest(cmd *cobra.Command, bookID string, flags *RootFlags) (operations.ExportRequest, error) {
	req := operations.ExportRequest{
		BookID:         bookID,
		IgnoreChapters: operations.ParseIgnoreList(strings.Join(flags.Ignore, ",")),
		OutputDir:      flags.Output,
		Verbose:        flags.Verbose,
	}
	if bookID != "" {
		return req, nil
	}

	if !stdinIsTerminal() {
		_ = cmd.Help()
		return req, errBookIDRequired
	}

	answers, err := promptExport()
	if err != nil {
		return req, err
	}
	req.BookID = answers.BookID
	if ignore := operations.ParseIgnoreList(answers.Ignore); ignore != nil {
		req.IgnoreChapters = ignore
	}
	if answers.OutputDir != "" {
		req.OutputDir = answers.OutputDir
	}
	req.Verbose = req.Verbose || answers.Verbose
	return req, nil
}
