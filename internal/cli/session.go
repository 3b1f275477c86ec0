package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aquamarine5/qqbook-cli/internal/config"
	"github.com/aquamarine5/qqbook-cli/internal/logging"
	"github.com/aquamarine5/qqbook-cli/internal/operations"
	"github.com/aquamarine5/qqbook-cli/internal/paths"
)

var errCancelled = fmt.Errorf("operation cancelled by user: %w", operations.ErrCancelled)

// session carries what every command needs: the start directory, the
// loaded config and the report options.
type session struct {
	resolver *paths.Resolver
	cfg      *config.Config
	opts     *ReportOptions
	logger   *zap.Logger
	cleanup  func()
	closed   bool
}

// newSession captures the start directory and loads the config. Exporter
// and log paths in the returned config are absolute.
func newSession(flags *RootFlags) (*session, error) {
	opts, err := NewReportOptions(flags)
	if err != nil {
		return nil, fmt.Errorf("invalid report options: %w", err)
	}

	resolver, err := paths.NewResolverFromCwd()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	cfg.Root = resolver.Resolve(cfg.Root)
	cfg.RuntimeBinary = resolver.ResolveCommand(cfg.RuntimeBinary)
	if flags.LogDir != "" {
		cfg.Logging.Dir = flags.LogDir
	}
	cfg.Logging.Dir = resolver.Resolve(cfg.Logging.Dir)

	return &session{
		resolver: resolver,
		cfg:      cfg,
		opts:     opts,
		logger:   zap.NewNop(),
		cleanup:  func() {},
	}, nil
}

// startLogging opens the log file and the console sink. verbose lowers the
// console threshold.
func (s *session) startLogging(cmd *cobra.Command, verbose bool) error {
	logger, cleanup, err := logging.New(logging.Options{
		Dir:     s.cfg.Logging.Dir,
		File:    config.DefaultLogFile,
		Level:   s.cfg.Level,
		Verbose: verbose,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	s.logger = logger
	s.cleanup = cleanup
	return nil
}

// close flushes and closes the log sinks. It is safe to call more than once.
func (s *session) close() {
	if s.closed {
		return
	}
	s.closed = true
	s.cleanup()
	s.logger = zap.NewNop()
}

// exit closes the session before leaving with code, since deferred calls do
// not run after os.Exit.
func (s *session) exit(code int) {
	s.close()
	osExit(code)
}

// checkEnvironment runs the environment check and prints the report when it
// fails, or always when report is set. An interrupt during the check is
// returned as ErrCancelled instead of a failed report.
func (s *session) checkEnvironment(cmd *cobra.Command, report bool) (bool, error) {
	checker := operations.NewEnvironmentChecker(cmd.Context(), s.cfg.Exporter, s.logger)
	r := checker.Inspect()
	if cmd.Context().Err() != nil {
		s.logger.Warn("environment check interrupted")
		return false, errCancelled
	}
	if report || !r.OK {
		if err := WriteEnvironmentReport(cmd.OutOrStdout(), r, s.opts); err != nil {
			return false, fmt.Errorf("failed to write report: %w", err)
		}
	}
	return r.OK, nil
}
