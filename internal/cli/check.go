package cli

import (
	"github.com/spf13/cobra"
)

func newCheckCmd(rootFlags *RootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the runtime and the exporter are installed",
		Long: `Run the environment check without exporting anything.

The check verifies, in order, that the runtime answers '--version', that the
exporter script exists and that the exporter manifest exists. Nothing is
created or modified. Exits 1 when any check fails.`,
		Example: `  qqbook check
  qqbook check --format json
  QQBOOK_EXPORTER_ROOT=/opt/QQBookExporter qqbook check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, rootFlags)
		},
	}
}

func runCheck(cmd *cobra.Command, rootFlags *RootFlags) error {
	s, err := newSession(rootFlags)
	if err != nil {
		return err
	}
	if err := s.startLogging(cmd, rootFlags.Verbose); err != nil {
		return err
	}
	defer s.close()

	ok, err := s.checkEnvironment(cmd, true)
	if err != nil {
		return err
	}
	if !ok {
		s.exit(1)
	}
	return nil
}
