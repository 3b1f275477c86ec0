package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(rootFlags *RootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the settings qqbook would use, after applying defaults, the config
file and QQBOOK_* environment variables. Paths are shown resolved against the
current directory.`,
		Example: `  qqbook config
  qqbook config --config ./qqbook.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootFlags)
			if err != nil {
				return err
			}
			content := s.opts.Formatter.FormatSettings(s.cfg.Settings(), s.cfg.File)
			if err := WriteOutput(cmd.OutOrStdout(), content); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			return nil
		},
	}
}
