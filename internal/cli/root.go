package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
)

// osExit is a copy of os.Exit that can be mocked in tests
var osExit = os.Exit

// Version is set at build time with -ldflags "-X ...cli.Version=..."
var Version = "dev"

// RootFlags contains global flags shared across all commands
type RootFlags struct {
	Format     string
	Progress   string
	Verbose    bool
	Color      bool
	ConfigFile string
	LogDir     string

	// Export flags, root command only
	Ignore []string
	Output string
}

// NewRootCmd creates the root command for the CLI
func NewRootCmd() *cobra.Command {
	flags := &RootFlags{}

	cmd := &cobra.Command{
		Use:   "qqbook [book_id]",
		Short: "Export a QQ Book title with the QQBookExporter script",
		Long: `qqbook - QQ Book export front-end

Checks that Node.js and the QQBookExporter installation are usable, then runs
the exporter for one book. Relative paths are resolved against the directory
qqbook was started from.

  - Run with a numeric book id to export it (e.g. 'qqbook 123456').
  - Run without arguments on a terminal to fill in an interactive form.
  - Use 'qqbook check' to verify the environment without exporting.

Output layout:
  out/<book_id>/            default output directory
  out/<book_id>/...         files written by the exporter
  logs/qqbook.log           JSON log of every run

Troubleshooting:
  - "runtime not available": install Node.js or set runtime_binary
  - "exporter script not found": set exporter_root to the QQBookExporter directory
  - "exporter manifest not found": run the installer in exporter_root`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		Example: `  # Export a book into ./out/123456
  qqbook 123456

  # Skip chapters 1, 2 and 3
  qqbook 123456 -i 1,2,3

  # Custom output directory
  qqbook 123456 -o ./books/mybook

  # Machine readable result
  qqbook 123456 --format json --progress none

  # Interactive form
  qqbook

  # Environment check only
  qqbook check`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var bookID string
			if len(args) == 1 {
				bookID = args[0]
			}
			return runExport(c, bookID, flags)
		},
	}
	cmd.SetVersionTemplate(versionTemplate())

	// Global flags available to all commands
	cmd.PersistentFlags().StringVarP(&flags.Format, "format", "f", "text", "Output format: text, json")
	cmd.PersistentFlags().StringVar(&flags.Progress, "progress", "auto", "Progress display: auto, simple, none")
	cmd.PersistentFlags().BoolVar(&flags.Verbose, "verbose", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVar(&flags.Color, "color", true, "Enable colorized output")
	cmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Config file (default: qqbook.yaml in . or $HOME/.config/qqbook)")
	cmd.PersistentFlags().StringVar(&flags.LogDir, "log-dir", "", "Directory for qqbook.log (overrides log_dir)")

	cmd.Flags().StringSliceVarP(&flags.Ignore, "ignore", "i", nil, "Chapter ids to skip, comma separated or repeated")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output directory (default: out/<book_id>)")

	// Add subcommands
	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newConfigCmd(flags))
	cmd.AddCommand(NewCompletionCmd(cmd))
	registerFlagCompletions(cmd)

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	return cmd
}

func versionTemplate() string {
	return fmt.Sprintf("qqbook {{.Version}}\n  go:       %s\n  platform: %s/%s\n  encoding: utf-8\n",
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Execute runs the CLI command. SIGINT and SIGTERM cancel the running export.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
