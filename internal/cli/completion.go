package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var shells = []string{"bash", "zsh", "fish", "powershell"}

var generators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// NewCompletionCmd returns the shell completion command for rootCmd.
func NewCompletionCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate completion script",
		Long: `To load completions:

Bash:

  $ source <(qqbook completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ qqbook completion bash > /etc/bash_completion.d/qqbook
  # macOS:
  $ qqbook completion bash > /usr/local/etc/bash_completion.d/qqbook

Zsh:

  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ qqbook completion zsh > "${fpath[1]}/_qqbook"

  # You will need to start a new shell for this setup to take effect.

Fish:

  $ qqbook completion fish | source

  # To load completions for each session, execute once:
  $ qqbook completion fish > ~/.config/fish/completions/qqbook.fish

PowerShell:

  PS> qqbook completion powershell | Out-String | Invoke-Expression

  # To load completions for each session, execute once:
  PS> qqbook completion powershell > qqbook.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, ok := generators[args[0]]
			if !ok {
				return fmt.Errorf("unsupported shell: %s (valid: %s)", args[0], strings.Join(shells, ", "))
			}
			return gen(rootCmd, cmd.OutOrStdout())
		},
	}
}

// registerFlagCompletions offers the fixed values of enum flags.
func registerFlagCompletions(cmd *cobra.Command) {
	fixed := map[string][]string{
		"format":   {"text", "json"},
		"progress": {string(ProgressAuto), string(ProgressSimple), string(ProgressNone)},
	}
	for name, values := range fixed {
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
	_ = cmd.MarkPersistentFlagFilename("config", "yaml", "yml", "toml", "json")
	_ = cmd.MarkPersistentFlagDirname("log-dir")
	_ = cmd.MarkFlagDirname("output")
}
