package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	generators := map[string]func(root *cobra.Command) error{
		"bash":       func(root *cobra.Command) error { return root.GenBashCompletion(os.Stdout) },
		"zsh":        func(root *cobra.Command) error { return root.GenZshCompletion(os.Stdout) },
		"fish":       func(root *cobra.Command) error { return root.GenFishCompletion(os.Stdout, true) },
		"powershell": func(root *cobra.Command) error { return root.GenPowerShellCompletionWithDesc(os.Stdout) },
	}

	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for deckplan.

Load it into the current session:

  $ source <(deckplan completion bash)
  $ deckplan completion fish | source
  PS> deckplan completion powershell | Out-String | Invoke-Expression

Or install it permanently, e.g. for bash on Linux:

  $ deckplan completion bash > /etc/bash_completion.d/deckplan

and for zsh:

  $ deckplan completion zsh > "${fpath[1]}/_deckplan"
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generators[args[0]](cmd.Root())
		},
	}
}
