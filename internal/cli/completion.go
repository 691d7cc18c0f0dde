package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts via cobra.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Write a completion script for the given shell to stdout.

Load it for the current session:

  $ source <(posetrank completion bash)
  $ posetrank completion fish | source

Or install it permanently:

  $ posetrank completion bash > /etc/bash_completion.d/posetrank
  $ posetrank completion zsh > "${fpath[1]}/_posetrank"
  $ posetrank completion fish > ~/.config/fish/completions/posetrank.fish

For zsh, completion must be enabled first ("autoload -U compinit; compinit"
in ~/.zshrc). For PowerShell, pipe through Invoke-Expression or source the
script from your profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
