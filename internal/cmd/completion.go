package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCmd generates shell completions
var completionCmd = &cobra.Command{
	Use:   "completion [shell]",
	Short: "Generate shell completions",
	Long: `Generate shell completion scripts for various shells.

The completion script must be sourced in your shell's configuration file.

Bash:
  Add the following to ~/.bashrc:
    source <(mailout completion bash)

Zsh:
  Add the following to ~/.zshrc:
    source <(mailout completion zsh)

Fish:
  Add the following to ~/.config/fish/config.fish:
    mailout completion fish | source

PowerShell:
  Add the following to your PowerShell profile:
    mailout completion powershell | Out-String | Invoke-Expression
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

func init() {
	rootCmd.AddCommand(completionCmd)
}
