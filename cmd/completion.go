package cmd

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for contentctl.

To load completions:

Bash:
  $ source <(contentctl completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ contentctl completion bash > /etc/bash_completion.d/contentctl
  # macOS:
  $ contentctl completion bash > $(brew --prefix)/etc/bash_completion.d/contentctl

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ contentctl completion zsh > "${fpath[1]}/_contentctl"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ contentctl completion fish | source
  # To load completions for each session, execute once:
  $ contentctl completion fish > ~/.config/fish/completions/contentctl.fish

PowerShell:
  PS> contentctl completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> contentctl completion powershell > contentctl.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(cmd.OutOrStdout(), true)
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
