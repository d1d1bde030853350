package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tilefield/tilefield/pkg/config"
	"github.com/tilefield/tilefield/pkg/tiles/sink"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tilefield.

To load completions:

Bash:
  $ source <(tilefield completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ tilefield completion bash > /etc/bash_completion.d/tilefield
  # macOS:
  $ tilefield completion bash > $(brew --prefix)/etc/bash_completion.d/tilefield

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ tilefield completion zsh > "${fpath[1]}/_tilefield"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ tilefield completion fish | source

  # To load completions for each session, execute once:
  $ tilefield completion fish > ~/.config/fish/completions/tilefield.fish

PowerShell:
  PS> tilefield completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> tilefield completion powershell > tilefield.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// =============================================================================
// Dynamic Completion
// =============================================================================

// siteExtensions are the site file extensions offered for [config] arguments.
var siteExtensions = []string{"toml", "yaml", "yml", "json"}

// completeSite completes the optional [config] argument of cmd and, when set,
// the named variant flag with the variants of that file.
func completeSite(cmd *cobra.Command, variantFlag string) {
	cmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return siteExtensions, cobra.ShellCompDirectiveFilterFileExt
	}
	if variantFlag != "" {
		_ = cmd.RegisterFlagCompletionFunc(variantFlag, completeVariants)
	}
}

// completeVariants lists the variants of the site file named on the command
// line, or of tilefield.toml in the working directory.
func completeVariants(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	path := config.DefaultFile
	if len(args) > 0 {
		path = args[0]
	} else if _, err := os.Stat(path); err != nil {
		return []string{config.DefaultVariant}, cobra.ShellCompDirectiveNoFileComp
	}
	site, err := config.Load(path)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return site.Names(), cobra.ShellCompDirectiveNoFileComp
}

func completeFormats(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{sink.FormatSVG, sink.FormatJSON, sink.FormatHTML}, cobra.ShellCompDirectiveNoFileComp
}

func completeEncodings(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{config.EncodingTOML, config.EncodingYAML, config.EncodingJSON}, cobra.ShellCompDirectiveNoFileComp
}
