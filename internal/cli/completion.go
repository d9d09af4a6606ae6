package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for chromabench.

Besides commands and flags, the scripts complete the values of --format,
--engine and --cache.

  $ source <(chromabench completion bash)
  $ chromabench completion zsh > "${fpath[1]}/_chromabench"
  $ chromabench completion fish > ~/.config/fish/completions/chromabench.fish
  PS> chromabench completion powershell | Out-String | Invoke-Expression
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
}

// completeValues completes a flag from a fixed set. With list set, the flag
// takes comma-separated values and only the last one is completed.
func completeValues(valid map[string]bool, list bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		prefix := ""
		if list {
			if i := strings.LastIndex(toComplete, ","); i >= 0 {
				prefix, toComplete = toComplete[:i+1], toComplete[i+1:]
			}
		}
		var out []string
		for v := range valid {
			if strings.HasPrefix(v, toComplete) {
				out = append(out, prefix+v)
			}
		}
		slices.Sort(out)
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
