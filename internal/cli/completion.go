package cli

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aryankumar/sortpool/internal/output"
)

// newCompletionCmd creates the completion command for generating shell completions
func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for sortpool.

Besides command names, the scripts complete --output with the supported
formats and --workers with worker counts suited to this machine.

Bash:
  $ source <(sortpool completion bash)

Zsh:
  $ sortpool completion zsh > "${fpath[1]}/_sortpool"

Fish:
  $ sortpool completion fish > ~/.config/fish/completions/sortpool.fish

PowerShell:
  PS> sortpool completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		// Generating a script needs no configuration
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompletion(cmd, args[0])
		},
	}

	return cmd
}

// runCompletion writes the completion script for shell
func runCompletion(cmd *cobra.Command, shell string) error {
	root := cmd.Root()
	w := cmd.OutOrStdout()

	switch shell {
	case "bash":
		return root.GenBashCompletion(w)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell type %q", shell)
	}
}

// registerFlagCompletions attaches value completion to the root's flags
func registerFlagCompletions(root *cobra.Command) error {
	if err := root.RegisterFlagCompletionFunc("output", completeOutputFormats); err != nil {
		return err
	}
	return root.RegisterFlagCompletionFunc("workers", completeWorkerCounts)
}

// completeOutputFormats suggests the formats accepted by --output
func completeOutputFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	formats := []output.Format{output.FormatTable, output.FormatJSON, output.FormatYAML}

	suggestions := make([]string, 0, len(formats))
	for _, f := range formats {
		if strings.HasPrefix(string(f), toComplete) {
			suggestions = append(suggestions, string(f))
		}
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}

// completeWorkerCounts suggests powers of two up to the CPU count, the CPU
// count itself, and 0 for one worker per CPU
func completeWorkerCounts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return workerCounts(runtime.NumCPU(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func workerCounts(cpus int, toComplete string) []string {
	counts := []int{0}
	for n := 1; n < cpus; n *= 2 {
		counts = append(counts, n)
	}
	counts = append(counts, cpus)

	suggestions := make([]string, 0, len(counts))
	for _, n := range counts {
		s := strconv.Itoa(n)
		if strings.HasPrefix(s, toComplete) {
			suggestions = append(suggestions, s)
		}
	}
	return suggestions
}
