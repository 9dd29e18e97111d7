package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aryankumar/sortpool/internal/output"
	"github.com/aryankumar/sortpool/pkg/version"
)

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Display detailed version information for the sortpool CLI",
		Args:  cobra.NoArgs,
		// Version must work even with a broken config file
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd)
		},
	}

	return cmd
}

func runVersion(cmd *cobra.Command) error {
	info := version.Get()
	outputFormat, _ := cmd.Flags().GetString("output")
	w := cmd.OutOrStdout()

	switch outputFormat {
	case "json":
		return output.NewJSONFormatter(nil).Format(w, info)
	case "yaml":
		return output.NewYAMLFormatter(nil).Format(w, info)
	case "table":
		return outputTable(w, info)
	default:
		fmt.Fprintln(w, info.String())
		return nil
	}
}

func outputTable(out io.Writer, info version.Info) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPONENT\tVALUE")
	fmt.Fprintf(w, "Version\t%s\n", info.Version)
	fmt.Fprintf(w, "Commit\t%s\n", info.Commit)
	fmt.Fprintf(w, "Build Time\t%s\n", info.BuildTime)
	fmt.Fprintf(w, "Go Version\t%s\n", info.GoVersion)
	fmt.Fprintf(w, "Platform\t%s\n", info.Platform)
	return w.Flush()
}
