package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aryankumar/sortpool/internal/config"
	"github.com/aryankumar/sortpool/internal/output"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create the sortpool configuration",
	}

	cmd.AddCommand(newConfigViewCmd(a))
	cmd.AddCommand(newConfigInitCmd(a))

	return cmd
}

func newConfigViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, the config file,
SORTPOOL_* environment variables and command-line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// A config file has no table form; YAML is the default view
			format := output.FormatYAML
			if f, _ := output.ParseFormat(a.config.Output.Format); f == output.FormatJSON {
				format = output.FormatJSON
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), a.config)
		},
	}
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write the default configuration to --config, or to
$HOME/.sortpool/config.yaml when --config is not given.`,
		Args: cobra.NoArgs,
		// An existing file may be invalid; init must not load it
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.manager = config.NewManager(a.cfgFile)
			a.setupLogging(cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func (a *app) runConfigInit(cmd *cobra.Command, force bool) error {
	path, err := a.manager.ResolvePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	a.manager.SetConfig(config.Default())
	if err := a.manager.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
	return nil
}
