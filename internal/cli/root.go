package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aryankumar/sortpool/internal/config"
	"github.com/aryankumar/sortpool/internal/output"
	"github.com/aryankumar/sortpool/pkg/version"
)

// flagBindings maps config keys to the flags that override them.
// Flags missing from the executing command are skipped.
var flagBindings = []struct {
	key  string
	flag string
}{
	{"output.format", "output"},
	{"output.noColor", "no-color"},
	{"sort.workers", "workers"},
	{"sort.chunkSize", "chunk-size"},
	{"bench.chunkSize", "chunk-size"},
	{"bench.dataSize", "size"},
	{"bench.seed", "seed"},
}

// app holds the state shared by every command of one invocation
type app struct {
	cfgFile string
	verbose bool

	manager *config.Manager
	config  *config.Config
	logger  *slog.Logger
}

// Execute runs the root command with the provided context
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "sortpool",
		Short: "Sortpool - parallel merge sort on a worker pool",
		Long: `Sortpool sorts integers with a parallel merge sort running on a fixed-size
worker pool, and benchmarks how the sort scales with the number of workers.`,
		Version:       version.Get().Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.sortpool.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output with debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().IntP("workers", "w", 0, "number of pool workers (0 means one per CPU)")
	rootCmd.PersistentFlags().Int("chunk-size", 0, "elements sorted by a single job (default from config, 10000)")

	rootCmd.AddCommand(newSortCmd(a))
	rootCmd.AddCommand(newBenchCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := registerFlagCompletions(rootCmd); err != nil {
		panic(fmt.Sprintf("register flag completions: %v", err))
	}

	return rootCmd
}

// initConfig loads and validates configuration, then sets up logging
func (a *app) initConfig(cmd *cobra.Command) error {
	a.manager = config.NewManager(a.cfgFile)

	for _, b := range flagBindings {
		flag := cmd.Flags().Lookup(b.flag)
		if flag == nil {
			continue
		}
		if err := a.manager.BindFlag(b.key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", b.flag, err)
		}
	}

	cfg, err := a.manager.Load()
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	a.config = cfg

	a.setupLogging(cmd.ErrOrStderr())

	return nil
}

// setupLogging configures structured logging with slog
func (a *app) setupLogging(w io.Writer) {
	logLevel := slog.LevelInfo
	if a.verbose {
		logLevel = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if a.config != nil && a.config.Output.NoColor {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	a.logger = slog.New(handler)
	slog.SetDefault(a.logger)

	if a.verbose {
		a.logger.Debug("verbose logging enabled")
		if path := a.manager.ConfigPath(); path != "" {
			a.logger.Debug("loaded configuration", "file", path)
		}
	}
}

// formatter returns the formatter selected by configuration and flags
func (a *app) formatter(opts ...output.Option) (output.Formatter, error) {
	format, err := output.ParseFormat(a.config.Output.Format)
	if err != nil {
		return nil, err
	}

	opts = append([]output.Option{output.WithNoColor(a.config.Output.NoColor)}, opts...)
	return output.NewFormatter(format, opts...), nil
}
