package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aryankumar/sortpool/internal/bench"
	"github.com/aryankumar/sortpool/internal/output"
)

func newBenchCmd(a *app) *cobra.Command {
	var noVerify bool
	var wide bool

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the parallel sort across worker counts",
		Long: `Generate one random input and sort it once for every worker count in
--threads, reporting the time taken and the speedup over the first run.

Every output is checked to be sorted unless --no-verify is given.`,
		Example: `  # Default benchmark: 10M elements on 1 to 64 workers
  sortpool bench

  # Small reproducible run
  sortpool bench --size 100000 --threads 1,2,4 --seed 42

  # Report as JSON
  sortpool bench -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("threads") {
				threads, err := cmd.Flags().GetIntSlice("threads")
				if err != nil {
					return err
				}
				a.config.Bench.Threads = threads
			}
			if cmd.Flags().Changed("no-verify") {
				a.config.Bench.Verify = !noVerify
			}
			return a.runBench(cmd.Context(), cmd, wide)
		},
	}

	defaults := bench.DefaultConfig()
	cmd.Flags().Int("size", defaults.DataSize, "number of random elements to sort")
	cmd.Flags().IntSlice("threads", defaults.Threads, "worker counts to measure, in order")
	cmd.Flags().Uint64("seed", 0, "seed for the random input (0 picks one)")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "skip checking that every output is sorted")
	cmd.Flags().BoolVar(&wide, "wide", false, "show milliseconds and verification columns")

	return cmd
}

func (a *app) runBench(ctx context.Context, cmd *cobra.Command, wide bool) error {
	runner, err := bench.NewRunner(a.config.Bench.ToBench(), bench.WithLogger(a.logger))
	if err != nil {
		return err
	}

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	formatter, err := a.formatter(output.WithWide(wide))
	if err != nil {
		return err
	}

	return formatter.FormatReport(cmd.OutOrStdout(), report)
}
