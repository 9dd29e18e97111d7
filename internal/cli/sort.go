package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aryankumar/sortpool/internal/sorter"
	"github.com/aryankumar/sortpool/internal/util"
)

func newSortCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort [file...]",
		Short: "Sort integers with the parallel merge sort",
		Long: `Read whitespace-separated integers from the given files, or from standard
input when no file is given, sort them on the worker pool and print the result.

The input is cut into chunks of --chunk-size elements. Every chunk is sorted by
its own job, then sorted chunks are merged pairwise, round by round, until a
single sorted sequence remains.`,
		Example: `  # Sort numbers from a file on 8 workers
  sortpool sort numbers.txt -w 8

  # Sort from stdin with small chunks
  seq 100 -1 1 | sortpool sort --chunk-size 16

  # Print the result as JSON
  sortpool sort numbers.txt -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSort(cmd.Context(), cmd, args)
		},
	}

	return cmd
}

func (a *app) runSort(ctx context.Context, cmd *cobra.Command, files []string) error {
	data, err := readInput(cmd.InOrStdin(), files)
	if err != nil {
		return err
	}

	workers := a.config.Sort.EffectiveWorkers()
	a.logger.Debug("sorting input",
		"elements", len(data),
		"workers", workers,
		"chunk_size", a.config.Sort.ChunkSize)

	sorted, err := sorter.ParallelMergeSort(ctx, data, sorter.Options{
		ChunkSize: a.config.Sort.ChunkSize,
		Workers:   workers,
		Logger:    a.logger,
		OnRound: func(r sorter.Round) {
			a.logger.Debug("round complete", "round", r.Index, "chunks", r.Chunks, "elements", r.Elements)
		},
	})
	if err != nil {
		return fmt.Errorf("sort failed: %w", err)
	}

	formatter, err := a.formatter()
	if err != nil {
		return err
	}

	return formatter.Format(cmd.OutOrStdout(), sorted)
}

// readInput reads integers from files, or from stdin when files is empty
func readInput(stdin io.Reader, files []string) ([]int64, error) {
	if len(files) == 0 {
		return readInts(stdin, "stdin")
	}

	var data []int64
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrInvalidInput, err)
		}

		values, err := readInts(f, name)
		f.Close()
		if err != nil {
			return nil, err
		}
		data = append(data, values...)
	}
	return data, nil
}

// readInts parses whitespace-separated base-10 integers
func readInts(r io.Reader, name string) ([]int64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	values := make([]int64, 0)
	for n := 1; scanner.Scan(); n++ {
		v, err := strconv.ParseInt(scanner.Text(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: value %d: %q is not an integer", util.ErrInvalidInput, name, n, scanner.Text())
		}
		values = append(values, v)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", util.ErrInvalidInput, name, err)
	}
	return values, nil
}
