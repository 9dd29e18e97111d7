package sorter

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"

	"github.com/aryankumar/sortpool/internal/executor"
	"github.com/aryankumar/sortpool/internal/util"
)

// Options configures ParallelMergeSort
type Options struct {
	// ChunkSize is the maximum number of elements sorted by a single job
	ChunkSize int

	// Workers is the number of pool workers
	Workers int

	// Logger for structured logging (defaults to slog.Default())
	Logger *slog.Logger

	// OnRound, if set, is called after every round barrier
	OnRound func(Round)
}

// Round describes the chunk set left after one barrier.
// Round 0 is the initial sort; merge rounds start at 1.
type Round struct {
	Index    int
	Chunks   int
	Elements int
}

// Validate checks the options
func (o Options) Validate() error {
	if o.ChunkSize <= 0 {
		return util.NewValidationError("chunkSize", o.ChunkSize, "must be positive")
	}
	if o.Workers <= 0 {
		return fmt.Errorf("%w: got %d", executor.ErrZeroThreads, o.Workers)
	}
	return nil
}

// ParallelMergeSort sorts data on a pool of opts.Workers workers and returns
// a new sorted slice; data is not modified.
//
// The input is cut into chunks of opts.ChunkSize elements, each chunk is sorted
// by its own job, and the sorted chunks are then merged pairwise, one round at
// a time, until a single chunk remains. Every round is a barrier: all of its
// jobs are received before the next round is submitted. The first failed job
// aborts the sort.
func ParallelMergeSort[T cmp.Ordered](ctx context.Context, data []T, opts Options) ([]T, error) {
	return parallelSort(ctx, data, opts, MergeSort[T], Merge[T])
}

// parallelSort runs the driver with the given sequential primitives
func parallelSort[T cmp.Ordered](
	ctx context.Context,
	data []T,
	opts Options,
	sortChunk func([]T),
	merge func(left, right []T) []T,
) ([]T, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if len(data) == 0 {
		return []T{}, nil
	}

	chunks := Partition(data, opts.ChunkSize)

	logger.Debug("starting parallel merge sort",
		"workers", opts.Workers,
		"elements", len(data),
		"chunks", len(chunks))

	pool, err := executor.New[[]T](opts.Workers, logger)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	s := &sortRun[T]{
		pool:    pool,
		logger:  logger,
		onRound: opts.OnRound,
		merge:   merge,
	}

	for _, chunk := range chunks {
		if err := pool.Submit(func() []T {
			sortChunk(chunk)
			return chunk
		}); err != nil {
			return nil, fmt.Errorf("submit sort job: %w", err)
		}
	}

	sorted, err := s.collect(ctx, 0, len(chunks))
	if err != nil {
		return nil, err
	}
	s.report(0, sorted)

	for round := 1; len(sorted) > 1; round++ {
		if sorted, err = s.mergeRound(ctx, round, sorted); err != nil {
			return nil, err
		}
		s.report(round, sorted)
	}

	return sorted[0], nil
}

// Partition copies data into consecutive chunks of at most size elements
func Partition[T any](data []T, size int) [][]T {
	chunks := make([][]T, 0, (len(data)+size-1)/size)
	for start := 0; start < len(data); start += size {
		end := min(start+size, len(data))
		chunk := make([]T, end-start)
		copy(chunk, data[start:end])
		chunks = append(chunks, chunk)
	}
	return chunks
}

// sortRun carries the state shared by the rounds of one sort
type sortRun[T cmp.Ordered] struct {
	pool    *executor.Pool[[]T]
	logger  *slog.Logger
	onRound func(Round)
	merge   func(left, right []T) []T
}

// mergeRound pairs chunks front to back, merges each pair on the pool and
// returns the merged chunks plus the odd chunk, if any
func (s *sortRun[T]) mergeRound(ctx context.Context, round int, chunks [][]T) ([][]T, error) {
	var carried []T
	if len(chunks)%2 != 0 {
		carried = chunks[len(chunks)-1]
		chunks = chunks[:len(chunks)-1]
	}

	pairs := len(chunks) / 2
	for i := 0; i < pairs; i++ {
		left, right := chunks[2*i], chunks[2*i+1]
		if err := s.pool.Submit(func() []T {
			return s.merge(left, right)
		}); err != nil {
			return nil, fmt.Errorf("submit merge job: %w", err)
		}
	}

	next := make([][]T, 0, pairs+1)
	if carried != nil {
		next = append(next, carried)
	}

	merged, err := s.collect(ctx, round, pairs)
	if err != nil {
		return nil, err
	}

	return append(next, merged...), nil
}

// collect receives exactly n outcomes, stopping at the first failure
func (s *sortRun[T]) collect(ctx context.Context, round, n int) ([][]T, error) {
	outcomes := make([]executor.Outcome[[]T], 0, n)

	for i := 0; i < n; i++ {
		outcome, err := s.pool.RecvOutcome(ctx)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}
		if outcome.Err != nil {
			s.logger.Warn("sort job failed", "round", round, "worker_id", outcome.WorkerID, "error", outcome.Err)
			return nil, fmt.Errorf("round %d: %w", round, outcome.Err)
		}
		outcomes = append(outcomes, outcome)
	}

	s.logger.Debug("round jobs complete",
		"round", round,
		"jobs", n,
		"summary", executor.Summarize(outcomes).String())

	return executor.Values(outcomes), nil
}

// report notifies OnRound with the chunk set that survived a round
func (s *sortRun[T]) report(round int, chunks [][]T) {
	if s.onRound == nil {
		return
	}

	elements := 0
	for _, c := range chunks {
		elements += len(c)
	}
	s.onRound(Round{Index: round, Chunks: len(chunks), Elements: elements})
}
