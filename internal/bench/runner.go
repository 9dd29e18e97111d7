package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/coder/quartz"

	"github.com/aryankumar/sortpool/internal/sorter"
)

// ErrNotSorted is returned when verification finds an unsorted output
var ErrNotSorted = errors.New("output is not sorted")

// SortFunc sorts data with the given chunk size and worker count.
// It must not modify data.
type SortFunc func(ctx context.Context, data []int64, chunkSize, workers int) ([]int64, error)

// Measurement is the timing of one sort
type Measurement struct {
	Workers  int           `json:"workers" yaml:"workers"`
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Speedup is the first measurement's duration divided by this one's.
	// It is 1 for the first measurement and for a zero duration.
	Speedup  float64 `json:"speedup" yaml:"speedup"`
	Verified bool    `json:"verified" yaml:"verified"`
}

// Report holds the results of a benchmark run
type Report struct {
	Config       Config        `json:"config" yaml:"config"`
	Measurements []Measurement `json:"measurements" yaml:"measurements"`
}

// Fastest returns the measurement with the lowest duration
func (r *Report) Fastest() (Measurement, bool) {
	if r == nil || len(r.Measurements) == 0 {
		return Measurement{}, false
	}

	best := r.Measurements[0]
	for _, m := range r.Measurements[1:] {
		if m.Duration < best.Duration {
			best = m
		}
	}
	return best, true
}

// Runner times the parallel sort across worker counts
type Runner struct {
	config Config
	clock  quartz.Clock
	logger *slog.Logger
	sortFn SortFunc
}

// Option configures a Runner
type Option func(*Runner)

// WithClock sets the clock used for timing
func WithClock(clock quartz.Clock) Option {
	return func(r *Runner) {
		r.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithSortFunc replaces the sort being measured
func WithSortFunc(fn SortFunc) Option {
	return func(r *Runner) {
		r.sortFn = fn
	}
}

// NewRunner creates a runner for the given configuration
func NewRunner(config Config, opts ...Option) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		config: config,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.clock == nil {
		r.clock = quartz.NewReal()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.sortFn == nil {
		r.sortFn = parallelSort(r.logger)
	}

	return r, nil
}

// parallelSort adapts sorter.ParallelMergeSort to SortFunc
func parallelSort(logger *slog.Logger) SortFunc {
	return func(ctx context.Context, data []int64, chunkSize, workers int) ([]int64, error) {
		return sorter.ParallelMergeSort(ctx, data, sorter.Options{
			ChunkSize: chunkSize,
			Workers:   workers,
			Logger:    logger,
		})
	}
}

// Run generates the input once and sorts it once per configured thread count
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	config := r.config
	if config.Seed == 0 {
		config.Seed = rand.Uint64()
	}

	r.logger.Info("generating benchmark data", "size", config.DataSize, "seed", config.Seed)
	data := RandomSlice(config.DataSize, config.Seed)

	report := &Report{
		Config:       config,
		Measurements: make([]Measurement, 0, len(config.Threads)),
	}

	for _, workers := range config.Threads {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("benchmark interrupted: %w", context.Cause(ctx))
		}

		r.logger.Info("starting parallel merge sort", "workers", workers)

		start := r.clock.Now()
		sorted, err := r.sortFn(ctx, data, config.ChunkSize, workers)
		duration := r.clock.Since(start)
		if err != nil {
			return report, fmt.Errorf("sort with %d workers: %w", workers, err)
		}

		m := Measurement{
			Workers:  workers,
			Duration: duration,
		}

		if config.Verify {
			if len(sorted) != len(data) || !sorter.IsSorted(sorted) {
				return report, fmt.Errorf("%w: %d workers", ErrNotSorted, workers)
			}
			m.Verified = true
		}

		m.Speedup = 1
		if len(report.Measurements) > 0 {
			m.Speedup = speedup(report.Measurements[0].Duration, duration)
		}

		report.Measurements = append(report.Measurements, m)
		r.logger.Info("sort finished", "workers", workers, "duration", duration)
	}

	return report, nil
}

// speedup is base/d. A run too fast for the clock to measure counts as 1.
func speedup(base, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return float64(base) / float64(d)
}

// RandomSlice returns n pseudo-random int64 values determined by seed
func RandomSlice(n int, seed uint64) []int64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	data := make([]int64, n)
	for i := range data {
		data[i] = int64(rng.Uint64())
	}
	return data
}
