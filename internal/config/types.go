package config

import (
	"runtime"

	"github.com/aryankumar/sortpool/internal/bench"
)

// Config represents the sortpool configuration file structure
type Config struct {
	// Sort contains settings for the sort command
	Sort SortConfig `mapstructure:"sort" yaml:"sort" json:"sort"`

	// Bench contains settings for the bench command
	Bench BenchConfig `mapstructure:"bench" yaml:"bench" json:"bench"`

	// Output contains display settings
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`
}

// SortConfig configures the parallel sort
type SortConfig struct {
	// Workers is the pool size; 0 means one worker per CPU
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`

	// ChunkSize is the number of elements sorted by a single job
	ChunkSize int `mapstructure:"chunkSize" yaml:"chunkSize" json:"chunkSize"`
}

// BenchConfig configures the benchmark
type BenchConfig struct {
	// DataSize is the number of random elements to sort
	DataSize int `mapstructure:"dataSize" yaml:"dataSize" json:"dataSize"`

	// ChunkSize is the number of elements sorted by a single job
	ChunkSize int `mapstructure:"chunkSize" yaml:"chunkSize" json:"chunkSize"`

	// Threads lists the worker counts to measure, in order
	Threads []int `mapstructure:"threads" yaml:"threads" json:"threads"`

	// Seed fixes the random input; 0 picks a random seed
	Seed uint64 `mapstructure:"seed" yaml:"seed" json:"seed"`

	// Verify checks every output is sorted
	Verify bool `mapstructure:"verify" yaml:"verify" json:"verify"`
}

// OutputConfig contains display settings
type OutputConfig struct {
	// Format is the default output format (table, json, yaml)
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	// NoColor disables colored output
	NoColor bool `mapstructure:"noColor" yaml:"noColor" json:"noColor"`
}

// EffectiveWorkers resolves a zero worker count to the number of CPUs
func (s SortConfig) EffectiveWorkers() int {
	if s.Workers == 0 {
		return runtime.NumCPU()
	}
	return s.Workers
}

// ToBench converts the benchmark settings for the bench runner
func (b BenchConfig) ToBench() bench.Config {
	threads := make([]int, len(b.Threads))
	copy(threads, b.Threads)

	return bench.Config{
		DataSize:  b.DataSize,
		ChunkSize: b.ChunkSize,
		Threads:   threads,
		Seed:      b.Seed,
		Verify:    b.Verify,
	}
}
