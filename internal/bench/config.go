package bench

import (
	"github.com/aryankumar/sortpool/internal/util"
)

// Config describes one benchmark: a random input of DataSize elements sorted
// once per entry in Threads
type Config struct {
	// DataSize is the number of random elements to sort
	DataSize int `json:"dataSize" yaml:"dataSize"`

	// ChunkSize is the chunk size passed to the parallel sort
	ChunkSize int `json:"chunkSize" yaml:"chunkSize"`

	// Threads lists the worker counts to measure, in order
	Threads []int `json:"threads" yaml:"threads"`

	// Seed for the random input; 0 picks a random seed
	Seed uint64 `json:"seed" yaml:"seed"`

	// Verify checks every output is sorted
	Verify bool `json:"verify" yaml:"verify"`
}

// DefaultConfig returns the default benchmark configuration
func DefaultConfig() Config {
	return Config{
		DataSize:  10_000_000,
		ChunkSize: 10_000,
		Threads:   []int{1, 2, 4, 8, 16, 24, 32, 48, 64},
		Verify:    true,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.DataSize < 0 {
		return util.NewValidationError("dataSize", c.DataSize, "must not be negative")
	}
	if c.ChunkSize <= 0 {
		return util.NewValidationError("chunkSize", c.ChunkSize, "must be positive")
	}
	if len(c.Threads) == 0 {
		return util.NewValidationError("threads", nil, "at least one thread count is required")
	}
	for _, n := range c.Threads {
		if n <= 0 {
			return util.NewValidationError("threads", n, "thread counts must be positive")
		}
	}
	return nil
}
