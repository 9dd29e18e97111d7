package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aryankumar/sortpool/internal/bench"
	"github.com/aryankumar/sortpool/internal/output"
	"github.com/aryankumar/sortpool/internal/util"
)

const (
	defaultConfigName = ".sortpool"
	defaultConfigDir  = ".sortpool"
	envPrefix         = "SORTPOOL"
)

// Manager handles sortpool configuration
type Manager struct {
	configPath string
	config     *Config
	viper      *viper.Viper
}

// NewManager creates a new configuration manager
func NewManager(configPath string) *Manager {
	m := &Manager{
		configPath: configPath,
		viper:      viper.New(),
		config:     &Config{},
	}
	m.setDefaults()
	return m
}

// setDefaults registers the default value of every key
func (m *Manager) setDefaults() {
	b := bench.DefaultConfig()

	m.viper.SetDefault("sort.workers", 0)
	m.viper.SetDefault("sort.chunkSize", b.ChunkSize)

	m.viper.SetDefault("bench.dataSize", b.DataSize)
	m.viper.SetDefault("bench.chunkSize", b.ChunkSize)
	m.viper.SetDefault("bench.threads", b.Threads)
	m.viper.SetDefault("bench.seed", b.Seed)
	m.viper.SetDefault("bench.verify", b.Verify)

	m.viper.SetDefault("output.format", string(output.FormatTable))
	m.viper.SetDefault("output.noColor", false)
}

// BindFlag makes a command-line flag override key once the flag is set
func (m *Manager) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("flag for %q not found", key)
	}
	return m.viper.BindPFlag(key, flag)
}

// Load loads the configuration from file, environment and bound flags.
// A missing config file is not an error.
func (m *Manager) Load() (*Config, error) {
	if m.configPath != "" {
		m.viper.SetConfigFile(m.configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		// Check ~/.sortpool.yaml then ~/.sortpool/config.yaml
		m.viper.SetConfigType("yaml")
		for _, candidate := range []string{
			filepath.Join(home, defaultConfigName+".yaml"),
			filepath.Join(home, defaultConfigDir, "config.yaml"),
		} {
			if _, err := os.Stat(candidate); err == nil {
				m.viper.SetConfigFile(candidate)
				break
			}
		}
	}

	// SORTPOOL_SORT_WORKERS overrides sort.workers
	m.viper.SetEnvPrefix(envPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	if m.viper.ConfigFileUsed() != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	m.config = cfg
	return m.config, nil
}

// ResolvePath returns the file Save writes to, defaulting to
// $HOME/.sortpool/config.yaml when no path was given
func (m *Manager) ResolvePath() (string, error) {
	if m.configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		m.configPath = filepath.Join(home, defaultConfigDir, "config.yaml")
	}
	return m.configPath, nil
}

// Save writes the current configuration to file as YAML
func (m *Manager) Save() error {
	if _, err := m.ResolvePath(); err != nil {
		return err
	}

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *Config {
	return m.config
}

// SetConfig replaces the configuration written by Save
func (m *Manager) SetConfig(cfg *Config) {
	m.config = cfg
}

// ConfigPath returns the file the configuration was read from or will be
// saved to. It is empty when no file was found and none was given.
func (m *Manager) ConfigPath() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			return used
		}
	}
	return m.configPath
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	b := bench.DefaultConfig()
	return &Config{
		Sort: SortConfig{
			Workers:   0,
			ChunkSize: b.ChunkSize,
		},
		Bench: BenchConfig{
			DataSize:  b.DataSize,
			ChunkSize: b.ChunkSize,
			Threads:   b.Threads,
			Seed:      b.Seed,
			Verify:    b.Verify,
		},
		Output: OutputConfig{
			Format: string(output.FormatTable),
		},
	}
}

// Validate checks every section of the configuration
func (c *Config) Validate() error {
	if c.Sort.Workers < 0 {
		return util.NewValidationError("sort.workers", c.Sort.Workers, "must be zero (one per CPU) or positive")
	}
	if c.Sort.ChunkSize <= 0 {
		return util.NewValidationError("sort.chunkSize", c.Sort.ChunkSize, "must be positive")
	}

	if err := c.Bench.ToBench().Validate(); err != nil {
		var vErr *util.ValidationError
		if errors.As(err, &vErr) {
			return util.NewValidationError("bench."+vErr.Field, vErr.Value, vErr.Message)
		}
		return err
	}

	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return util.NewValidationError("output.format", c.Output.Format, "must be one of table, json, yaml")
	}

	return nil
}
