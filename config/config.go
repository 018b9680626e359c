package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/orlp/sortx/spread"
)

// TuningConfig overrides the engine cutoffs. Zero fields keep the
// engine defaults.
type TuningConfig struct {
	MinSize      int `toml:"minSize"`
	FallbackSize int `toml:"fallbackSize"`
	MaxSplits    int `toml:"maxSplits"`
}

// Tuning resolves the override against spread.DefaultTuning. MaxSplits
// is tri-state: absent keeps the default, negative means uncapped.
func (tc *TuningConfig) Tuning() spread.Tuning {
	tun := spread.DefaultTuning
	if tc == nil {
		return tun
	}
	if tc.MinSize > 0 {
		tun.MinSize = tc.MinSize
	}
	if tc.FallbackSize > 0 {
		tun.FallbackSize = tc.FallbackSize
	}
	if tc.MaxSplits > 0 {
		tun.MaxSplits = tc.MaxSplits
	} else if tc.MaxSplits < 0 {
		tun.MaxSplits = 0
	}
	return tun
}

type FileConfig struct {
	Input   string `toml:"input"`
	Output  string `toml:"output"`
	Reverse bool   `toml:"reverse"`
	Unique  bool   `toml:"unique"`
	Counts  bool   `toml:"counts"`
}

type BenchConfig struct {
	Sizes    []int    `toml:"sizes"`
	Patterns []string `toml:"patterns"`
	PlotPath string   `toml:"plotPath"`
}

type LiveConfig struct {
	Port          string `toml:"port"`
	Output        string `toml:"output"`
	Reverse       bool   `toml:"reverse"`
	FlushInterval string `toml:"flushInterval"`
	SpoolMaxAge   string `toml:"spoolMaxAge"`
	SpoolMaxSize  int    `toml:"spoolMaxSize"`
}

type Config struct {
	Tuning *TuningConfig `toml:"tuning"`
	File   *FileConfig   `toml:"file"`
	Bench  *BenchConfig  `toml:"bench"`
	Live   *LiveConfig   `toml:"live"`
}

func LoadConfig(configPath string) (*Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if _, err := toml.Decode(string(configData), config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.File == nil {
		config.File = &FileConfig{}
	}
	if config.Bench == nil {
		config.Bench = &BenchConfig{}
	}
	if config.Live == nil {
		config.Live = &LiveConfig{}
	}

	return config, nil
}

// GetTuning returns the resolved engine tuning for this config.
func (c *Config) GetTuning() spread.Tuning {
	return c.Tuning.Tuning()
}

func (c *Config) ValidateFile() error {
	if c.File == nil {
		return fmt.Errorf("file configuration section is required")
	}
	if c.File.Input == "" {
		return fmt.Errorf("input is required in file configuration")
	}
	if c.File.Input != "-" {
		if _, err := os.Stat(c.File.Input); os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", c.File.Input)
		}
	}
	if c.File.Counts && !c.File.Unique {
		return fmt.Errorf("counts requires unique in file configuration")
	}
	return nil
}

func (c *Config) ValidateBench() error {
	if c.Bench == nil {
		return fmt.Errorf("bench configuration section is required")
	}
	if len(c.Bench.Sizes) == 0 {
		return fmt.Errorf("at least one size is required in bench configuration")
	}
	for _, size := range c.Bench.Sizes {
		if size <= 0 {
			return fmt.Errorf("bench sizes must be positive, got %d", size)
		}
	}
	return nil
}

func (c *Config) ValidateLive() error {
	if c.Live == nil {
		return fmt.Errorf("live configuration section is required")
	}
	if c.Live.Port == "" {
		return fmt.Errorf("port is required in live configuration")
	}
	if c.Live.Output == "" {
		return fmt.Errorf("output is required in live configuration")
	}
	if _, err := c.FlushInterval(); err != nil {
		return err
	}
	if _, err := c.SpoolMaxAge(); err != nil {
		return err
	}
	if c.Live.SpoolMaxSize < 0 {
		return fmt.Errorf("spoolMaxSize must be non-negative")
	}
	return nil
}

// FlushInterval parses the live flush interval, defaulting to 10s.
func (c *Config) FlushInterval() (time.Duration, error) {
	if c.Live == nil || c.Live.FlushInterval == "" {
		return 10 * time.Second, nil
	}
	d, err := time.ParseDuration(c.Live.FlushInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid flushInterval %q: %w", c.Live.FlushInterval, err)
	}
	return d, nil
}

// SpoolMaxAge parses the maximum record age in the spool, defaulting to
// 2 minutes.
func (c *Config) SpoolMaxAge() (time.Duration, error) {
	if c.Live == nil || c.Live.SpoolMaxAge == "" {
		return 2 * time.Minute, nil
	}
	d, err := time.ParseDuration(c.Live.SpoolMaxAge)
	if err != nil {
		return 0, fmt.Errorf("invalid spoolMaxAge %q: %w", c.Live.SpoolMaxAge, err)
	}
	return d, nil
}
