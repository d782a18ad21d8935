// Package config provides configuration loading and validation for the
// diffdrift CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidMaxCommits = errors.New("max commits must not be negative")
	ErrInvalidTimeout    = errors.New("diff timeout must not be negative")
	ErrEmptyWorkdir      = errors.New("workdir must not be empty")
	ErrEmptyOutput       = errors.New("output path must not be empty")
)

// Default configuration values.
const (
	DefaultWorkdir    = "repos"
	DefaultMaxCommits = 300
	DefaultOutput     = "diff_dataset.csv"
)

// Config holds all configuration for a mining run.
type Config struct {
	Workdir       string     `mapstructure:"workdir"`
	Output        string     `mapstructure:"output"`
	PlotsDir      string     `mapstructure:"plots_dir"`
	MaxCommits    int        `mapstructure:"max_commits"`
	IncludeMerges bool       `mapstructure:"include_merges"`
	Diff          DiffConfig `mapstructure:"diff"`
}

// DiffConfig configures the external diff engine.
type DiffConfig struct {
	GitBinary string        `mapstructure:"git_binary"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from an optional file and DIFFDRIFT_ environment
// variables, applying defaults and validating the result.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)

		err := viperCfg.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	viperCfg.SetEnvPrefix("DIFFDRIFT")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{}

	err := viperCfg.Unmarshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Workdir == "" {
		return ErrEmptyWorkdir
	}

	if c.Output == "" {
		return ErrEmptyOutput
	}

	if c.MaxCommits < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxCommits, c.MaxCommits)
	}

	if c.Diff.Timeout < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Diff.Timeout)
	}

	return nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("workdir", DefaultWorkdir)
	viperCfg.SetDefault("output", DefaultOutput)
	viperCfg.SetDefault("plots_dir", "")
	viperCfg.SetDefault("max_commits", DefaultMaxCommits)
	viperCfg.SetDefault("include_merges", false)
	viperCfg.SetDefault("diff.git_binary", "")
	viperCfg.SetDefault("diff.timeout", time.Duration(0))
}
