package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type ExecutionConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxConcurrent  int    `mapstructure:"max_concurrent"`
	PythonBin      string `mapstructure:"python_bin"`
}

type LintConfig struct {
	Flake8Bin      string `mapstructure:"flake8_bin"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type WorkspaceConfig struct {
	Dir string `mapstructure:"dir"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Execution ExecutionConfig `mapstructure:"execution"`
	Lint      LintConfig      `mapstructure:"lint"`
	Workspace WorkspaceConfig `mapstructure:"workspace"`
}

// Load reads crucible.yaml from the working directory or ~/.crucible.
// Every key has a default, so running without a config file is fine.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("crucible")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.crucible")

	v.SetDefault("server.port", 5000)
	v.SetDefault("execution.timeout_seconds", 5)
	v.SetDefault("execution.max_concurrent", 8)
	v.SetDefault("execution.python_bin", "python3")
	v.SetDefault("lint.flake8_bin", "flake8")
	v.SetDefault("lint.timeout_seconds", 0)
	v.SetDefault("workspace.dir", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Execution.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("execution.timeout_seconds must be positive, got %d", cfg.Execution.TimeoutSeconds)
	}

	return &cfg, nil
}

// ExecutionTimeout returns the execution deadline as a duration.
func (c *Config) ExecutionTimeout() time.Duration {
	return time.Duration(c.Execution.TimeoutSeconds) * time.Second
}

// LintTimeout returns the lint deadline; zero means unbounded.
func (c *Config) LintTimeout() time.Duration {
	return time.Duration(c.Lint.TimeoutSeconds) * time.Second
}
