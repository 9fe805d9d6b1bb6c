// Package config provides configuration loading for minion-scan.
// It supports a layered configuration approach with priority:
// CLI flags > environment variables (MINION_*) > config file (~/.minion-scan.yaml).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	DefaultBackendURL = "http://127.0.0.1:8383"
	configName        = ".minion-scan"
	envPrefix         = "MINION"
)

// Config holds all minion-scan configuration options. It is loaded once at
// startup and read-only afterwards.
type Config struct {
	BackendURL   string        `mapstructure:"backend_url" yaml:"backend_url"`
	OutputFormat string        `mapstructure:"output_format" yaml:"output_format"`
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent    string        `mapstructure:"user_agent" yaml:"user_agent"`
	Verbose      bool          `mapstructure:"verbose" yaml:"verbose"`
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		BackendURL:   DefaultBackendURL,
		OutputFormat: "text",
		PollInterval: time.Second,
		Timeout:      30 * time.Second,
		UserAgent:    "minion-scan",
	}
}

// Load reads configuration from ConfigFilePath (if it exists) and
// environment variables. It does NOT apply CLI flag overrides — call
// ApplyFlags for that.
func Load() (*Config, error) {
	return load(ConfigFilePath(), true)
}

// LoadFromFile reads configuration from a specific file path, which must exist.
func LoadFromFile(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, optional bool) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if !optional || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return unmarshal(v)
}

// ApplyFlags overrides config values with any CLI flags that were explicitly set.
func ApplyFlags(cfg *Config, cmd *cobra.Command) {
	flags := cmd.Flags()

	if flags.Changed("backend") {
		val, _ := flags.GetString("backend")
		cfg.BackendURL = val
	}
	if flags.Changed("output") {
		val, _ := flags.GetString("output")
		cfg.OutputFormat = val
	}
	if flags.Changed("interval") {
		val, _ := flags.GetDuration("interval")
		cfg.PollInterval = val
	}
	if flags.Changed("timeout") {
		val, _ := flags.GetDuration("timeout")
		cfg.Timeout = val
	}
	if flags.Changed("verbose") {
		val, _ := flags.GetBool("verbose")
		cfg.Verbose = val
	}
}

// Validate checks the values a run depends on.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend_url %q: %w", c.BackendURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend_url %q: want http(s)://host[:port]", c.BackendURL)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// ConfigFilePath returns the default config file path (~/.minion-scan.yaml).
func ConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configName + ".yaml"
	}
	return filepath.Join(home, configName+".yaml")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("backend_url", d.BackendURL)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("poll_interval", d.PollInterval)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("verbose", d.Verbose)
}
