package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MINION_BACKEND_URL", "MINION_OUTPUT_FORMAT", "MINION_POLL_INTERVAL", "MINION_TIMEOUT", "MINION_USER_AGENT", "MINION_VERBOSE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "http://127.0.0.1:8383", cfg.BackendURL)
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "minion-scan", cfg.UserAgent)
	assert.False(t, cfg.Verbose)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.Equal(t, time.Second, cfg.PollInterval)
}

func TestLoad_HomeConfigFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	err := os.WriteFile(filepath.Join(home, ".minion-scan.yaml"), []byte("backend_url: \"http://minion.internal:8383\"\n"), 0644)
	require.NoError(t, err)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://minion.internal:8383", cfg.BackendURL)
}

func TestLoad_InvalidHomeConfigFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	err := os.WriteFile(filepath.Join(home, ".minion-scan.yaml"), []byte("{{invalid yaml"), 0644)
	require.NoError(t, err)

	_, err = Load()
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, ".minion-scan.yaml")

	content := `backend_url: "https://minion.example.com"
output_format: "json"
poll_interval: 5s
timeout: 10s
user_agent: "ci-bot"
verbose: true
`
	err := os.WriteFile(cfgFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromFile(cfgFile)
	require.NoError(t, err)

	assert.Equal(t, "https://minion.example.com", cfg.BackendURL)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "ci-bot", cfg.UserAgent)
	assert.True(t, cfg.Verbose)
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/.minion-scan.yaml")
	assert.Error(t, err)
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, ".minion-scan.yaml")

	err := os.WriteFile(cfgFile, []byte("{{invalid yaml"), 0644)
	require.NoError(t, err)

	_, err = LoadFromFile(cfgFile)
	assert.Error(t, err)
}

func TestLoadFromFile_PartialConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, ".minion-scan.yaml")

	err := os.WriteFile(cfgFile, []byte("poll_interval: 250ms\n"), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromFile(cfgFile)
	require.NoError(t, err)

	// Explicitly set values.
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	// Defaults for unset values.
	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, "text", cfg.OutputFormat)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MINION_BACKEND_URL", "http://10.0.0.5:8383")
	t.Setenv("MINION_OUTPUT_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:8383", cfg.BackendURL)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("backend", DefaultBackendURL, "")
	cmd.Flags().String("output", "text", "")
	cmd.Flags().Duration("interval", time.Second, "")
	cmd.Flags().Duration("timeout", 30*time.Second, "")
	cmd.Flags().Bool("verbose", false, "")
	return cmd
}

func TestApplyFlags(t *testing.T) {
	cfg := Defaults()
	cmd := newFlagCmd()

	// Simulate setting flags via command line.
	require.NoError(t, cmd.Flags().Set("backend", "http://localhost:9000"))
	require.NoError(t, cmd.Flags().Set("interval", "2s"))
	require.NoError(t, cmd.Flags().Set("verbose", "true"))

	ApplyFlags(&cfg, cmd)

	assert.Equal(t, "http://localhost:9000", cfg.BackendURL)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "text", cfg.OutputFormat)    // Not changed — flag wasn't set.
	assert.Equal(t, 30*time.Second, cfg.Timeout) // Not changed — flag wasn't set.
}

func TestApplyFlags_NoOverrideWhenUnchanged(t *testing.T) {
	cfg := Config{
		BackendURL:   "https://original.example.com",
		OutputFormat: "json",
		PollInterval: 3 * time.Second,
		Timeout:      15 * time.Second,
	}

	// Don't set any flags — none should override.
	ApplyFlags(&cfg, newFlagCmd())

	assert.Equal(t, "https://original.example.com", cfg.BackendURL)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no scheme", func(c *Config) { c.BackendURL = "127.0.0.1:8383" }},
		{"ftp scheme", func(c *Config) { c.BackendURL = "ftp://127.0.0.1" }},
		{"no host", func(c *Config) { c.BackendURL = "http://" }},
		{"zero interval", func(c *Config) { c.PollInterval = 0 }},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".minion-scan.yaml"), ConfigFilePath())
}
