package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Enabled)
	assert.Equal(t, DefaultURL, cfg.URL)
	assert.Equal(t, filepath.Join("output", "Jewel Prices.xlsx"), cfg.LedgerPath())
	assert.Equal(t, DefaultTimeout, cfg.GetTimeout())
}

func TestDefault_HeadersAreCopied(t *testing.T) {
	cfg := Default()
	cfg.Headers[0] = "changed"
	assert.Equal(t, "Date", DefaultHeaders[0])
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.toml")
	content := `
enabled = true
cache_path = "/var/cache/grt/"
output_path = "/srv/ledger"
url = "https://example.test/"
timeout = "15s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("GRT_OUTPUT_PATH", "/tmp/override")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/cache/grt/", cfg.CachePath)
	assert.Equal(t, "/tmp/override", cfg.OutputPath)
	assert.Equal(t, "https://example.test/", cfg.URL)
	assert.Equal(t, 15*time.Second, cfg.GetTimeout())
	assert.Equal(t, DefaultHeaders, cfg.Headers)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_DisabledByEnv(t *testing.T) {
	t.Setenv("GRT_RUN_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.CheckEnabled(), ErrRunDisabled)
}

func TestLoad_InvalidEnableFlag(t *testing.T) {
	for _, value := range []string{"off", "no", "disabled", "maybe"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("GRT_RUN_ENABLED", value)

			cfg, err := Load("")
			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, "GRT_RUN_ENABLED")
		})
	}
}

func TestLoad_EnableFlagTrimmed(t *testing.T) {
	t.Setenv("GRT_RUN_ENABLED", "False ")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.CheckEnabled(), ErrRunDisabled)
}

func TestLoad_HeadersFromEnv(t *testing.T) {
	t.Setenv("GRT_LEDGER_HEADERS", "Date, 24K GOLD/1g ,Captured Time")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "24K GOLD/1g", "Captured Time"}, cfg.Headers)
	assert.ErrorContains(t, cfg.Validate(), "ledger headers missing")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty url", func(c *Config) { c.URL = " " }, "url is required"},
		{"empty cache", func(c *Config) { c.CachePath = "" }, "cache_path is required"},
		{"empty output", func(c *Config) { c.OutputPath = "" }, "output_path is required"},
		{"empty file", func(c *Config) { c.OutputFile = "" }, "output_file is required"},
		{"duplicate header", func(c *Config) { c.Headers = append(c.Headers, "Date") }, "duplicate ledger header"},
		{"bad timeout", func(c *Config) { c.Timeout = "soon" }, "invalid timeout"},
		{"extra header", func(c *Config) { c.Headers = append(c.Headers, "Notes") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
