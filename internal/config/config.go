package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultURL        = "https://www.grtjewels.com/"
	DefaultOutputFile = "Jewel Prices.xlsx"
	DefaultTimeout    = 60 * time.Second
)

// DefaultHeaders is the column layout of the ledger's Data sheet.
var DefaultHeaders = []string{
	"Date",
	"24K GOLD/1g", "24K GOLD/1g Diff", "24K GOLD/8g", "24K GOLD/8g Diff",
	"22K GOLD/1g", "22K GOLD/1g Diff", "22K GOLD/8g", "22K GOLD/8g Diff",
	"18K GOLD/1g", "18K GOLD/1g Diff", "18K GOLD/8g", "18K GOLD/8g Diff",
	"PLATINUM/1g", "PLATINUM/1g Diff", "PLATINUM/8g", "PLATINUM/8g Diff",
	"SILVER/1g", "SILVER/1g Diff", "SILVER/8g", "SILVER/8g Diff",
	"Captured Time",
}

// ErrRunDisabled is returned when the run-enable flag is off.
var ErrRunDisabled = errors.New("run disabled by configuration")

type Config struct {
	Enabled    bool     `toml:"enabled"`
	CachePath  string   `toml:"cache_path"`  // raw page snapshots
	OutputPath string   `toml:"output_path"` // ledger directory
	OutputFile string   `toml:"output_file"`
	URL        string   `toml:"url"`
	Headers    []string `toml:"headers"`
	Timeout    string   `toml:"timeout"`

	// Optional snapshot mirror: mysql DSN or sqlite:<path>
	DatabaseURL string `toml:"database_url"`
	LogLevel    string `toml:"log_level"`
	Port        string `toml:"port"`
}

// Default returns the configuration used when no file or environment is present.
func Default() *Config {
	return &Config{
		Enabled:    true,
		CachePath:  "cache",
		OutputPath: "output",
		OutputFile: DefaultOutputFile,
		URL:        DefaultURL,
		Headers:    append([]string(nil), DefaultHeaders...),
		Timeout:    DefaultTimeout.String(),
		LogLevel:   "info",
		Port:       "8080",
	}
}

// Load builds the configuration from defaults, an optional TOML file and the
// environment, in that order of precedence (environment wins).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	enabled, err := getEnvBool("GRT_RUN_ENABLED", cfg.Enabled)
	if err != nil {
		return err
	}
	cfg.Enabled = enabled
	cfg.CachePath = getEnv("GRT_CACHE_PATH", cfg.CachePath)
	cfg.OutputPath = getEnv("GRT_OUTPUT_PATH", cfg.OutputPath)
	cfg.OutputFile = getEnv("GRT_OUTPUT_FILE", cfg.OutputFile)
	cfg.URL = getEnv("GRT_URL", cfg.URL)
	cfg.Timeout = getEnv("GRT_TIMEOUT", cfg.Timeout)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Port = getEnv("PORT", cfg.Port)

	if raw := os.Getenv("GRT_LEDGER_HEADERS"); raw != "" {
		var headers []string
		for _, h := range strings.Split(raw, ",") {
			if h = strings.TrimSpace(h); h != "" {
				headers = append(headers, h)
			}
		}
		cfg.Headers = headers
	}
	return nil
}

// Validate reports the first configuration problem that would stop a run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return errors.New("config: url is required")
	}
	if strings.TrimSpace(c.CachePath) == "" {
		return errors.New("config: cache_path is required")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return errors.New("config: output_path is required")
	}
	if strings.TrimSpace(c.OutputFile) == "" {
		return errors.New("config: output_file is required")
	}

	present := make(map[string]bool, len(c.Headers))
	for _, h := range c.Headers {
		if present[h] {
			return fmt.Errorf("config: duplicate ledger header %q", h)
		}
		present[h] = true
	}
	for _, h := range DefaultHeaders {
		if !present[h] {
			return fmt.Errorf("config: ledger headers missing %q", h)
		}
	}

	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("config: invalid timeout %q: %w", c.Timeout, err)
	}
	return nil
}

// CheckEnabled returns ErrRunDisabled when the run-enable flag is off.
func (c *Config) CheckEnabled() error {
	if !c.Enabled {
		return ErrRunDisabled
	}
	return nil
}

// LedgerPath is the full path of the ledger workbook.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.OutputPath, c.OutputFile)
}

// GetTimeout parses the request timeout, falling back to DefaultTimeout.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool accepts the strconv.ParseBool spellings and rejects anything else.
func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("config: invalid %s %q: want true or false", key, value)
	}
	return b, nil
}
