// Package config handles TOML-based configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// knownStrategies are the extraction strategies the cascade can run, in any
// configured order.
var knownStrategies = map[string]bool{
	"render":   true,
	"fetch":    true,
	"metadata": true,
}

// Config holds all service configuration.
type Config struct {
	Listen           string   `toml:"listen"`
	Strategies       []string `toml:"strategies"`
	YtdlpPath        string   `toml:"ytdlp_path"`
	PageLoadTimeout  int      `toml:"page_load_timeout"` // seconds
	SettleDelayMS    int      `toml:"settle_delay_ms"`   // milliseconds
	FetchTimeout     int      `toml:"fetch_timeout"`     // seconds
	ExtractorTimeout int      `toml:"extractor_timeout"` // seconds
	UserAgent        string   `toml:"user_agent"`
	Debug            bool     `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Listen:           ":8000",
		Strategies:       []string{"render", "fetch", "metadata"},
		YtdlpPath:        "yt-dlp",
		PageLoadTimeout:  30,
		SettleDelayMS:    2000,
		FetchTimeout:     15,
		ExtractorTimeout: 90,
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
			"(KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36",
		Debug: false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "forkcast"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "forkcast"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if len(c.Strategies) == 0 {
		return fmt.Errorf("at least one extraction strategy must be enabled")
	}
	seen := map[string]bool{}
	for _, s := range c.Strategies {
		if !knownStrategies[s] {
			return fmt.Errorf("unknown strategy %q (valid: render, fetch, metadata)", s)
		}
		if seen[s] {
			return fmt.Errorf("strategy %q listed more than once", s)
		}
		seen[s] = true
	}
	if c.PageLoadTimeout <= 0 {
		return fmt.Errorf("page_load_timeout must be positive, got %d", c.PageLoadTimeout)
	}
	if c.SettleDelayMS < 0 {
		return fmt.Errorf("settle_delay_ms cannot be negative, got %d", c.SettleDelayMS)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %d", c.FetchTimeout)
	}
	if c.ExtractorTimeout <= 0 {
		return fmt.Errorf("extractor_timeout must be positive, got %d", c.ExtractorTimeout)
	}
	if c.YtdlpPath == "" {
		return fmt.Errorf("ytdlp_path cannot be empty")
	}
	return nil
}

// PageLoadTimeoutDur returns the renderer load timeout as a duration.
func (c *Config) PageLoadTimeoutDur() time.Duration {
	return time.Duration(c.PageLoadTimeout) * time.Second
}

// SettleDelayDur returns the renderer settle delay as a duration.
func (c *Config) SettleDelayDur() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

// FetchTimeoutDur returns the raw-fetch timeout as a duration.
func (c *Config) FetchTimeoutDur() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

// ExtractorTimeoutDur returns the metadata-extractor timeout as a duration.
func (c *Config) ExtractorTimeoutDur() time.Duration {
	return time.Duration(c.ExtractorTimeout) * time.Second
}
