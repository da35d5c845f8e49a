// Package config loads and persists the daemon configuration file.
// The base encryption secret deliberately does not live here: it is supplied
// via environment and injected where needed, so a checked-in config file can
// never leak it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultAPIAddr is the default address for the daemon HTTP API.
	DefaultAPIAddr = "0.0.0.0:12005"

	// DefaultHealthCheckInterval is the default delay between MCP server pings.
	DefaultHealthCheckInterval = Duration(10 * time.Second)

	// DefaultPingTimeout is the default timeout for a single MCP server ping.
	DefaultPingTimeout = Duration(3 * time.Second)
)

// Duration wraps time.Duration for TOML round-tripping as a string like "250ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration '%s': %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// PollConfig tunes the playground poller. Zero values fall back to the
// poller's own defaults.
type PollConfig struct {
	ThinkingInterval Duration `toml:"thinking_interval,omitempty"`
	BaselineInterval Duration `toml:"baseline_interval,omitempty"`
	Step             Duration `toml:"step,omitempty"`
}

// Config is the daemon configuration file.
type Config struct {
	APIAddr             string     `toml:"api_addr,omitempty"`
	DatabaseDSN         string     `toml:"database_dsn,omitempty"`
	HealthCheckInterval Duration   `toml:"health_check_interval,omitempty"`
	PingTimeout         Duration   `toml:"ping_timeout,omitempty"`
	CORSAllowOrigins    []string   `toml:"cors_allow_origins,omitempty"`
	Poll                PollConfig `toml:"poll,omitempty"`

	filePath string `toml:"-"`
}

// Loader loads a Config from a path.
type Loader interface {
	Load(path string) (*Config, error)
}

// DefaultLoader loads TOML config files from disk.
type DefaultLoader struct{}

// Load reads the config file at path. A missing file yields a config with
// defaults applied, so a fresh install works without an init step.
func (d *DefaultLoader) Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	cfg := newConfig(path)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("could not stat config file '%s': %w", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config file '%s' could not be parsed: %w", path, err)
	}

	cfg.applyDefaults()

	return cfg, nil
}

func newConfig(path string) *Config {
	cfg := &Config{filePath: path}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.APIAddr) == "" {
		c.APIAddr = DefaultAPIAddr
	}
	if c.HealthCheckInterval == 0 {
		c.HealthCheckInterval = DefaultHealthCheckInterval
	}
	if c.PingTimeout == 0 {
		c.PingTimeout = DefaultPingTimeout
	}
}

// SaveConfig writes the Config to disk as a TOML file, creating parent
// directories and setting restrictive file permissions.
func (c *Config) SaveConfig() error {
	path := c.filePath
	if path == "" {
		return fmt.Errorf("config file path not present")
	}

	// owner: rwx, group: r--, others: ---
	if err := os.MkdirAll(filepath.Dir(path), 0o740); err != nil {
		return fmt.Errorf("could not ensure config directory exists for '%s': %w", path, err)
	}

	// owner: rw-, group: ---, others: ---
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("could not create file '%s': %w", path, err)
	}
	defer func(f *os.File) {
		closeErr := f.Close()
		if closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}(f)

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("could not encode config to file '%s': %w", path, err)
	}

	return nil
}
