// Package cmd carries the shared plumbing for CLI commands: logger wiring
// and construction of the config, codec, and store each command needs.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/pluggedin/pluggedin/internal/config"
	"github.com/pluggedin/pluggedin/internal/flags"
	"github.com/pluggedin/pluggedin/internal/secret"
	"github.com/pluggedin/pluggedin/internal/store"
)

type BaseCmd struct {
	logger hclog.Logger
}

// SetLogger updates the command's logger
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// Logger returns the current logger for the command
func (c *BaseCmd) Logger() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	// Get log level from flags first, then environment, then default
	logLevel := flags.LogLevel
	if logLevel == "" {
		logLevel = strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
		if logLevel == "" {
			logLevel = flags.DefaultLogLevel
		}
	}

	// Get log path from flags first, then environment
	logPath := flags.LogPath
	if logPath == "" {
		logPath = strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))
	}

	// Configure logger output
	var output io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file (%s): %v, using stderr\n", logPath, err)
		} else {
			output = f
		}
	}

	// Using flags/env for fallback logger
	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "pluggedin-default",
		Level:  hclog.LevelFromString(logLevel),
		Output: output,
	})

	return c.logger
}

// LoadConfig loads and validates the config file named by the global flag.
func (c *BaseCmd) LoadConfig() (*config.Config, error) {
	loader := config.NewValidatingLoader(
		&config.DefaultLoader{},
		config.RequireValidAPIAddr,
		config.RequireDatabaseDSN,
	)

	return loader.Load(flags.ConfigFile)
}

// CreateCodec builds the field encryption codec from the ambient secret.
func (c *BaseCmd) CreateCodec() (*secret.Codec, error) {
	return secret.NewCodec(flags.Secret(), c.Logger())
}

// OpenStore connects to the configured database and ensures the schema.
func (c *BaseCmd) OpenStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	st, err := store.Open(ctx, cfg.DatabaseDSN, c.Logger())
	if err != nil {
		return nil, err
	}

	if err := st.EnsureSchema(ctx); err != nil {
		st.Close()
		return nil, err
	}

	return st, nil
}
