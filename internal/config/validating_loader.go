package config

import (
	"fmt"
	"net"
	"strings"
)

// ValidationPredicate evaluates a loaded Config and returns an error if invalid.
type ValidationPredicate func(*Config) error

// validatingLoader wraps a Loader to run additional validation predicates at load time.
// Uses decorator pattern to preserve custom loader implementations while adding validation.
type validatingLoader struct {
	Loader
	predicates []ValidationPredicate
}

// NewValidatingLoader creates a loader that runs validation predicates after Load().
func NewValidatingLoader(inner Loader, predicates ...ValidationPredicate) *validatingLoader {
	return &validatingLoader{
		Loader:     inner,
		predicates: predicates,
	}
}

// Load delegates to the inner loader, then runs validation predicates.
func (l *validatingLoader) Load(path string) (*Config, error) {
	cfg, err := l.Loader.Load(path)
	if err != nil {
		return nil, err
	}

	for _, predicate := range l.predicates {
		if predicate == nil {
			continue
		}
		if err := predicate(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// RequireValidAPIAddr rejects configs whose API address is not host:port.
func RequireValidAPIAddr(cfg *Config) error {
	if _, _, err := net.SplitHostPort(cfg.APIAddr); err != nil {
		return fmt.Errorf("invalid api address '%s': %w", cfg.APIAddr, err)
	}
	return nil
}

// RequireDatabaseDSN rejects configs without a database connection string.
func RequireDatabaseDSN(cfg *Config) error {
	if strings.TrimSpace(cfg.DatabaseDSN) == "" {
		return fmt.Errorf("database_dsn is required")
	}
	return nil
}
