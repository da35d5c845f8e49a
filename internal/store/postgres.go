// Package store persists profile-scoped MCP server records and playground
// session logs in Postgres. Sensitive configuration fields are stored only in
// their encrypted form; the store rejects records carrying plaintext.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS mcp_servers (
	id                UUID PRIMARY KEY,
	profile_id        TEXT NOT NULL,
	name              TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	server_type       TEXT NOT NULL,
	command_encrypted TEXT NOT NULL DEFAULT '',
	args_encrypted    TEXT NOT NULL DEFAULT '',
	env_encrypted     TEXT NOT NULL DEFAULT '',
	url_encrypted     TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (profile_id, name)
);

CREATE TABLE IF NOT EXISTS play_sessions (
	id         UUID PRIMARY KEY,
	profile_id TEXT NOT NULL,
	started_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	ended_at   TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS session_logs (
	id         UUID PRIMARY KEY,
	session_id UUID NOT NULL REFERENCES play_sessions(id) ON DELETE CASCADE,
	profile_id TEXT NOT NULL,
	log_type   TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS session_logs_session_idx ON session_logs (session_id, created_at);
`

// Store wraps a pgx connection pool.
// Open should be used to create instances of Store.
type Store struct {
	pool   *pgxpool.Pool
	logger hclog.Logger
}

// Open connects to Postgres and verifies the connection with a bounded ping.
func Open(ctx context.Context, dsn string, logger hclog.Logger) (*Store, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{
		pool:   pool,
		logger: logger.Named("store"),
	}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the tables if they do not exist. The statements are
// idempotent, so running this on every daemon start is safe.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
