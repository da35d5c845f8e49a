package store

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pluggedin/pluggedin/internal/domain"
	"github.com/pluggedin/pluggedin/internal/errors"
)

// UpsertServer creates or updates a server record, keyed by (profile, name).
// Records must arrive with their sensitive fields already encrypted; the
// plaintext never touches the database.
func (s *Store) UpsertServer(ctx context.Context, rec domain.ServerRecord) (uuid.UUID, error) {
	if strings.TrimSpace(rec.ProfileID) == "" {
		return uuid.Nil, fmt.Errorf("%w: profile id cannot be empty", errors.ErrBadRequest)
	}
	if strings.TrimSpace(rec.Name) == "" {
		return uuid.Nil, fmt.Errorf("%w: server name cannot be empty", errors.ErrBadRequest)
	}
	if !rec.Config.IsEmpty() {
		return uuid.Nil, fmt.Errorf("%w: sensitive fields must be encrypted before persistence", errors.ErrBadRequest)
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO mcp_servers (id, profile_id, name, description, server_type,
			command_encrypted, args_encrypted, env_encrypted, url_encrypted)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (profile_id, name) DO UPDATE SET
			description=EXCLUDED.description,
			server_type=EXCLUDED.server_type,
			command_encrypted=EXCLUDED.command_encrypted,
			args_encrypted=EXCLUDED.args_encrypted,
			env_encrypted=EXCLUDED.env_encrypted,
			url_encrypted=EXCLUDED.url_encrypted,
			updated_at=now()
	`, rec.ID, rec.ProfileID, rec.Name, rec.Description, string(rec.Type),
		rec.Encrypted.Command, rec.Encrypted.Args, rec.Encrypted.Env, rec.Encrypted.URL,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert server '%s': %w", rec.Name, err)
	}

	return rec.ID, nil
}

// Server returns a single server record by profile and name.
func (s *Store) Server(ctx context.Context, profileID string, name string) (domain.ServerRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, profile_id, name, description, server_type,
			command_encrypted, args_encrypted, env_encrypted, url_encrypted,
			created_at, updated_at
		FROM mcp_servers
		WHERE profile_id=$1 AND name=$2
	`, profileID, name)

	rec, err := scanServer(row)
	if err != nil {
		if stdErrors.Is(err, pgx.ErrNoRows) {
			return domain.ServerRecord{}, fmt.Errorf("%w: %s", errors.ErrServerNotFound, name)
		}
		return domain.ServerRecord{}, fmt.Errorf("failed to load server '%s': %w", name, err)
	}

	return rec, nil
}

// ListServers returns all server records for a profile, ordered by name.
func (s *Store) ListServers(ctx context.Context, profileID string) ([]domain.ServerRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, profile_id, name, description, server_type,
			command_encrypted, args_encrypted, env_encrypted, url_encrypted,
			created_at, updated_at
		FROM mcp_servers
		WHERE profile_id=$1
		ORDER BY name
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	defer rows.Close()

	var out []domain.ServerRecord
	for rows.Next() {
		rec, err := scanServer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan server row: %w", err)
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

// RemoveServer deletes a server record by profile and name.
func (s *Store) RemoveServer(ctx context.Context, profileID string, name string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM mcp_servers WHERE profile_id=$1 AND name=$2
	`, profileID, name)
	if err != nil {
		return fmt.Errorf("failed to remove server '%s': %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", errors.ErrServerNotFound, name)
	}

	return nil
}

func scanServer(row pgx.Row) (domain.ServerRecord, error) {
	var (
		rec        domain.ServerRecord
		serverType string
	)

	err := row.Scan(
		&rec.ID, &rec.ProfileID, &rec.Name, &rec.Description, &serverType,
		&rec.Encrypted.Command, &rec.Encrypted.Args, &rec.Encrypted.Env, &rec.Encrypted.URL,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return domain.ServerRecord{}, err
	}

	rec.Type = domain.ServerType(serverType)
	return rec, nil
}
