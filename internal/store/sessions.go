package store

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pluggedin/pluggedin/internal/domain"
	"github.com/pluggedin/pluggedin/internal/errors"
)

// CreateSession starts a new playground session for a profile.
func (s *Store) CreateSession(ctx context.Context, profileID string) (domain.Session, error) {
	if strings.TrimSpace(profileID) == "" {
		return domain.Session{}, fmt.Errorf("%w: profile id cannot be empty", errors.ErrBadRequest)
	}

	session := domain.Session{
		ID:        uuid.New(),
		ProfileID: profileID,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO play_sessions (id, profile_id, started_at) VALUES ($1,$2,$3)
	`, session.ID, session.ProfileID, session.StartedAt)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// EndSession marks a session as finished. Ending an already-ended session is
// a no-op, not an error.
func (s *Store) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE play_sessions SET ended_at=now() WHERE id=$1 AND ended_at IS NULL
	`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := s.pool.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM play_sessions WHERE id=$1)
		`, sessionID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check session: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: %s", errors.ErrSessionNotFound, sessionID)
		}
	}

	return nil
}

// AppendLog appends one log entry to a session.
func (s *Store) AppendLog(ctx context.Context, entry domain.SessionLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO session_logs (id, session_id, profile_id, log_type, message, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, entry.ID, entry.SessionID, entry.ProfileID, string(entry.Type), entry.Message, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append session log: %w", err)
	}

	return nil
}

// SessionLogs returns the ordered log entries for a session.
func (s *Store) SessionLogs(ctx context.Context, sessionID uuid.UUID) ([]domain.SessionLog, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM play_sessions WHERE id=$1)
	`, sessionID).Scan(&exists)
	if err != nil && !stdErrors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", errors.ErrSessionNotFound, sessionID)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, profile_id, log_type, message, created_at
		FROM session_logs
		WHERE session_id=$1
		ORDER BY created_at, id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session logs: %w", err)
	}
	defer rows.Close()

	var out []domain.SessionLog
	for rows.Next() {
		var (
			entry   domain.SessionLog
			logType string
		)
		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.ProfileID, &logType, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session log row: %w", err)
		}
		entry.Type = domain.LogType(logType)
		out = append(out, entry)
	}

	return out, rows.Err()
}
