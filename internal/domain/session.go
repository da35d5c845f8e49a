package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	LogTypeInfo       LogType = "info"
	LogTypeError      LogType = "error"
	LogTypeConnection LogType = "connection"
	LogTypeExecution  LogType = "execution"
	LogTypeResponse   LogType = "response"
)

// LogType classifies a session log entry.
type LogType string

// SessionLog records a single line of server-side execution output for a
// playground session, used for replay and for partial-message streaming.
type SessionLog struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"sessionId"`
	ProfileID string    `json:"profileId"`
	Type      LogType   `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is one playground conversation scoped to a profile.
type Session struct {
	ID        uuid.UUID  `json:"id"`
	ProfileID string     `json:"profileId"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

// FetchResult is the payload returned by one log fetch: the full ordered log
// tail for a session plus whether any entry carries a partial assistant message.
type FetchResult struct {
	Logs              []SessionLog `json:"logs"`
	HasPartialMessage bool         `json:"hasPartialMessage"`
}
