// Package contracts declares the interfaces that connect the daemon, the
// stores, and the playground poller without binding them to implementations.
package contracts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/client"

	"github.com/pluggedin/pluggedin/internal/domain"
)

// LogFetcher retrieves the log tail for an active playground session.
// The poller calls this once per tick; implementations own their retry and
// availability semantics.
type LogFetcher interface {
	// FetchLogs returns the ordered log entries for a session.
	FetchLogs(ctx context.Context, sessionID uuid.UUID) (domain.FetchResult, error)
}

// ServerStore persists profile-scoped MCP server records with their
// configuration fields encrypted at rest.
type ServerStore interface {
	// UpsertServer creates or updates a server record, returning its id.
	UpsertServer(ctx context.Context, rec domain.ServerRecord) (uuid.UUID, error)

	// Server returns a single server record by profile and name.
	Server(ctx context.Context, profileID string, name string) (domain.ServerRecord, error)

	// ListServers returns all server records for a profile, ordered by name.
	ListServers(ctx context.Context, profileID string) ([]domain.ServerRecord, error)

	// RemoveServer deletes a server record by profile and name.
	RemoveServer(ctx context.Context, profileID string, name string) error
}

// SessionStore persists playground sessions and their append-only logs.
type SessionStore interface {
	// CreateSession starts a new playground session for a profile.
	CreateSession(ctx context.Context, profileID string) (domain.Session, error)

	// EndSession marks a session as finished.
	EndSession(ctx context.Context, sessionID uuid.UUID) error

	// AppendLog appends one log entry to a session.
	AppendLog(ctx context.Context, entry domain.SessionLog) error

	// SessionLogs returns the ordered log entries for a session.
	SessionLogs(ctx context.Context, sessionID uuid.UUID) ([]domain.SessionLog, error)
}

// MCPHealthMonitor provides a way to interact with the health status of MCP servers.
type MCPHealthMonitor interface {
	// Status returns the health status for a single tracked server.
	Status(name string) (domain.ServerHealth, error)

	// List returns a copy of all known server health records.
	List() []domain.ServerHealth

	// Update records a health check for a tracked server.
	Update(name string, status domain.HealthStatus, latency *time.Duration) error
}

// MCPClientAccessor provides a way to interact with MCP servers through a client.
type MCPClientAccessor interface {
	// Add registers a client by server name.
	Add(name string, c client.MCPClient)

	// Client returns the client for the given server name.
	// It returns a boolean to indicate whether the client was found.
	Client(name string) (client.MCPClient, bool)

	// List returns all known server names.
	List() []string

	// Remove deletes the client by server name.
	Remove(name string)
}
