package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ServerTypeStdio          ServerType = "stdio"
	ServerTypeSSE            ServerType = "sse"
	ServerTypeStreamableHTTP ServerType = "streamable_http"
)

// ServerType identifies the transport used to reach an MCP server.
type ServerType string

// ServerConfig is the plaintext shape of the sensitive configuration fields
// belonging to one profile-scoped MCP server. It only ever exists in memory;
// at rest these fields are replaced by their encrypted counterparts.
type ServerConfig struct {
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	URL     string            `json:"url,omitempty"`
}

// IsEmpty reports whether no sensitive field is set.
func (c ServerConfig) IsEmpty() bool {
	return c.Command == "" && len(c.Args) == 0 && len(c.Env) == 0 && c.URL == ""
}

// EncryptedServerConfig holds the at-rest counterparts of ServerConfig.
// Each field is the base64 form of iv || tag || ciphertext, or empty when the
// plaintext field was absent. A field is never present in both forms at once.
type EncryptedServerConfig struct {
	Command string `json:"command_encrypted,omitempty"`
	Args    string `json:"args_encrypted,omitempty"`
	Env     string `json:"env_encrypted,omitempty"`
	URL     string `json:"url_encrypted,omitempty"`
}

// IsEmpty reports whether no encrypted field is set.
func (c EncryptedServerConfig) IsEmpty() bool {
	return c.Command == "" && c.Args == "" && c.Env == "" && c.URL == ""
}

// ServerRecord is a registered MCP server belonging to one profile.
type ServerRecord struct {
	ID          uuid.UUID             `json:"id"`
	ProfileID   string                `json:"profileId"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Type        ServerType            `json:"type"`
	Config      ServerConfig          `json:"config,omitzero"`
	Encrypted   EncryptedServerConfig `json:"-"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}
