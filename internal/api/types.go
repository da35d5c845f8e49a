package api

import (
	"time"

	"github.com/pluggedin/pluggedin/internal/domain"
)

// ServerHealth is the wire form of a server health record. Latency is
// rendered as a human readable duration string.
type ServerHealth struct {
	Name           string     `json:"name" doc:"Name of the MCP server" example:"github"`
	Status         string     `json:"status" doc:"Health status" example:"ok"`
	Latency        *string    `json:"latency,omitempty" doc:"Round trip time of the last successful ping" example:"12ms"`
	LastChecked    *time.Time `json:"lastChecked,omitempty" doc:"Time of the last health check"`
	LastSuccessful *time.Time `json:"lastSuccessful,omitempty" doc:"Time of the last successful health check"`
}

// ServersHealth wraps the health records for all tracked servers.
type ServersHealth struct {
	Servers []ServerHealth `json:"servers"`
}

// NewServerHealth converts a domain health record into its wire form.
func NewServerHealth(h domain.ServerHealth) ServerHealth {
	out := ServerHealth{
		Name:           h.Name,
		Status:         string(h.Status),
		LastChecked:    h.LastChecked,
		LastSuccessful: h.LastSuccessful,
	}
	if h.Latency != nil {
		latency := h.Latency.String()
		out.Latency = &latency
	}

	return out
}
