package daemon

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"github.com/pluggedin/pluggedin/internal/contracts"
	"github.com/pluggedin/pluggedin/internal/secret"
)

// APIDependencies contains the required external dependencies for the API server.
type APIDependencies struct {
	// Addr specifies the network address to bind (e.g., "0.0.0.0:12005").
	Addr string

	// Servers persists the registered MCP server records.
	Servers contracts.ServerStore

	// Sessions persists playground sessions and their logs.
	Sessions contracts.SessionStore

	// HealthTracker monitors server health status.
	HealthTracker contracts.MCPHealthMonitor

	// Codec decrypts server configuration fields for owner-facing reads.
	Codec *secret.Codec

	// Logger for API server operations.
	Logger hclog.Logger
}

// Validate ensures all required dependencies are provided and valid.
func (d APIDependencies) Validate() error {
	if err := validateAddr(d.Addr); err != nil {
		return fmt.Errorf("invalid API address '%s': %w", d.Addr, err)
	}
	if d.Servers == nil || reflect.ValueOf(d.Servers).IsNil() {
		return fmt.Errorf("server store cannot be nil")
	}
	if d.Sessions == nil || reflect.ValueOf(d.Sessions).IsNil() {
		return fmt.Errorf("session store cannot be nil")
	}
	if d.HealthTracker == nil || reflect.ValueOf(d.HealthTracker).IsNil() {
		return fmt.Errorf("health tracker cannot be nil")
	}
	if d.Codec == nil {
		return fmt.Errorf("codec cannot be nil")
	}
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}
	return nil
}
