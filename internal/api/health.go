// Package api declares the HTTP surface of the daemon. Handlers translate
// between wire shapes and domain types and return domain errors for the
// server's error mapper to convert.
package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pluggedin/pluggedin/internal/contracts"
)

// HealthListResponse contains the health of all tracked MCP servers.
type HealthListResponse struct {
	Body ServersHealth
}

// HealthResponse contains the health of a single MCP server.
type HealthResponse struct {
	Body ServerHealth
}

// RegisterHealthRoutes registers the health endpoints under the given prefix.
func RegisterHealthRoutes(routerAPI huma.API, monitor contracts.MCPHealthMonitor, apiPathPrefix string) {
	healthAPI := huma.NewGroup(routerAPI, apiPathPrefix)

	huma.Register(healthAPI, huma.Operation{
		OperationID: "listServerHealth",
		Method:      http.MethodGet,
		Path:        "/servers",
		Summary:     "Health of all registered MCP servers",
		Tags:        []string{"Health"},
	}, func(_ context.Context, _ *struct{}) (*HealthListResponse, error) {
		return handleHealthList(monitor)
	})

	huma.Register(healthAPI, huma.Operation{
		OperationID: "getServerHealth",
		Method:      http.MethodGet,
		Path:        "/servers/{name}",
		Summary:     "Health of a single MCP server",
		Tags:        []string{"Health"},
	}, func(_ context.Context, input *struct {
		Name string `path:"name" doc:"Name of the MCP server" example:"github"`
	}) (*HealthResponse, error) {
		return handleHealthStatus(monitor, input.Name)
	})
}

func handleHealthList(monitor contracts.MCPHealthMonitor) (*HealthListResponse, error) {
	tracked := monitor.List()

	results := make([]ServerHealth, 0, len(tracked))
	for _, h := range tracked {
		results = append(results, NewServerHealth(h))
	}

	return &HealthListResponse{Body: ServersHealth{Servers: results}}, nil
}

func handleHealthStatus(monitor contracts.MCPHealthMonitor, name string) (*HealthResponse, error) {
	h, err := monitor.Status(name)
	if err != nil {
		return nil, err
	}

	return &HealthResponse{Body: NewServerHealth(h)}, nil
}
