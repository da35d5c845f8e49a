package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pluggedin/pluggedin/internal/contracts"
	"github.com/pluggedin/pluggedin/internal/domain"
	interrors "github.com/pluggedin/pluggedin/internal/errors"
	"github.com/pluggedin/pluggedin/internal/secret"
)

// UpsertServerRequest carries a plaintext server configuration. The handler
// encrypts the sensitive fields before anything reaches the store.
type UpsertServerRequest struct {
	Profile string `path:"profile" doc:"Profile ID that owns the server"`
	Body    struct {
		Name        string              `json:"name" doc:"Name of the MCP server" example:"github"`
		Description string              `json:"description,omitempty" doc:"Free-form description"`
		Type        string              `json:"type" enum:"stdio,sse,streamable_http" doc:"Transport type"`
		Config      domain.ServerConfig `json:"config" doc:"Plaintext server configuration"`
	}
}

// ServerResponse contains a single server record with its configuration
// decrypted for the owning profile.
type ServerResponse struct {
	Body domain.ServerRecord
}

// ServerListResponse contains all server records for a profile.
type ServerListResponse struct {
	Body []domain.ServerRecord
}

// ShareResponse contains the sanitized, credential-free template for a server.
type ShareResponse struct {
	Body secret.SharedTemplate
}

// RegisterServerRoutes registers the profile-scoped server endpoints under
// the given prefix.
func RegisterServerRoutes(
	routerAPI huma.API,
	servers contracts.ServerStore,
	codec *secret.Codec,
	apiPathPrefix string,
) {
	serverAPI := huma.NewGroup(routerAPI, apiPathPrefix)

	huma.Register(serverAPI, huma.Operation{
		OperationID: "upsertServer",
		Method:      http.MethodPut,
		Path:        "/servers",
		Summary:     "Create or update an MCP server for a profile",
		Tags:        []string{"Servers"},
	}, func(ctx context.Context, input *UpsertServerRequest) (*ServerResponse, error) {
		return handleUpsertServer(ctx, servers, codec, input)
	})

	huma.Register(serverAPI, huma.Operation{
		OperationID: "listServers",
		Method:      http.MethodGet,
		Path:        "/servers",
		Summary:     "List the profile's MCP servers with decrypted configs",
		Tags:        []string{"Servers"},
	}, func(ctx context.Context, input *struct {
		Profile string `path:"profile" doc:"Profile ID"`
	}) (*ServerListResponse, error) {
		return handleListServers(ctx, servers, codec, input.Profile)
	})

	huma.Register(serverAPI, huma.Operation{
		OperationID: "getServer",
		Method:      http.MethodGet,
		Path:        "/servers/{name}",
		Summary:     "Get one MCP server with its decrypted config",
		Tags:        []string{"Servers"},
	}, func(ctx context.Context, input *struct {
		Profile string `path:"profile" doc:"Profile ID"`
		Name    string `path:"name" doc:"Name of the MCP server"`
	}) (*ServerResponse, error) {
		return handleGetServer(ctx, servers, codec, input.Profile, input.Name)
	})

	huma.Register(serverAPI, huma.Operation{
		OperationID: "removeServer",
		Method:      http.MethodDelete,
		Path:        "/servers/{name}",
		Summary:     "Remove an MCP server from a profile",
		Tags:        []string{"Servers"},
	}, func(ctx context.Context, input *struct {
		Profile string `path:"profile" doc:"Profile ID"`
		Name    string `path:"name" doc:"Name of the MCP server"`
	}) (*struct{}, error) {
		return nil, servers.RemoveServer(ctx, input.Profile, input.Name)
	})

	huma.Register(serverAPI, huma.Operation{
		OperationID: "shareServer",
		Method:      http.MethodGet,
		Path:        "/servers/{name}/share",
		Summary:     "Export a credential-free template for sharing",
		Tags:        []string{"Servers"},
	}, func(ctx context.Context, input *struct {
		Profile string `path:"profile" doc:"Profile ID"`
		Name    string `path:"name" doc:"Name of the MCP server"`
	}) (*ShareResponse, error) {
		return handleShareServer(ctx, servers, input.Profile, input.Name)
	})
}

func handleUpsertServer(
	ctx context.Context,
	servers contracts.ServerStore,
	codec *secret.Codec,
	input *UpsertServerRequest,
) (*ServerResponse, error) {
	if input.Body.Name == "" {
		return nil, fmt.Errorf("%w: server name cannot be empty", interrors.ErrBadRequest)
	}
	if input.Body.Config.IsEmpty() {
		return nil, fmt.Errorf("%w: server config cannot be empty", interrors.ErrBadRequest)
	}

	enc, err := codec.EncryptRecord(input.Body.Config, input.Profile)
	if err != nil {
		return nil, err
	}

	rec := domain.ServerRecord{
		ProfileID:   input.Profile,
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Type:        domain.ServerType(input.Body.Type),
		Encrypted:   enc,
	}

	id, err := servers.UpsertServer(ctx, rec)
	if err != nil {
		return nil, err
	}

	rec.ID = id
	rec.Config = input.Body.Config

	return &ServerResponse{Body: rec}, nil
}

func handleListServers(
	ctx context.Context,
	servers contracts.ServerStore,
	codec *secret.Codec,
	profileID string,
) (*ServerListResponse, error) {
	recs, err := servers.ListServers(ctx, profileID)
	if err != nil {
		return nil, err
	}

	for i := range recs {
		recs[i].Config = codec.DecryptRecord(recs[i].Encrypted, recs[i].ProfileID)
	}

	return &ServerListResponse{Body: recs}, nil
}

func handleGetServer(
	ctx context.Context,
	servers contracts.ServerStore,
	codec *secret.Codec,
	profileID string,
	name string,
) (*ServerResponse, error) {
	rec, err := servers.Server(ctx, profileID, name)
	if err != nil {
		return nil, err
	}

	rec.Config = codec.DecryptRecord(rec.Encrypted, rec.ProfileID)

	return &ServerResponse{Body: rec}, nil
}

func handleShareServer(
	ctx context.Context,
	servers contracts.ServerStore,
	profileID string,
	name string,
) (*ShareResponse, error) {
	rec, err := servers.Server(ctx, profileID, name)
	if err != nil {
		return nil, err
	}

	return &ShareResponse{Body: secret.SanitizeForSharing(rec)}, nil
}
