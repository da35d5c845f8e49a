package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/pluggedin/pluggedin/internal/contracts"
	"github.com/pluggedin/pluggedin/internal/domain"
	interrors "github.com/pluggedin/pluggedin/internal/errors"
	"github.com/pluggedin/pluggedin/internal/playground"
)

// SessionResponse contains a playground session.
type SessionResponse struct {
	Body domain.Session
}

// SessionLogsResponse contains the ordered log tail for a session plus a
// flag telling pollers whether a partial assistant message is in flight.
type SessionLogsResponse struct {
	Body domain.FetchResult
}

// AppendLogRequest appends one log entry to a session.
type AppendLogRequest struct {
	SessionID string `path:"id" doc:"Session ID"`
	Body      struct {
		Type    string `json:"type" enum:"info,error,connection,execution,response" doc:"Log entry type"`
		Message string `json:"message" doc:"Log line, often a JSON-encoded chat message"`
	}
}

// RegisterSessionRoutes registers the playground session endpoints. Session
// creation lives under the profile prefix; everything else addresses a
// session by id under the session prefix.
func RegisterSessionRoutes(
	routerAPI huma.API,
	sessions contracts.SessionStore,
	sessionPathPrefix string,
	profilePathPrefix string,
) {
	sessionAPI := huma.NewGroup(routerAPI, sessionPathPrefix)
	profileAPI := huma.NewGroup(routerAPI, profilePathPrefix)

	huma.Register(profileAPI, huma.Operation{
		OperationID: "createSession",
		Method:      http.MethodPost,
		Path:        "/sessions",
		Summary:     "Start a playground session for a profile",
		Tags:        []string{"Sessions"},
	}, func(ctx context.Context, input *struct {
		Profile string `path:"profile" doc:"Profile ID"`
	}) (*SessionResponse, error) {
		return handleCreateSession(ctx, sessions, input.Profile)
	})

	huma.Register(sessionAPI, huma.Operation{
		OperationID: "endSession",
		Method:      http.MethodDelete,
		Path:        "/{id}",
		Summary:     "End a playground session",
		Tags:        []string{"Sessions"},
	}, func(ctx context.Context, input *struct {
		SessionID string `path:"id" doc:"Session ID"`
	}) (*struct{}, error) {
		id, err := parseSessionID(input.SessionID)
		if err != nil {
			return nil, err
		}
		return nil, sessions.EndSession(ctx, id)
	})

	huma.Register(sessionAPI, huma.Operation{
		OperationID: "getSessionLogs",
		Method:      http.MethodGet,
		Path:        "/{id}/logs",
		Summary:     "Ordered log tail for a session",
		Tags:        []string{"Sessions"},
	}, func(ctx context.Context, input *struct {
		SessionID string `path:"id" doc:"Session ID"`
	}) (*SessionLogsResponse, error) {
		return handleSessionLogs(ctx, sessions, input.SessionID)
	})

	huma.Register(sessionAPI, huma.Operation{
		OperationID: "appendSessionLog",
		Method:      http.MethodPost,
		Path:        "/{id}/logs",
		Summary:     "Append a log entry to a session",
		Tags:        []string{"Sessions"},
	}, func(ctx context.Context, input *AppendLogRequest) (*struct{}, error) {
		return nil, handleAppendLog(ctx, sessions, input)
	})
}

func handleCreateSession(
	ctx context.Context,
	sessions contracts.SessionStore,
	profileID string,
) (*SessionResponse, error) {
	session, err := sessions.CreateSession(ctx, profileID)
	if err != nil {
		return nil, err
	}

	return &SessionResponse{Body: session}, nil
}

func handleSessionLogs(
	ctx context.Context,
	sessions contracts.SessionStore,
	rawID string,
) (*SessionLogsResponse, error) {
	id, err := parseSessionID(rawID)
	if err != nil {
		return nil, err
	}

	logs, err := sessions.SessionLogs(ctx, id)
	if err != nil {
		return nil, err
	}

	result := domain.FetchResult{Logs: logs}
	for _, entry := range logs {
		if _, ok := playground.ParsePartialMessage(entry); ok {
			result.HasPartialMessage = true
			break
		}
	}

	return &SessionLogsResponse{Body: result}, nil
}

func handleAppendLog(ctx context.Context, sessions contracts.SessionStore, input *AppendLogRequest) error {
	id, err := parseSessionID(input.SessionID)
	if err != nil {
		return err
	}
	if input.Body.Message == "" {
		return fmt.Errorf("%w: log message cannot be empty", interrors.ErrBadRequest)
	}

	return sessions.AppendLog(ctx, domain.SessionLog{
		SessionID: id,
		Type:      domain.LogType(input.Body.Type),
		Message:   input.Body.Message,
	})
}

func parseSessionID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid session id '%s'", interrors.ErrBadRequest, raw)
	}

	return id, nil
}
