package daemon

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/pluggedin/pluggedin/internal/contracts"
	"github.com/pluggedin/pluggedin/internal/domain"
	"github.com/pluggedin/pluggedin/internal/secret"
)

type stubServerStore struct{}

func (stubServerStore) UpsertServer(context.Context, domain.ServerRecord) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (stubServerStore) Server(context.Context, string, string) (domain.ServerRecord, error) {
	return domain.ServerRecord{}, nil
}

func (stubServerStore) ListServers(context.Context, string) ([]domain.ServerRecord, error) {
	return nil, nil
}

func (stubServerStore) RemoveServer(context.Context, string, string) error {
	return nil
}

type stubSessionStore struct{}

func (stubSessionStore) CreateSession(context.Context, string) (domain.Session, error) {
	return domain.Session{}, nil
}

func (stubSessionStore) EndSession(context.Context, uuid.UUID) error {
	return nil
}

func (stubSessionStore) AppendLog(context.Context, domain.SessionLog) error {
	return nil
}

func (stubSessionStore) SessionLogs(context.Context, uuid.UUID) ([]domain.SessionLog, error) {
	return nil, nil
}

func validAPIDependencies(t *testing.T) APIDependencies {
	t.Helper()

	codec, err := secret.NewCodec("test-base-secret", hclog.NewNullLogger())
	require.NoError(t, err)

	return APIDependencies{
		Addr:          "localhost:12005",
		Servers:       stubServerStore{},
		Sessions:      stubSessionStore{},
		HealthTracker: NewHealthTracker(nil),
		Codec:         codec,
		Logger:        hclog.NewNullLogger(),
	}
}

func TestAPIDependencies_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validAPIDependencies(t).Validate())
}

func TestAPIDependencies_Validate_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*APIDependencies)
	}{
		{
			name:   "bad address",
			mutate: func(d *APIDependencies) { d.Addr = "no-port" },
		},
		{
			name:   "nil server store",
			mutate: func(d *APIDependencies) { d.Servers = nil },
		},
		{
			name:   "nil session store",
			mutate: func(d *APIDependencies) { d.Sessions = nil },
		},
		{
			name:   "nil health tracker",
			mutate: func(d *APIDependencies) { d.HealthTracker = (*HealthTracker)(nil) },
		},
		{
			name:   "nil codec",
			mutate: func(d *APIDependencies) { d.Codec = nil },
		},
		{
			name:   "nil logger",
			mutate: func(d *APIDependencies) { d.Logger = nil },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			deps := validAPIDependencies(t)
			tc.mutate(&deps)
			require.Error(t, deps.Validate())
		})
	}
}

func TestNewAPIServer_InvalidDependencies(t *testing.T) {
	t.Parallel()

	deps := validAPIDependencies(t)
	deps.Servers = nil

	_, err := NewAPIServer(deps)
	require.Error(t, err)
}

var _ contracts.ServerStore = stubServerStore{}
var _ contracts.SessionStore = stubSessionStore{}
