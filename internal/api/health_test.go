package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pluggedin/pluggedin/internal/domain"
	interrors "github.com/pluggedin/pluggedin/internal/errors"
)

type fakeMonitor struct {
	health map[string]domain.ServerHealth
}

func (f *fakeMonitor) Status(name string) (domain.ServerHealth, error) {
	h, ok := f.health[name]
	if !ok {
		return domain.ServerHealth{}, interrors.ErrHealthNotTracked
	}
	return h, nil
}

func (f *fakeMonitor) List() []domain.ServerHealth {
	out := make([]domain.ServerHealth, 0, len(f.health))
	for _, h := range f.health {
		out = append(out, h)
	}
	return out
}

func (f *fakeMonitor) Update(name string, status domain.HealthStatus, latency *time.Duration) error {
	return nil
}

func TestHandleHealthStatus(t *testing.T) {
	t.Parallel()

	latency := 12 * time.Millisecond
	now := time.Now().UTC()
	monitor := &fakeMonitor{health: map[string]domain.ServerHealth{
		"github": {
			Name:           "github",
			Status:         domain.HealthStatusOK,
			Latency:        &latency,
			LastChecked:    &now,
			LastSuccessful: &now,
		},
	}}

	resp, err := handleHealthStatus(monitor, "github")
	require.NoError(t, err)
	require.Equal(t, "github", resp.Body.Name)
	require.Equal(t, "ok", resp.Body.Status)
	require.NotNil(t, resp.Body.Latency)
	require.Equal(t, "12ms", *resp.Body.Latency)
}

func TestHandleHealthStatus_Untracked(t *testing.T) {
	t.Parallel()

	monitor := &fakeMonitor{health: map[string]domain.ServerHealth{}}

	_, err := handleHealthStatus(monitor, "missing")
	require.ErrorIs(t, err, interrors.ErrHealthNotTracked)
}

func TestHandleHealthList(t *testing.T) {
	t.Parallel()

	monitor := &fakeMonitor{health: map[string]domain.ServerHealth{
		"a": {Name: "a", Status: domain.HealthStatusUnknown},
		"b": {Name: "b", Status: domain.HealthStatusUnreachable},
	}}

	resp, err := handleHealthList(monitor)
	require.NoError(t, err)
	require.Len(t, resp.Body.Servers, 2)
	for _, h := range resp.Body.Servers {
		require.Nil(t, h.Latency)
	}
}
