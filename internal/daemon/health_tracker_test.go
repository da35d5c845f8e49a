package daemon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pluggedin/pluggedin/internal/domain"
	"github.com/pluggedin/pluggedin/internal/errors"
)

func TestHealthTracker_SeedsUnknown(t *testing.T) {
	t.Parallel()

	tracker := NewHealthTracker([]string{"github", "filesystem"})

	h, err := tracker.Status("github")
	require.NoError(t, err)
	require.Equal(t, domain.HealthStatusUnknown, h.Status)
	require.Nil(t, h.Latency)
	require.Nil(t, h.LastChecked)
	require.Nil(t, h.LastSuccessful)
}

func TestHealthTracker_Status_Untracked(t *testing.T) {
	t.Parallel()

	tracker := NewHealthTracker(nil)

	_, err := tracker.Status("missing")
	require.ErrorIs(t, err, errors.ErrHealthNotTracked)
}

func TestHealthTracker_Update(t *testing.T) {
	t.Parallel()

	tracker := NewHealthTracker([]string{"github"})
	latency := 8 * time.Millisecond

	require.NoError(t, tracker.Update("github", domain.HealthStatusOK, &latency))

	h, err := tracker.Status("github")
	require.NoError(t, err)
	require.Equal(t, domain.HealthStatusOK, h.Status)
	require.NotNil(t, h.Latency)
	require.Equal(t, latency, *h.Latency)
	require.NotNil(t, h.LastChecked)
	require.NotNil(t, h.LastSuccessful)
}

func TestHealthTracker_Update_FailureKeepsLastSuccessful(t *testing.T) {
	t.Parallel()

	tracker := NewHealthTracker([]string{"github"})
	latency := 8 * time.Millisecond

	require.NoError(t, tracker.Update("github", domain.HealthStatusOK, &latency))
	ok, err := tracker.Status("github")
	require.NoError(t, err)

	require.NoError(t, tracker.Update("github", domain.HealthStatusTimeout, nil))

	h, err := tracker.Status("github")
	require.NoError(t, err)
	require.Equal(t, domain.HealthStatusTimeout, h.Status)
	require.Equal(t, ok.LastSuccessful, h.LastSuccessful)
}

func TestHealthTracker_Update_Untracked(t *testing.T) {
	t.Parallel()

	tracker := NewHealthTracker([]string{"github"})

	err := tracker.Update("missing", domain.HealthStatusOK, nil)
	require.ErrorIs(t, err, errors.ErrHealthNotTracked)
}

func TestHealthTracker_List_SortedByName(t *testing.T) {
	t.Parallel()

	tracker := NewHealthTracker([]string{"zeta", "Alpha", "mid"})

	list := tracker.List()
	require.Len(t, list, 3)
	require.Equal(t, "Alpha", list[0].Name)
	require.Equal(t, "mid", list[1].Name)
	require.Equal(t, "zeta", list[2].Name)
}
