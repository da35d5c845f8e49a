package playground

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScrollKeeper_RestoresWhenUserHasNotTakenControl(t *testing.T) {
	t.Parallel()

	var keeper ScrollKeeper

	keeper.Capture(42)
	offset, restored := keeper.Restore(100)

	require.True(t, restored)
	require.Equal(t, 42, offset)
}

func TestScrollKeeper_StandsAsideWhenUserControlled(t *testing.T) {
	t.Parallel()

	var keeper ScrollKeeper
	keeper.NoteUserScroll(false) // scrolled away from the bottom

	keeper.Capture(42)
	offset, restored := keeper.Restore(100)

	require.False(t, restored)
	require.Equal(t, 100, offset)
}

func TestScrollKeeper_ControlReturnsAtBottom(t *testing.T) {
	t.Parallel()

	var keeper ScrollKeeper

	keeper.NoteUserScroll(false)
	require.True(t, keeper.UserControlled())

	keeper.NoteUserScroll(true)
	require.False(t, keeper.UserControlled())
}

func TestScrollKeeper_CaptureIsSingleUse(t *testing.T) {
	t.Parallel()

	var keeper ScrollKeeper

	keeper.Capture(7)
	_, restored := keeper.Restore(0)
	require.True(t, restored)

	// Without a fresh capture there is nothing to restore.
	offset, restored := keeper.Restore(55)
	require.False(t, restored)
	require.Equal(t, 55, offset)
}
