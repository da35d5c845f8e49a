package daemon

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/pluggedin/pluggedin/internal/config"
	"github.com/pluggedin/pluggedin/internal/secret"
	"github.com/pluggedin/pluggedin/internal/store"
)

func TestNewDaemon_Validation(t *testing.T) {
	t.Parallel()

	logger := hclog.NewNullLogger()
	codec, err := secret.NewCodec("test-base-secret", logger)
	require.NoError(t, err)
	cfg := &config.Config{APIAddr: config.DefaultAPIAddr}
	st := &store.Store{}

	tests := []struct {
		name      string
		logger    hclog.Logger
		cfg       *config.Config
		store     *store.Store
		codec     *secret.Codec
		profileID string
		errMsg    string
	}{
		{
			name:   "nil logger",
			cfg:    cfg, store: st, codec: codec, profileID: "p1",
			errMsg: "logger cannot be nil",
		},
		{
			name:   "nil config",
			logger: logger, store: st, codec: codec, profileID: "p1",
			errMsg: "config cannot be nil",
		},
		{
			name:   "nil store",
			logger: logger, cfg: cfg, codec: codec, profileID: "p1",
			errMsg: "store cannot be nil",
		},
		{
			name:   "nil codec",
			logger: logger, cfg: cfg, store: st, profileID: "p1",
			errMsg: "codec cannot be nil",
		},
		{
			name:   "empty profile",
			logger: logger, cfg: cfg, store: st, codec: codec,
			errMsg: "profile id cannot be empty",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewDaemon(tc.logger, tc.cfg, tc.store, tc.codec, tc.profileID)
			require.Error(t, err)
			require.EqualError(t, err, tc.errMsg)
		})
	}
}

func TestNewDaemon(t *testing.T) {
	t.Parallel()

	codec, err := secret.NewCodec("test-base-secret", hclog.NewNullLogger())
	require.NoError(t, err)

	d, err := NewDaemon(hclog.NewNullLogger(), &config.Config{APIAddr: config.DefaultAPIAddr}, &store.Store{}, codec, "p1")
	require.NoError(t, err)
	require.NotNil(t, d.clientManager)
}
