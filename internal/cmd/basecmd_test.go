package cmd

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/pluggedin/pluggedin/internal/errors"
	"github.com/pluggedin/pluggedin/internal/flags"
)

func TestBaseCmd_SetLogger(t *testing.T) {
	c := &BaseCmd{}
	logger := hclog.NewNullLogger()

	c.SetLogger(logger)
	require.Equal(t, logger, c.Logger())
}

func TestBaseCmd_Logger_Fallback(t *testing.T) {
	c := &BaseCmd{}

	logger := c.Logger()
	require.NotNil(t, logger)
	require.Equal(t, logger, c.Logger())
}

func TestBaseCmd_CreateCodec_NoSecret(t *testing.T) {
	t.Setenv(flags.EnvVarSecret, "")

	c := &BaseCmd{}
	c.SetLogger(hclog.NewNullLogger())

	_, err := c.CreateCodec()
	require.ErrorIs(t, err, errors.ErrSecretNotConfigured)
}

func TestBaseCmd_CreateCodec(t *testing.T) {
	t.Setenv(flags.EnvVarSecret, "base-secret")

	c := &BaseCmd{}
	c.SetLogger(hclog.NewNullLogger())

	codec, err := c.CreateCodec()
	require.NoError(t, err)
	require.NotNil(t, codec)
}
