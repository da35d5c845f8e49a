package secret

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pluggedin/pluggedin/internal/domain"
)

func TestCodec_EncryptRecord(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)

	tc := []struct {
		name        string
		cfg         domain.ServerConfig
		wantCommand bool
		wantArgs    bool
		wantEnv     bool
		wantURL     bool
	}{
		{
			name: "all fields present",
			cfg: domain.ServerConfig{
				Command: "uvx",
				Args:    []string{"mcp-server-time"},
				Env:     map[string]string{"TZ": "UTC"},
				URL:     "https://example.com/sse",
			},
			wantCommand: true,
			wantArgs:    true,
			wantEnv:     true,
			wantURL:     true,
		},
		{
			name: "empty env map stays absent",
			cfg: domain.ServerConfig{
				Command: "npx",
				Env:     map[string]string{},
			},
			wantCommand: true,
		},
		{
			name: "url only",
			cfg: domain.ServerConfig{
				URL: "https://example.com/mcp",
			},
			wantURL: true,
		},
		{
			name: "nothing to encrypt",
			cfg:  domain.ServerConfig{},
		},
	}

	for _, testCase := range tc {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			enc, err := codec.EncryptRecord(testCase.cfg, "profile-1")
			require.NoError(t, err)

			require.Equal(t, testCase.wantCommand, enc.Command != "")
			require.Equal(t, testCase.wantArgs, enc.Args != "")
			require.Equal(t, testCase.wantEnv, enc.Env != "")
			require.Equal(t, testCase.wantURL, enc.URL != "")
		})
	}
}

func TestCodec_RecordRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)

	cfg := domain.ServerConfig{
		Command: "npx",
		Args:    []string{"-y", "@anaisbetts/mcp-installer"},
		Env:     map[string]string{"API_KEY": "top-secret"},
		URL:     "https://example.com/sse",
	}

	enc, err := codec.EncryptRecord(cfg, "profile-1")
	require.NoError(t, err)

	decrypted := codec.DecryptRecord(enc, "profile-1")
	require.Equal(t, cfg, decrypted)
}

func TestCodec_DecryptRecord_FieldFailureIsIsolated(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)

	cfg := domain.ServerConfig{
		Command: "uvx",
		Env:     map[string]string{"API_KEY": "abc"},
		URL:     "https://example.com",
	}

	enc, err := codec.EncryptRecord(cfg, "profile-1")
	require.NoError(t, err)

	// Corrupt env only; command and url must still be recovered.
	enc.Env = "bm90LXZhbGlkLWNpcGhlcnRleHQtYXQtYWxsLXBhZGRlZC1vdXQ="

	decrypted := codec.DecryptRecord(enc, "profile-1")
	require.Equal(t, cfg.Command, decrypted.Command)
	require.Equal(t, cfg.URL, decrypted.URL)
	require.Nil(t, decrypted.Env)
}

func TestCodec_DecryptRecord_WrongProfileDegradesAllFields(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)

	enc, err := codec.EncryptRecord(domain.ServerConfig{
		Command: "uvx",
		Args:    []string{"mcp-server-git"},
	}, "profile-1")
	require.NoError(t, err)

	decrypted := codec.DecryptRecord(enc, "profile-2")
	require.True(t, decrypted.IsEmpty())
}
