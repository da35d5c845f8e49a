package secret

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pluggedin/pluggedin/internal/domain"
)

func TestSanitizeForSharing(t *testing.T) {
	t.Parallel()

	tc := []struct {
		name       string
		rec        domain.ServerRecord
		wantFields []string
	}{
		{
			name: "plaintext fields are reported as required",
			rec: domain.ServerRecord{
				Name: "filesystem",
				Type: domain.ServerTypeStdio,
				Config: domain.ServerConfig{
					Command: "npx",
					Args:    []string{"-y", "@modelcontextprotocol/server-filesystem"},
					Env:     map[string]string{"API_KEY": "secret"},
				},
			},
			wantFields: []string{"command", "args", "env"},
		},
		{
			name: "encrypted fields are reported as required",
			rec: domain.ServerRecord{
				Name: "remote",
				Type: domain.ServerTypeSSE,
				Encrypted: domain.EncryptedServerConfig{
					URL: "c29tZS1jaXBoZXJ0ZXh0",
				},
			},
			wantFields: []string{"url"},
		},
		{
			name: "no sensitive fields",
			rec: domain.ServerRecord{
				Name: "bare",
				Type: domain.ServerTypeStdio,
			},
			wantFields: nil,
		},
	}

	for _, testCase := range tc {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tmpl := SanitizeForSharing(testCase.rec)

			require.Equal(t, testCase.rec.Name, tmpl.Name)
			require.True(t, tmpl.RequiresCredentials)
			require.Equal(t, testCase.wantFields, tmpl.RequiredFields)
		})
	}
}

func TestSanitizeForSharing_NoSecretMaterialInOutput(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)

	cfg := domain.ServerConfig{
		Command: "npx",
		Env:     map[string]string{"API_KEY": "super-secret-value"},
	}
	enc, err := codec.EncryptRecord(cfg, "profile-1")
	require.NoError(t, err)

	tmpl := SanitizeForSharing(domain.ServerRecord{
		Name:      "shared",
		Type:      domain.ServerTypeStdio,
		Config:    cfg,
		Encrypted: enc,
	})

	out, err := json.Marshal(tmpl)
	require.NoError(t, err)

	require.NotContains(t, string(out), "super-secret-value")
	require.NotContains(t, string(out), enc.Command)
	require.NotContains(t, string(out), enc.Env)
}
