package server

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pluggedin/pluggedin/internal/domain"
)

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		serverType domain.ServerType
		command    string
		args       []string
		env        []string
		url        string
		expected   domain.ServerConfig
		wantErr    string
	}{
		{
			name:       "stdio with env",
			serverType: domain.ServerTypeStdio,
			command:    "npx",
			args:       []string{"-y", "@modelcontextprotocol/server-github"},
			env:        []string{"GITHUB_TOKEN=ghp_abc"},
			expected: domain.ServerConfig{
				Command: "npx",
				Args:    []string{"-y", "@modelcontextprotocol/server-github"},
				Env:     map[string]string{"GITHUB_TOKEN": "ghp_abc"},
			},
		},
		{
			name:       "env value may contain equals",
			serverType: domain.ServerTypeStdio,
			command:    "uvx",
			env:        []string{"DSN=postgres://u:p@h/db?sslmode=disable"},
			expected: domain.ServerConfig{
				Command: "uvx",
				Env:     map[string]string{"DSN": "postgres://u:p@h/db?sslmode=disable"},
			},
		},
		{
			name:       "sse with url",
			serverType: domain.ServerTypeSSE,
			url:        "https://mcp.example.com/sse",
			expected:   domain.ServerConfig{URL: "https://mcp.example.com/sse"},
		},
		{
			name:       "stdio missing command",
			serverType: domain.ServerTypeStdio,
			wantErr:    "--cmd is required",
		},
		{
			name:       "streamable_http missing url",
			serverType: domain.ServerTypeStreamableHTTP,
			wantErr:    "--url is required",
		},
		{
			name:       "invalid env pair",
			serverType: domain.ServerTypeStdio,
			command:    "npx",
			env:        []string{"NOVALUE"},
			wantErr:    "expected KEY=VALUE",
		},
		{
			name:       "unknown type",
			serverType: domain.ServerType("websocket"),
			command:    "npx",
			wantErr:    "unsupported server type",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := buildConfig(tc.serverType, tc.command, tc.args, tc.env, tc.url)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}
