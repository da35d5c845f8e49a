package server

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pluggedin/pluggedin/internal/domain"
)

func TestMissingRequiredFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		required []string
		cfg      domain.ServerConfig
		expected []string
	}{
		{
			name:     "all provided",
			required: []string{"command", "env"},
			cfg: domain.ServerConfig{
				Command: "npx",
				Env:     map[string]string{"TOKEN": "x"},
			},
			expected: nil,
		},
		{
			name:     "env missing",
			required: []string{"command", "env"},
			cfg:      domain.ServerConfig{Command: "npx"},
			expected: []string{"env"},
		},
		{
			name:     "url missing",
			required: []string{"url"},
			cfg:      domain.ServerConfig{},
			expected: []string{"url"},
		},
		{
			name:     "nothing required",
			required: nil,
			cfg:      domain.ServerConfig{},
			expected: nil,
		},
		{
			name:     "args missing",
			required: []string{"args"},
			cfg:      domain.ServerConfig{Command: "npx"},
			expected: []string{"args"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := missingRequiredFields(tc.required, tc.cfg)
			require.Equal(t, tc.expected, got)
		})
	}
}
