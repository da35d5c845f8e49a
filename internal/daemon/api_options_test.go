package daemon

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewAPIOptions_Defaults(t *testing.T) {
	t.Parallel()

	opts, err := NewAPIOptions()
	require.NoError(t, err)

	require.False(t, opts.CORS.Enabled)
	require.Equal(t, []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}, opts.CORS.AllowMethods)
	require.Equal(t, []string{"Accept", "Content-Type"}, opts.CORS.AllowedHeaders)
	require.Equal(t, 5*time.Minute, opts.CORS.MaxAge)
	require.Equal(t, 5*time.Second, opts.ShutdownTimeout)
}

func TestWithCORSAllowOrigins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		origins         []string
		expectedEnabled bool
	}{
		{
			name:            "origins enable CORS",
			origins:         []string{"http://localhost:3000"},
			expectedEnabled: true,
		},
		{
			name:            "empty list leaves CORS disabled",
			origins:         nil,
			expectedEnabled: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts, err := NewAPIOptions(WithCORSAllowOrigins(tc.origins))
			require.NoError(t, err)
			require.Equal(t, tc.expectedEnabled, opts.CORS.Enabled)
			require.Equal(t, tc.origins, opts.CORS.AllowOrigins)
		})
	}
}

func TestWithShutdownTimeout(t *testing.T) {
	t.Parallel()

	opts, err := NewAPIOptions(WithShutdownTimeout(10 * time.Second))
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, opts.ShutdownTimeout)

	_, err = NewAPIOptions(WithShutdownTimeout(0))
	require.Error(t, err)
}

func TestNewAPIOptions_NilOptionIgnored(t *testing.T) {
	t.Parallel()

	opts, err := NewAPIOptions(nil)
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, opts.ShutdownTimeout)
}

func TestValidateAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"host and numeric port", "0.0.0.0:12005", false},
		{"empty host", ":8080", false},
		{"named port", "localhost:http", false},
		{"missing port", "localhost", true},
		{"bad port", "localhost:nope", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := validateAddr(tc.addr)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
