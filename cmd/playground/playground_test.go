package playground

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pluggedin/pluggedin/internal/config"
	"github.com/pluggedin/pluggedin/internal/domain"
	"github.com/pluggedin/pluggedin/internal/playground"
)

func TestPollOptions(t *testing.T) {
	t.Parallel()

	tc := []struct {
		name string
		cfg  config.PollConfig
		want int
	}{
		{
			name: "empty config adds nothing",
			cfg:  config.PollConfig{},
			want: 0,
		},
		{
			name: "thinking interval only",
			cfg:  config.PollConfig{ThinkingInterval: config.Duration(100 * time.Millisecond)},
			want: 1,
		},
		{
			name: "all knobs set",
			cfg: config.PollConfig{
				ThinkingInterval: config.Duration(100 * time.Millisecond),
				BaselineInterval: config.Duration(2 * time.Second),
				Step:             config.Duration(500 * time.Millisecond),
			},
			want: 3,
		},
	}

	for _, testCase := range tc {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			opts := pollOptions(testCase.cfg)
			require.Len(t, opts, testCase.want)

			_, err := playground.NewOptions(opts...)
			require.NoError(t, err)
		})
	}
}

func TestParseChatMessage(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tc := []struct {
		name     string
		entry    domain.SessionLog
		wantOK   bool
		wantRole domain.Role
	}{
		{
			name: "final response",
			entry: domain.SessionLog{
				Type:      domain.LogTypeResponse,
				Message:   `{"role":"ai","content":"done"}`,
				CreatedAt: created,
			},
			wantOK:   true,
			wantRole: domain.RoleAI,
		},
		{
			name: "partial message on any log type",
			entry: domain.SessionLog{
				Type:      domain.LogTypeInfo,
				Message:   `{"content":"thinking...","isPartial":true}`,
				CreatedAt: created,
			},
			wantOK:   true,
			wantRole: domain.RoleAI,
		},
		{
			name: "human message",
			entry: domain.SessionLog{
				Type:      domain.LogTypeResponse,
				Message:   `{"role":"human","content":"hello"}`,
				CreatedAt: created,
			},
			wantOK:   true,
			wantRole: domain.RoleHuman,
		},
		{
			name: "plain log line",
			entry: domain.SessionLog{
				Type:    domain.LogTypeConnection,
				Message: "connected to filesystem",
			},
			wantOK: false,
		},
		{
			name: "response without role",
			entry: domain.SessionLog{
				Type:    domain.LogTypeResponse,
				Message: `{"content":"no author"}`,
			},
			wantOK: false,
		},
		{
			name: "malformed response payload",
			entry: domain.SessionLog{
				Type:    domain.LogTypeResponse,
				Message: `{"role":`,
			},
			wantOK: false,
		},
	}

	for _, testCase := range tc {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			msg, ok := parseChatMessage(testCase.entry)
			require.Equal(t, testCase.wantOK, ok)
			if !ok {
				return
			}
			require.Equal(t, testCase.wantRole, msg.Role)
			require.Equal(t, created, msg.Timestamp)
		})
	}
}

func TestLastIsFinalResponse(t *testing.T) {
	t.Parallel()

	require.False(t, lastIsFinalResponse(nil))
	require.False(t, lastIsFinalResponse([]domain.Message{
		{Role: domain.RoleHuman, Content: "hi"},
	}))
	require.False(t, lastIsFinalResponse([]domain.Message{
		{Role: domain.RoleAI, Content: "streaming", IsPartial: true},
	}))
	require.True(t, lastIsFinalResponse([]domain.Message{
		{Role: domain.RoleHuman, Content: "hi"},
		{Role: domain.RoleAI, Content: "done"},
	}))
}
