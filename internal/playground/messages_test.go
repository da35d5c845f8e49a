package playground

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pluggedin/pluggedin/internal/domain"
)

func TestParsePartialMessage(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	tc := []struct {
		name        string
		message     string
		wantOK      bool
		wantContent string
	}{
		{
			name:        "partial message payload",
			message:     `{"role":"ai","content":"Thinking about","isPartial":true}`,
			wantOK:      true,
			wantContent: "Thinking about",
		},
		{
			name:        "key order does not matter",
			message:     `{"isPartial":true,"content":"reordered","role":"ai"}`,
			wantOK:      true,
			wantContent: "reordered",
		},
		{
			name:    "explicit false is not a partial",
			message: `{"role":"ai","content":"done","isPartial":false}`,
			wantOK:  false,
		},
		{
			name:    "plain log line without the marker field",
			message: "Connected to MCP server: filesystem",
			wantOK:  false,
		},
		{
			name:    "marker substring but not valid JSON",
			message: `log mentioning isPartial in passing`,
			wantOK:  false,
		},
	}

	for _, testCase := range tc {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			msg, ok := ParsePartialMessage(domain.SessionLog{
				Type:      domain.LogTypeResponse,
				Message:   testCase.message,
				CreatedAt: now,
			})

			require.Equal(t, testCase.wantOK, ok)
			if !testCase.wantOK {
				return
			}
			require.Equal(t, testCase.wantContent, msg.Content)
			require.True(t, msg.IsPartial)
			require.Equal(t, domain.RoleAI, msg.Role)
			require.Equal(t, now, msg.Timestamp)
		})
	}
}

func TestMessageList_AtMostOnePartial(t *testing.T) {
	t.Parallel()

	var list MessageList
	list.Append(domain.Message{Role: domain.RoleHuman, Content: "hello"})
	list.Append(domain.Message{Role: domain.RoleAI, Content: "Thi", IsPartial: true})
	list.Append(domain.Message{Role: domain.RoleHuman, Content: "impatient follow-up"})

	// A second partial replaces the first in place, at its original position.
	list.Append(domain.Message{Role: domain.RoleAI, Content: "Thinking ab", IsPartial: true})

	msgs := list.Messages()
	require.Len(t, msgs, 3)

	partials := 0
	for _, m := range msgs {
		if m.IsPartial {
			partials++
		}
	}
	require.Equal(t, 1, partials)
	require.Equal(t, 1, list.PartialIndex())
	require.Equal(t, "Thinking ab", msgs[1].Content)
}

func TestMessageList_FinalResponseReplacesPartial(t *testing.T) {
	t.Parallel()

	var list MessageList
	list.Append(domain.Message{Role: domain.RoleHuman, Content: "question"})
	list.Append(domain.Message{Role: domain.RoleAI, Content: "partial ans", IsPartial: true})
	list.Append(domain.Message{Role: domain.RoleAI, Content: "full answer"})

	msgs := list.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, "full answer", msgs[1].Content)
	require.False(t, msgs[1].IsPartial)
	require.Equal(t, -1, list.PartialIndex())
}

func TestMessageList_ToolMessagesAppendNormally(t *testing.T) {
	t.Parallel()

	var list MessageList
	list.Append(domain.Message{Role: domain.RoleAI, Content: "calling tool", IsPartial: true})
	list.Append(domain.Message{Role: domain.RoleTool, Content: "tool output"})

	// A tool message never collapses into the partial slot.
	require.Equal(t, 2, list.Len())
	require.Equal(t, 0, list.PartialIndex())
}
