package playground

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/pluggedin/pluggedin/internal/domain"
)

// partialFieldName is the JSON field that marks a log entry as carrying an
// in-progress assistant message. It is used as a cheap substring pre-filter
// before parsing, so only candidate lines pay for a JSON decode.
const partialFieldName = "isPartial"

// ParsePartialMessage extracts an in-progress assistant message from a log
// entry, if the entry carries one. Detection parses the candidate payload and
// checks the decoded field rather than matching raw JSON syntax, so it is
// insensitive to key order and formatting.
func ParsePartialMessage(entry domain.SessionLog) (domain.Message, bool) {
	if !strings.Contains(entry.Message, partialFieldName) {
		return domain.Message{}, false
	}

	var msg domain.Message
	if err := json.Unmarshal([]byte(entry.Message), &msg); err != nil {
		return domain.Message{}, false
	}
	if !msg.IsPartial {
		return domain.Message{}, false
	}

	if msg.Role == "" {
		msg.Role = domain.RoleAI
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = entry.CreatedAt
	}

	return msg, true
}

// MessageList holds a playground conversation and enforces the partial
// message invariant: at most one message is partial at any time, and an
// incoming partial replaces the existing one in place rather than appending.
// It is safe for concurrent use.
type MessageList struct {
	mu   sync.RWMutex
	msgs []domain.Message
}

// Append adds a message to the end of the list. If the message is partial, or
// finalizes an in-flight assistant response, it is merged against any existing
// partial instead of appended.
func (l *MessageList) Append(msg domain.Message) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.partialIndexLocked()

	switch {
	case msg.IsPartial && idx >= 0:
		// Replace in place, preserving position.
		l.msgs[idx] = msg
	case !msg.IsPartial && msg.Role == domain.RoleAI && idx >= 0:
		// The final response lands where its partial was streaming.
		l.msgs[idx] = msg
	default:
		l.msgs = append(l.msgs, msg)
	}
}

// Messages returns a copy of the conversation.
func (l *MessageList) Messages() []domain.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Message, len(l.msgs))
	copy(out, l.msgs)
	return out
}

// Len returns the number of messages.
func (l *MessageList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.msgs)
}

// PartialIndex returns the position of the in-progress message, or -1.
func (l *MessageList) PartialIndex() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.partialIndexLocked()
}

func (l *MessageList) partialIndexLocked() int {
	for i, m := range l.msgs {
		if m.IsPartial {
			return i
		}
	}
	return -1
}
