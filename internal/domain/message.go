package domain

import "time"

const (
	RoleHuman Role = "human"
	RoleAI    Role = "ai"
	RoleTool  Role = "tool"
)

// Role identifies the author of a playground message.
type Role string

// Message is a single entry in a playground conversation.
// At most one message in a conversation may have IsPartial set; an in-progress
// assistant response is surfaced as a partial message and replaced in place as
// more output arrives.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsPartial bool      `json:"isPartial,omitempty"`
}
