// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Role tags a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn in a conversation. An ordered sequence of
// messages forms the conversation; the system message is regenerated
// fresh on every request so it always reflects the current context
// papers, and is never persisted across turns.
type ChatMessage struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}
