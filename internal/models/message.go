// ABOUTME: ChatMessage and Role types for session transcripts
// ABOUTME: Transcripts are append-only sequences keyed by conversation id
package models

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is one entry in a session transcript. Messages are never
// edited or removed once appended.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
