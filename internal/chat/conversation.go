// ABOUTME: ConversationStore port for durable conversation persistence
// ABOUTME: External collaborator; advanced together with the session history
package chat

import (
	"context"
	"errors"

	"github.com/mpardo/assistant-backend/internal/models"
)

// ErrConversationNotFound marks a turn referencing a conversation id the
// durable store does not know. Surfaced as a not-found condition.
var ErrConversationNotFound = errors.New("conversation not found")

// ConversationStore persists human/bot messages tied to a conversation id.
// The session history store and this store must advance together per turn
// or history and the durable transcript diverge.
type ConversationStore interface {
	AppendMessage(ctx context.Context, conversationID string, role models.Role, content string) error
}

// AssistantResolver maps a conversation id to the assistant backing it.
// Returns ErrConversationNotFound for unknown conversations.
type AssistantResolver interface {
	AssistantID(ctx context.Context, conversationID string) (string, error)
}
