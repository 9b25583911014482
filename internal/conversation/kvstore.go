// ABOUTME: KV-backed adapter for the durable conversation collaborator ports
// ABOUTME: Stands in for the platform's conversation service in dev and tests
package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mpardo/assistant-backend/internal/chat"
	"github.com/mpardo/assistant-backend/internal/models"
)

const (
	messagePrefix   = "conversation:"
	assistantPrefix = "conversation_assistant:"
)

// KV is the key-value surface the adapter needs. Satisfied by *kv.Client.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Message is one durably recorded conversation message
type Message struct {
	Role      models.Role `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// KVStore records conversation messages in the shared KV database. It
// implements chat.ConversationStore and chat.AssistantResolver. Unmapped
// conversations resolve to the configured default assistant.
type KVStore struct {
	kv               KV
	defaultAssistant string
}

// NewKVStore creates the adapter. defaultAssistant may be empty, in which
// case unmapped conversations are reported as not found.
func NewKVStore(backend KV, defaultAssistant string) *KVStore {
	return &KVStore{kv: backend, defaultAssistant: defaultAssistant}
}

// AppendMessage records one message under the conversation's durable log
func (s *KVStore) AppendMessage(_ context.Context, conversationID string, role models.Role, content string) error {
	key := messagePrefix + conversationID

	data, err := s.kv.Get(key)
	if err != nil {
		return fmt.Errorf("read conversation %s: %w", conversationID, err)
	}

	var messages []Message
	if data != nil {
		if err := json.Unmarshal(data, &messages); err != nil {
			return fmt.Errorf("decode conversation %s: %w", conversationID, err)
		}
	}

	messages = append(messages, Message{Role: role, Content: content, CreatedAt: time.Now().UTC()})

	encoded, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", conversationID, err)
	}
	return s.kv.Set(key, encoded)
}

// AssistantID resolves the assistant backing a conversation
func (s *KVStore) AssistantID(_ context.Context, conversationID string) (string, error) {
	data, err := s.kv.Get(assistantPrefix + conversationID)
	if err != nil {
		return "", fmt.Errorf("read assistant binding for %s: %w", conversationID, err)
	}
	if len(data) > 0 {
		return string(data), nil
	}
	if s.defaultAssistant != "" {
		return s.defaultAssistant, nil
	}
	return "", fmt.Errorf("%w: %s", chat.ErrConversationNotFound, conversationID)
}

// BindAssistant maps a conversation to its backing assistant
func (s *KVStore) BindAssistant(_ context.Context, conversationID, assistantID string) error {
	return s.kv.Set(assistantPrefix+conversationID, []byte(assistantID))
}
