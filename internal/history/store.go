// ABOUTME: Session history store mapping a session id to an ordered transcript
// ABOUTME: Whole transcript is serialized and rewritten on every append
package history

import (
	"encoding/json"
	"fmt"

	"github.com/mpardo/assistant-backend/internal/kv"
	"github.com/mpardo/assistant-backend/internal/models"
)

// KV is the key-value surface the store needs. Satisfied by *kv.Client;
// tests inject a map-backed fake.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Store keeps append-only chat transcripts keyed by session id. Sessions
// are created implicitly on first append. The read-modify-write in Append
// is not transactional: concurrent appends to the same session id are
// last-writer-wins, accepted for single-writer sessions.
type Store struct {
	kv KV
}

// NewStore creates a session history store over the given KV backend
func NewStore(backend KV) *Store {
	return &Store{kv: backend}
}

// Get returns the transcript for a session in append order. An unknown
// session yields an empty transcript, not an error.
func (s *Store) Get(sessionID string) ([]models.ChatMessage, error) {
	data, err := s.kv.Get(kv.SessionKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript for session %s: %w", sessionID, err)
	}
	if data == nil {
		// Absent key: fresh session
		return []models.ChatMessage{}, nil
	}

	var messages []models.ChatMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode transcript for session %s: %w", sessionID, err)
	}
	return messages, nil
}

// Append adds one message to the session transcript, rewriting the whole
// serialized transcript. O(transcript length) per turn.
func (s *Store) Append(sessionID string, role models.Role, content string) error {
	messages, err := s.Get(sessionID)
	if err != nil {
		return err
	}

	messages = append(messages, models.ChatMessage{Role: role, Content: content})

	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to encode transcript for session %s: %w", sessionID, err)
	}
	if err := s.kv.Set(kv.SessionKey(sessionID), data); err != nil {
		return fmt.Errorf("failed to store transcript for session %s: %w", sessionID, err)
	}
	return nil
}
