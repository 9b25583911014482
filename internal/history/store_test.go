// ABOUTME: Tests for the session history store
// ABOUTME: Uses a map-backed KV fake instead of a live charm database
package history

import (
	"errors"
	"testing"

	"github.com/mpardo/assistant-backend/internal/kv"
	"github.com/mpardo/assistant-backend/internal/models"
)

// mapKV is an in-memory KV fake
type mapKV struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	setKeys []string
}

func newMapKV() *mapKV {
	return &mapKV{data: make(map[string][]byte)}
}

func (m *mapKV) Get(key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[key], nil
}

func (m *mapKV) Set(key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.setKeys = append(m.setKeys, key)
	m.data[key] = value
	return nil
}

func TestStore_Get_UnknownSession(t *testing.T) {
	store := NewStore(newMapKV())

	messages, err := store.Get("nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("got %d messages for unknown session, want 0", len(messages))
	}
}

func TestStore_AppendAndGet(t *testing.T) {
	backend := newMapKV()
	store := NewStore(backend)

	turns := []struct {
		role    models.Role
		content string
	}{
		{models.RoleUser, "hello"},
		{models.RoleAssistant, "hi there"},
		{models.RoleUser, "what's the policy?"},
	}
	for _, turn := range turns {
		if err := store.Append("42", turn.role, turn.content); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	messages, err := store.Get("42")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(messages) != len(turns) {
		t.Fatalf("got %d messages, want %d", len(messages), len(turns))
	}
	for i, turn := range turns {
		if messages[i].Role != turn.role || messages[i].Content != turn.content {
			t.Errorf("message %d = %+v, want {%s %s}", i, messages[i], turn.role, turn.content)
		}
	}
}

func TestStore_SessionsIsolated(t *testing.T) {
	store := NewStore(newMapKV())

	if err := store.Append("1", models.RoleUser, "first session"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append("2", models.RoleUser, "second session"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	messages, err := store.Get("1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(messages) != 1 || messages[0].Content != "first session" {
		t.Errorf("session 1 transcript = %+v", messages)
	}
}

func TestStore_Append_UsesSessionKey(t *testing.T) {
	backend := newMapKV()
	store := NewStore(backend)

	if err := store.Append("42", models.RoleUser, "hello"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if len(backend.setKeys) != 1 || backend.setKeys[0] != kv.SessionKey("42") {
		t.Errorf("wrote keys %v, want [%s]", backend.setKeys, kv.SessionKey("42"))
	}
}

func TestStore_Get_CorruptTranscript(t *testing.T) {
	backend := newMapKV()
	backend.data[kv.SessionKey("42")] = []byte("not json")
	store := NewStore(backend)

	if _, err := store.Get("42"); err == nil {
		t.Fatal("expected decode error for corrupt transcript")
	}
}

func TestStore_Get_BackendFailurePropagates(t *testing.T) {
	backend := newMapKV()
	backend.getErr = errors.New("db closed")
	store := NewStore(backend)

	if _, err := store.Get("42"); err == nil {
		t.Fatal("expected error when the backend read fails")
	}
}

func TestStore_Append_ReadFailureDoesNotOverwrite(t *testing.T) {
	backend := newMapKV()
	backend.data[kv.SessionKey("42")] = []byte(`[{"role":"user","content":"hello"}]`)
	backend.getErr = errors.New("db closed")
	store := NewStore(backend)

	if err := store.Append("42", models.RoleUser, "again"); err == nil {
		t.Fatal("expected error when the backend read fails")
	}
	if len(backend.setKeys) != 0 {
		t.Errorf("append wrote %v despite failed read", backend.setKeys)
	}
}

func TestStore_Append_SetFailurePropagates(t *testing.T) {
	backend := newMapKV()
	backend.setErr = errors.New("db closed")
	store := NewStore(backend)

	if err := store.Append("42", models.RoleUser, "hello"); err == nil {
		t.Fatal("expected error when the backend write fails")
	}
}
