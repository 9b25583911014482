// ABOUTME: Name-keyed tool registry with uniform handler dispatch
// ABOUTME: Unknown tool names are rejected explicitly, fatal for the turn
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mpardo/assistant-backend/internal/models"
)

// ErrUnknownTool marks a model-requested tool with no registered handler.
// The turn fails; no partial response is returned.
var ErrUnknownTool = errors.New("unknown tool")

// Handler executes one tool call. The return value becomes the
// user-visible response text for the turn.
type Handler interface {
	Call(ctx context.Context, args json.RawMessage) (string, error)
}

// HandlerFunc adapts a function to the Handler interface
type HandlerFunc func(ctx context.Context, args json.RawMessage) (string, error)

func (f HandlerFunc) Call(ctx context.Context, args json.RawMessage) (string, error) {
	return f(ctx, args)
}

// Registry maps tool names to handlers and carries their declarations
// for the model call.
type Registry struct {
	mu       sync.RWMutex
	tools    []models.Tool
	handlers map[string]Handler
}

// NewRegistry creates an empty tool registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a tool declaration and its handler. Re-registering a name
// replaces the handler but keeps a single declaration.
func (r *Registry) Register(tool models.Tool, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[tool.Name]; !exists {
		r.tools = append(r.tools, tool)
	}
	r.handlers[tool.Name] = h
}

// Declarations returns the registered tools in registration order
func (r *Registry) Declarations() []models.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Dispatch invokes the handler registered under name with the raw JSON
// arguments the model produced.
func (r *Registry) Dispatch(ctx context.Context, name string, args string) (string, error) {
	r.mu.RLock()
	h, ok := r.handlers[name]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	return h.Call(ctx, json.RawMessage(args))
}
