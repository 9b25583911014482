// ABOUTME: Per-turn orchestration: history, retrieval, model call, tool dispatch
// ABOUTME: Advances both the session history and the durable conversation store
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/mpardo/assistant-backend/internal/llm"
	"github.com/mpardo/assistant-backend/internal/models"
)

// ErrorCompletion replaces an empty or missing model response rather than
// propagating nothing back to the user.
const ErrorCompletion = "I'm sorry, I couldn't produce an answer. Please try again."

// HistoryStore is the session transcript surface the orchestrator needs
type HistoryStore interface {
	Get(sessionID string) ([]models.ChatMessage, error)
	Append(sessionID string, role models.Role, content string) error
}

// Retriever produces ranked context and the prompt fragment for a query
type Retriever interface {
	Retrieve(ctx context.Context, assistantID, query string, k int) ([]models.RetrievalResult, string, error)
}

// ModelClient performs the single chat completion of a turn
type ModelClient interface {
	Complete(ctx context.Context, messages []models.ChatMessage, tools []models.Tool) (*llm.Completion, error)
}

// TurnResult is the resolved outcome of one query turn
type TurnResult struct {
	Completion string
	Sources    []models.RetrievalResult
}

// Orchestrator runs one query turn end to end. Exactly one model call per
// turn; tool results are not fed back into a second call.
type Orchestrator struct {
	history       HistoryStore
	conversations ConversationStore
	retriever     Retriever
	model         ModelClient
	registry      *Registry
	topK          int
	modelTimeout  time.Duration
}

// NewOrchestrator wires the turn pipeline. Both persistence ports are
// explicit constructor parameters and advanced together per turn.
func NewOrchestrator(
	history HistoryStore,
	conversations ConversationStore,
	retriever Retriever,
	model ModelClient,
	registry *Registry,
	topK int,
	modelTimeout time.Duration,
) *Orchestrator {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Orchestrator{
		history:       history,
		conversations: conversations,
		retriever:     retriever,
		model:         model,
		registry:      registry,
		topK:          topK,
		modelTimeout:  modelTimeout,
	}
}

// Registry exposes the tool registry for callers that register tools
func (o *Orchestrator) Registry() *Registry {
	return o.registry
}

// Answer runs one turn for the conversation. The conversation id doubles
// as the session history key. The user message is recorded before the
// model is invoked, and stays recorded even when the turn later fails.
func (o *Orchestrator) Answer(ctx context.Context, assistantID, conversationID, question string) (*TurnResult, error) {
	if err := o.conversations.AppendMessage(ctx, conversationID, models.RoleUser, question); err != nil {
		return nil, fmt.Errorf("record user message: %w", err)
	}
	if err := o.history.Append(conversationID, models.RoleUser, question); err != nil {
		return nil, fmt.Errorf("append user message to session %s: %w", conversationID, err)
	}

	sources, fragment, err := o.retriever.Retrieve(ctx, assistantID, question, o.topK)
	if err != nil {
		return nil, err
	}

	transcript, err := o.history.Get(conversationID)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", conversationID, err)
	}

	// System message first, transcript order preserved otherwise
	messages := make([]models.ChatMessage, 0, len(transcript)+1)
	messages = append(messages, BuildSystemPrompt(fragment))
	messages = append(messages, transcript...)

	callCtx := ctx
	if o.modelTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.modelTimeout)
		defer cancel()
	}

	completion, err := o.model.Complete(callCtx, messages, o.registry.Declarations())
	if err != nil {
		return nil, err
	}

	response, err := o.resolve(ctx, completion)
	if err != nil {
		return nil, err
	}

	if err := o.history.Append(conversationID, models.RoleAssistant, response); err != nil {
		return nil, fmt.Errorf("append assistant message to session %s: %w", conversationID, err)
	}
	if err := o.conversations.AppendMessage(ctx, conversationID, models.RoleAssistant, response); err != nil {
		return nil, fmt.Errorf("record assistant message: %w", err)
	}

	return &TurnResult{Completion: response, Sources: sources}, nil
}

// resolve turns the model completion into user-visible response text
func (o *Orchestrator) resolve(ctx context.Context, completion *llm.Completion) (string, error) {
	if completion.ToolCall != nil {
		return o.registry.Dispatch(ctx, completion.ToolCall.Name, completion.ToolCall.Arguments)
	}
	if completion.Content == "" {
		return ErrorCompletion, nil
	}
	return completion.Content, nil
}
