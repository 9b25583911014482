// ABOUTME: OpenAI client for embeddings and chat completions with tool calling
// ABOUTME: Classifies provider failures once into the closed upstream error set
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mpardo/assistant-backend/internal/models"
	"github.com/mpardo/assistant-backend/internal/upstream"
	"github.com/mpardo/assistant-backend/internal/util"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.LargeEmbedding3
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
	Temperature    float32
	MaxRetries     int
	RetryDelay     time.Duration
}

// ToolCall is a model-designated function invocation with raw JSON arguments
type ToolCall struct {
	Name      string
	Arguments string
}

// Completion is the normalized model response: either text content or a
// designated tool call, never both.
type Completion struct {
	Content  string
	ToolCall *ToolCall
}

// Client wraps the OpenAI API for the pipeline's two call shapes
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	temperature    float32
	maxRetries     int
	retryDelay     time.Duration
	sleep          func(time.Duration)
}

// NewClient creates an OpenAI client with the given configuration
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	retryDelay := cfg.RetryDelay
	if retryDelay == 0 {
		retryDelay = 2 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		client:         openai.NewClient(cfg.APIKey),
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		temperature:    cfg.Temperature,
		maxRetries:     maxRetries,
		retryDelay:     retryDelay,
		sleep:          time.Sleep,
	}, nil
}

// doWithRetries runs call up to maxRetries+1 times, sleeping a jittered
// backoff between attempts. Rate-limit classifications return immediately;
// the upload path owns the single advertised-delay retry for those.
func (c *Client) doWithRetries(ctx context.Context, op string, call func() error) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}
		if err := ctx.Err(); err != nil {
			return upstream.Failure(op, err)
		}

		err := call()
		if err == nil {
			return nil
		}
		lastErr = c.classify(op, err)
		if _, ok := upstream.IsRateLimited(lastErr); ok {
			return lastErr
		}
	}
	return lastErr
}

// EmbedBatch generates one embedding vector per input text in a single
// provider request. Transient failures are retried with backoff up to
// maxRetries; rate limits are classified and returned so the upload path
// can apply its single advertised-delay retry.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var resp openai.EmbeddingResponse
	err := c.doWithRetries(ctx, "create embeddings", func() error {
		var callErr error
		resp, callErr = c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: c.embeddingModel,
		})
		return callErr
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, upstream.Failure("create embeddings",
			fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data)))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}

// Complete sends the merged message sequence to the chat model with the
// declared tools and normalizes the response. The caller-supplied context
// bounds the call including its backoff retries; one logical completion
// is produced per invocation.
func (c *Client) Complete(ctx context.Context, messages []models.ChatMessage, tools []models.Tool) (*Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    toOpenAIMessages(messages),
		Temperature: c.temperature,
	}

	if len(tools) > 0 {
		functions := make([]openai.FunctionDefinition, len(tools))
		for i, t := range tools {
			functions[i] = openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			}
		}
		req.Functions = functions
		req.FunctionCall = "auto"
	}

	var resp openai.ChatCompletionResponse
	err := c.doWithRetries(ctx, "chat completion", func() error {
		var callErr error
		resp, callErr = c.client.CreateChatCompletion(ctx, req)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, upstream.Failure("chat completion", fmt.Errorf("no completion choices returned"))
	}

	msg := resp.Choices[0].Message
	if msg.FunctionCall != nil {
		return &Completion{
			ToolCall: &ToolCall{
				Name:      msg.FunctionCall.Name,
				Arguments: msg.FunctionCall.Arguments,
			},
		}, nil
	}
	return &Completion{Content: msg.Content}, nil
}

// classify maps a raw SDK error onto the closed upstream error set. The
// SDK does not surface Retry-After headers, so rate limits carry the
// configured default delay.
func (c *Client) classify(op string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
		return fmt.Errorf("%s: %w", op, &upstream.RateLimitError{RetryAfter: c.retryDelay})
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == 429 {
		return fmt.Errorf("%s: %w", op, &upstream.RateLimitError{RetryAfter: c.retryDelay})
	}
	return upstream.Failure(op, err)
}

// toOpenAIMessages maps transcript roles onto the provider's wire roles
func toOpenAIMessages(messages []models.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case models.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		case models.RoleSystem:
			role = openai.ChatMessageRoleSystem
		}
		out[i] = openai.ChatCompletionMessage{Role: role, Content: m.Content}
	}
	return out
}
