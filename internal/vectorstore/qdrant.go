// ABOUTME: Minimal Qdrant REST client with per-assistant collections
// ABOUTME: Assumes cosine distance; classifies 429 responses with Retry-After
package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mpardo/assistant-backend/internal/models"
	"github.com/mpardo/assistant-backend/internal/upstream"
)

// QdrantConfig holds connection settings for the Qdrant service
type QdrantConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Qdrant is a minimal REST client to Qdrant implementing Store
type Qdrant struct {
	url    string
	apiKey string
	client *http.Client
}

// NewQdrant creates a Qdrant-backed store
func NewQdrant(cfg QdrantConfig) *Qdrant {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Qdrant{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: timeout},
	}
}

// collectionName maps an assistant id onto its isolated collection
func collectionName(assistantID string) string {
	return "assistant_" + assistantID
}

// EnsureCollection creates the assistant's collection if missing. Qdrant
// returns 200 for an existing collection with the same schema.
func (q *Qdrant) EnsureCollection(ctx context.Context, assistantID string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid vector dimension %d", dimension)
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return q.do(ctx, http.MethodPut,
		fmt.Sprintf("%s/collections/%s", q.url, collectionName(assistantID)), body, nil)
}

// Upsert inserts points into the assistant's collection
func (q *Qdrant) Upsert(ctx context.Context, assistantID string, points []Point) error {
	payload := make([]map[string]any, len(points))
	for i, p := range points {
		payload[i] = map[string]any{
			"id":     p.ID,
			"vector": p.Vector,
			"payload": map[string]any{
				"text":        p.Chunk.Text,
				"metadata":    p.Chunk.Metadata,
				"chunk_index": p.Chunk.ChunkIndex,
			},
		}
	}
	body := map[string]any{"points": payload}
	return q.do(ctx, http.MethodPut,
		fmt.Sprintf("%s/collections/%s/points?wait=true", q.url, collectionName(assistantID)), body, nil)
}

// Search returns the k nearest chunks in the index's rank order
func (q *Qdrant) Search(ctx context.Context, assistantID string, vector []float32, k int) ([]ScoredChunk, error) {
	req := map[string]any{
		"vector":       vector,
		"limit":        k,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float64 `json:"score"`
			Payload struct {
				Text       string            `json:"text"`
				Metadata   map[string]string `json:"metadata"`
				ChunkIndex int               `json:"chunk_index"`
			} `json:"payload"`
		} `json:"result"`
	}
	err := q.do(ctx, http.MethodPost,
		fmt.Sprintf("%s/collections/%s/points/search", q.url, collectionName(assistantID)), req, &resp)
	if err != nil {
		return nil, err
	}

	results := make([]ScoredChunk, 0, len(resp.Result))
	for _, r := range resp.Result {
		results = append(results, ScoredChunk{
			Chunk: models.Chunk{
				Text:       r.Payload.Text,
				Metadata:   r.Payload.Metadata,
				ChunkIndex: r.Payload.ChunkIndex,
			},
			Score: r.Score,
		})
	}
	return results, nil
}

// DeleteCollection drops the assistant's whole collection
func (q *Qdrant) DeleteCollection(ctx context.Context, assistantID string) error {
	return q.do(ctx, http.MethodDelete,
		fmt.Sprintf("%s/collections/%s", q.url, collectionName(assistantID)), nil, nil)
}

// do issues one JSON request and classifies failure responses
func (q *Qdrant) do(ctx context.Context, method, url string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode qdrant request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build qdrant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return upstream.Failure("qdrant "+method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("qdrant %s %s: %w", method, url,
			&upstream.RateLimitError{RetryAfter: retryAfter(resp)})
	}
	if resp.StatusCode >= 300 {
		return upstream.Failure("qdrant "+method,
			fmt.Errorf("%s returned %s", url, resp.Status))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return upstream.Failure("qdrant "+method, fmt.Errorf("decode response: %w", err))
		}
	}
	return nil
}

// retryAfter reads the provider-advertised delay, defaulting to 1s when
// the header is absent or malformed
func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Second
}
