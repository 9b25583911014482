// ABOUTME: Batched embedding ingestor with single rate-limit retry per batch
// ABOUTME: Embeds chunks and upserts them in fixed-size batches of 16
package vectorstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mpardo/assistant-backend/internal/models"
	"github.com/mpardo/assistant-backend/internal/upstream"
	"github.com/mpardo/assistant-backend/internal/util"
)

// UploadBatchSize bounds request and payload size per provider call.
const UploadBatchSize = 16

// Embedder turns texts into vectors. Satisfied by llm.Client.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Ingestor embeds chunks and persists them into an assistant's collection.
// Uploads are at-least-once: a failing batch never rolls back batches
// already persisted.
type Ingestor struct {
	embedder  Embedder
	store     Store
	baseDelay time.Duration
	sleep     func(time.Duration)
}

// NewIngestor creates an Ingestor over the given embedder and store
func NewIngestor(embedder Embedder, store Store, baseDelay time.Duration) *Ingestor {
	return &Ingestor{
		embedder:  embedder,
		store:     store,
		baseDelay: baseDelay,
		sleep:     time.Sleep,
	}
}

// Upload embeds and inserts chunks in batches of UploadBatchSize,
// issuing ceil(len(chunks)/16) upload calls. A rate-limited batch sleeps
// the advertised delay and is retried exactly once; any other failure
// propagates immediately.
func (in *Ingestor) Upload(ctx context.Context, assistantID string, chunks []models.Chunk) error {
	ensured := false
	for start := 0; start < len(chunks); start += UploadBatchSize {
		end := start + UploadBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		vectors, err := in.embedBatch(ctx, batch)
		if err != nil {
			return err
		}

		if !ensured {
			if err := in.store.EnsureCollection(ctx, assistantID, len(vectors[0])); err != nil {
				return fmt.Errorf("ensure collection for assistant %s: %w", assistantID, err)
			}
			ensured = true
		}

		if err := in.upsertBatch(ctx, assistantID, batch, vectors); err != nil {
			return err
		}
	}
	return nil
}

// embedBatch embeds one batch, retrying once on a rate-limit classification
func (in *Ingestor) embedBatch(ctx context.Context, batch []models.Chunk) ([][]float32, error) {
	texts := make([]string, len(batch))
	for i, c := range batch {
		texts[i] = c.Text
	}

	vectors, err := in.embedder.EmbedBatch(ctx, texts)
	if delay, ok := upstream.IsRateLimited(err); ok {
		in.sleep(util.RetryDelay(delay, in.baseDelay, 1))
		vectors, err = in.embedder.EmbedBatch(ctx, texts)
	}
	if err != nil {
		return nil, exhausted("embed batch", err)
	}
	return vectors, nil
}

// upsertBatch inserts one batch, retrying once on a rate-limit classification
func (in *Ingestor) upsertBatch(ctx context.Context, assistantID string, batch []models.Chunk, vectors [][]float32) error {
	points := make([]Point, len(batch))
	for i, c := range batch {
		points[i] = Point{
			ID:     uuid.New().String(),
			Vector: vectors[i],
			Chunk:  c,
		}
	}

	err := in.store.Upsert(ctx, assistantID, points)
	if delay, ok := upstream.IsRateLimited(err); ok {
		in.sleep(util.RetryDelay(delay, in.baseDelay, 1))
		err = in.store.Upsert(ctx, assistantID, points)
	}
	if err != nil {
		return exhausted("upsert batch", err)
	}
	return nil
}

// exhausted converts a still-rate-limited error after the single retry
// into a plain upstream failure
func exhausted(op string, err error) error {
	if _, ok := upstream.IsRateLimited(err); ok {
		return upstream.Failure(op+" after retry", err)
	}
	return err
}
