// ABOUTME: Vector store interface with one isolated collection per assistant
// ABOUTME: Implemented by the Qdrant REST client and an in-memory store
package vectorstore

import (
	"context"

	"github.com/mpardo/assistant-backend/internal/models"
)

// Point is one embedded chunk ready for persistence. Never mutated after
// insertion; removed only by whole-collection deletion.
type Point struct {
	ID     string
	Vector []float32
	Chunk  models.Chunk
}

// ScoredChunk is a similarity search hit. Score semantics follow the
// underlying index's ranking; hits arrive most-similar first.
type ScoredChunk struct {
	Chunk models.Chunk
	Score float64
}

// Store persists embedded chunks per assistant and answers nearest-neighbor
// queries. Search is read-only and safe to call concurrently with uploads
// to other collections.
type Store interface {
	// EnsureCollection creates the assistant's collection if missing.
	EnsureCollection(ctx context.Context, assistantID string, dimension int) error

	// Upsert inserts the points into the assistant's collection.
	Upsert(ctx context.Context, assistantID string, points []Point) error

	// Search returns the k nearest chunks to the query vector in rank order.
	Search(ctx context.Context, assistantID string, vector []float32, k int) ([]ScoredChunk, error)

	// DeleteCollection drops the assistant's whole collection.
	DeleteCollection(ctx context.Context, assistantID string) error
}
