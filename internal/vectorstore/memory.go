// ABOUTME: In-memory vector store with cosine similarity search
// ABOUTME: Used by tests and local development without a Qdrant service
package vectorstore

import (
	"context"
	"math"
	"sort"
	"sync"
)

// Memory is a Store kept entirely in process memory. Collections are
// created lazily and isolated by assistant id, mirroring the Qdrant layout.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]Point
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]Point)}
}

// EnsureCollection creates the assistant's collection if missing
func (m *Memory) EnsureCollection(_ context.Context, assistantID string, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[assistantID]; !ok {
		m.collections[assistantID] = nil
	}
	return nil
}

// Upsert appends points to the assistant's collection
func (m *Memory) Upsert(_ context.Context, assistantID string, points []Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[assistantID] = append(m.collections[assistantID], points...)
	return nil
}

// Search returns the k most similar chunks by cosine similarity
func (m *Memory) Search(_ context.Context, assistantID string, vector []float32, k int) ([]ScoredChunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	points := m.collections[assistantID]
	results := make([]ScoredChunk, 0, len(points))
	for _, p := range points {
		results = append(results, ScoredChunk{
			Chunk: p.Chunk,
			Score: cosineSimilarity(vector, p.Vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// DeleteCollection drops the assistant's whole collection
func (m *Memory) DeleteCollection(_ context.Context, assistantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.collections, assistantID)
	return nil
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
