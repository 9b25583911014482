// ABOUTME: Tests for the in-memory vector store
// ABOUTME: Covers similarity ordering, top-k truncation, and isolation
package vectorstore

import (
	"context"
	"testing"

	"github.com/mpardo/assistant-backend/internal/models"
)

func seedMemory(t *testing.T, m *Memory, assistantID string) {
	t.Helper()
	points := []Point{
		{ID: "a", Vector: []float32{1, 0, 0}, Chunk: models.Chunk{Text: "exact", ChunkIndex: 1}},
		{ID: "b", Vector: []float32{0.9, 0.1, 0}, Chunk: models.Chunk{Text: "close", ChunkIndex: 2}},
		{ID: "c", Vector: []float32{0, 1, 0}, Chunk: models.Chunk{Text: "orthogonal", ChunkIndex: 3}},
		{ID: "d", Vector: []float32{-1, 0, 0}, Chunk: models.Chunk{Text: "opposite", ChunkIndex: 4}},
	}
	if err := m.Upsert(context.Background(), assistantID, points); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
}

func TestMemory_Search_Ordering(t *testing.T) {
	m := NewMemory()
	seedMemory(t, m, "acme")

	hits, err := m.Search(context.Background(), "acme", []float32{1, 0, 0}, 4)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 4 {
		t.Fatalf("got %d hits, want 4", len(hits))
	}

	wantOrder := []string{"exact", "close", "orthogonal", "opposite"}
	for i, want := range wantOrder {
		if hits[i].Chunk.Text != want {
			t.Errorf("hit %d = %q, want %q", i, hits[i].Chunk.Text, want)
		}
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Errorf("scores not descending at %d: %f > %f", i, hits[i].Score, hits[i-1].Score)
		}
	}
}

func TestMemory_Search_TopK(t *testing.T) {
	m := NewMemory()
	seedMemory(t, m, "acme")

	hits, err := m.Search(context.Background(), "acme", []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Chunk.Text != "exact" || hits[1].Chunk.Text != "close" {
		t.Errorf("top-2 = %q, %q", hits[0].Chunk.Text, hits[1].Chunk.Text)
	}
}

func TestMemory_CollectionsIsolated(t *testing.T) {
	m := NewMemory()
	seedMemory(t, m, "acme")

	hits, err := m.Search(context.Background(), "other", []float32{1, 0, 0}, 4)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits from an empty collection, want 0", len(hits))
	}
}

func TestMemory_DeleteCollection(t *testing.T) {
	m := NewMemory()
	seedMemory(t, m, "acme")

	if err := m.DeleteCollection(context.Background(), "acme"); err != nil {
		t.Fatalf("DeleteCollection failed: %v", err)
	}
	hits, err := m.Search(context.Background(), "acme", []float32{1, 0, 0}, 4)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits after delete, want 0", len(hits))
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"length mismatch", []float32{1, 0}, []float32{1, 0, 0}, 0.0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("cosineSimilarity = %f, want %f", got, tt.want)
			}
		})
	}
}
