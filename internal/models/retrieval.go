// ABOUTME: RetrievalResult is a per-query similarity match with its score
// ABOUTME: Ephemeral output of the retrieval service, never persisted
package models

// RetrievalResult is one ranked similarity match for a query.
type RetrievalResult struct {
	Document   string  `json:"document"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
	Content    string  `json:"content"`
}
