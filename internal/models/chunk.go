// ABOUTME: Chunk represents a bounded span of document text plus metadata
// ABOUTME: The unit of embedding, storage and retrieval across the pipeline
package models

// Metadata keys injected or honored by the ingestion pipeline.
const (
	// ChunkIndexKey carries the chunk's 1-based position within an upload
	// batch. Injected by the loader across the whole emitted sequence.
	ChunkIndexKey = "ChunkIndex"

	// DocumentNameKey names the source document. Set by callers at
	// ingestion time and echoed back in retrieval results.
	DocumentNameKey = "DocumentName"
)

// Chunk is a bounded span of document text. Immutable once produced by the
// loader; the vector store persists it indefinitely.
type Chunk struct {
	Text       string            `json:"text"`
	Metadata   map[string]string `json:"metadata"`
	ChunkIndex int               `json:"chunk_index"`
}
