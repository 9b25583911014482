// ABOUTME: Token-count-bounded text splitter with configurable overlap
// ABOUTME: Overlap re-includes trailing tokens of the previous chunk
package loader

import "strings"

// TokenSplitter splits text into chunks of at most ChunkSize whitespace
// tokens. Each chunk after the first starts with the last ChunkOverlap
// tokens of the previous chunk to preserve context across boundaries.
type TokenSplitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewTokenSplitter creates a splitter, clamping pathological settings
func NewTokenSplitter(chunkSize, chunkOverlap int) *TokenSplitter {
	if chunkSize <= 0 {
		chunkSize = 512
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 4
	}
	return &TokenSplitter{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap}
}

// Split returns the token-bounded chunks of text in order. Empty or
// whitespace-only input produces no chunks.
func (s *TokenSplitter) Split(text string) []string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}

	step := s.ChunkSize - s.ChunkOverlap
	var chunks []string
	for start := 0; start < len(tokens); start += step {
		end := start + s.ChunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, strings.Join(tokens[start:end], " "))
		if end == len(tokens) {
			break
		}
	}
	return chunks
}
