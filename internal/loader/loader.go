// ABOUTME: Document loader dispatching on file type to per-format chunkers
// ABOUTME: Injects caller metadata and a 1-based ChunkIndex on every chunk
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mpardo/assistant-backend/internal/models"
)

// ErrUnsupportedFormat is returned when no loader exists for the requested
// file extension. Rejected before any chunk is produced.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// DefaultMinSlideChars is the minimum accumulated length for a slide's
// text to be emitted as a chunk.
const DefaultMinSlideChars = 5

// Loader converts raw files into ordered chunk sequences
type Loader struct {
	splitter      *TokenSplitter
	minSlideChars int
}

// New creates a Loader with the given splitting configuration. A zero
// minSlideChars is a valid threshold that keeps every non-empty slide;
// only negative values fall back to the default.
func New(chunkSize, chunkOverlap, minSlideChars int) *Loader {
	if minSlideChars < 0 {
		minSlideChars = DefaultMinSlideChars
	}
	return &Loader{
		splitter:      NewTokenSplitter(chunkSize, chunkOverlap),
		minSlideChars: minSlideChars,
	}
}

// Load reads the file at path and chunks it according to fileType
// ("txt", "pdf", "docx", "pptx"). The caller-supplied properties map is
// copied onto each chunk along with an injected ChunkIndex counter that
// starts at 1 and runs across the whole emitted sequence.
func (l *Loader) Load(path, fileType string, properties map[string]string) ([]models.Chunk, error) {
	var (
		texts []string
		err   error
	)

	switch strings.ToLower(fileType) {
	case "txt":
		texts, err = l.loadText(path)
	case "pdf":
		texts, err = l.loadPages(path)
	case "docx":
		texts, err = l.loadSections(path)
	case "pptx":
		texts, err = l.loadSlides(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, fileType)
	}
	if err != nil {
		return nil, err
	}

	return injectMetadata(texts, properties), nil
}

// FileType derives the loader dispatch key from a file name
func FileType(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// injectMetadata copies properties onto each chunk and assigns the
// contiguous 1-based ChunkIndex run.
func injectMetadata(texts []string, properties map[string]string) []models.Chunk {
	chunks := make([]models.Chunk, 0, len(texts))
	for i, text := range texts {
		index := i + 1
		metadata := make(map[string]string, len(properties)+1)
		for k, v := range properties {
			metadata[k] = v
		}
		metadata[models.ChunkIndexKey] = fmt.Sprintf("%d", index)

		chunks = append(chunks, models.Chunk{
			Text:       text,
			Metadata:   metadata,
			ChunkIndex: index,
		})
	}
	return chunks
}

// readFile is a small indirection point shared by the per-format loaders
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document %s: %w", path, err)
	}
	return string(data), nil
}
