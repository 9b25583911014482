// ABOUTME: Element stream model for sectioned and slide-style documents
// ABOUTME: Decodes the JSON element format produced by the extraction sidecar
package loader

import (
	"encoding/json"
	"fmt"
	"os"
)

// Element categories recognized by the section and slide loaders.
const (
	CategoryTitle     = "Title"
	CategoryListItem  = "ListItem"
	CategoryPageBreak = "PageBreak"
)

// Element is one classified fragment of an extracted document. Word and
// slide documents arrive as an ordered element stream rather than raw text.
type Element struct {
	Category   string `json:"category"`
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
}

// readElements decodes an element-stream file into its ordered elements
func readElements(path string) ([]Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	var elements []Element
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("failed to decode element stream %s: %w", path, err)
	}
	return elements, nil
}
