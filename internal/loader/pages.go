// ABOUTME: Paginated document loader producing one chunk group per page
// ABOUTME: Pages arrive form-feed separated; each page is further token-split
package loader

import "strings"

// loadPages chunks a paginated document. Each page is token-split on its
// own so a chunk never spans a page boundary.
func (l *Loader) loadPages(path string) ([]string, error) {
	content, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, page := range strings.Split(content, "\f") {
		texts = append(texts, l.splitter.Split(page)...)
	}
	return texts, nil
}
