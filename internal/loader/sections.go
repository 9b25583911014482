// ABOUTME: Sectioned (word-processor) document loader
// ABOUTME: A new section begins at every title element; trailing section is flushed
package loader

import "strings"

// loadSections chunks a title-delimited document. All non-title content is
// concatenated into the current section until the next title. A leading
// section with no accumulated content is discarded.
func (l *Loader) loadSections(path string) ([]string, error) {
	elements, err := readElements(path)
	if err != nil {
		return nil, err
	}

	var sections []string
	var current string

	for _, elem := range elements {
		if strings.EqualFold(elem.Category, CategoryTitle) {
			if current != "" {
				sections = append(sections, current)
			}
			current = elem.Text
		} else {
			current += elem.Text
		}
	}

	if current != "" {
		sections = append(sections, current)
	}

	return sections, nil
}
