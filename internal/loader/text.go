// ABOUTME: Plain-text loader splitting file contents with the token splitter
package loader

// loadText chunks a plain text file by the configured token splitter
func (l *Loader) loadText(path string) ([]string, error) {
	content, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return l.splitter.Split(content), nil
}
