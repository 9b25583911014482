// ABOUTME: Slide-deck loader accumulating per-slide text across elements
// ABOUTME: Emits a slide only when its accumulated text exceeds minSlideChars
package loader

import "strings"

// loadSlides chunks a slide deck, one chunk per slide. Titles are
// upper-cased and wrapped in newlines, list items prefixed with " - " and
// newline-terminated, other content appended with a trailing space.
// PageBreak elements are skipped without flushing the current slide.
func (l *Loader) loadSlides(path string) ([]string, error) {
	elements, err := readElements(path)
	if err != nil {
		return nil, err
	}

	var slides []string
	pageText := ""
	pageIndex := 1

	for _, elem := range elements {
		switch {
		case elem.Category == CategoryPageBreak:
			// No flush on page breaks
		case elem.PageNumber == pageIndex:
			pageText += renderSlideElement(elem)
		default:
			if len(pageText) > l.minSlideChars {
				slides = append(slides, strings.TrimSpace(pageText))
			}
			pageIndex++
			pageText = renderSlideElement(elem)
		}
	}

	if len(pageText) > l.minSlideChars {
		slides = append(slides, strings.TrimSpace(pageText))
	}

	return slides, nil
}

// renderSlideElement formats one slide element by its category
func renderSlideElement(elem Element) string {
	text := strings.TrimSpace(elem.Text)
	switch elem.Category {
	case CategoryTitle:
		return "\n" + strings.ToUpper(text) + "\n"
	case CategoryListItem:
		return " - " + text + "\n"
	default:
		return text + " "
	}
}
