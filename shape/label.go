package shape

import "strings"

// approxCharWidth is the assumed average glyph width in document units,
// used to derive a character budget per line from the shape's width.
const approxCharWidth float32 = 7

// labelPadding is subtracted from the width before computing the budget so
// text does not touch the shape border.
const labelPadding float32 = 8

// wrapLabel word-wraps text to a character budget derived from the current
// width. Words longer than the budget are placed on their own line rather
// than split.
func wrapLabel(text string, width float32) []string {
	if text == "" {
		return nil
	}
	budget := int((width - labelPadding) / approxCharWidth)
	if budget < 1 {
		budget = 1
	}
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) <= budget {
				line += " " + word
			} else {
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}
