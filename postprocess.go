package unstructured

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PostProcessor transforms an element's text before assembly. The
// configured post-processors run in order on every element.
type PostProcessor func(string) string

// NormalizeUnicode is a PostProcessor that canonically composes text
// (Unicode NFC), so visually identical strings compare equal
// downstream.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// CollapseWhitespace is a PostProcessor that squeezes runs of spaces
// and tabs into a single space while preserving line breaks, and
// trims trailing whitespace from each line.
func CollapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}
