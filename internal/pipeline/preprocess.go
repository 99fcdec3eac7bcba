package pipeline

import (
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters.
// They pass through Goldmark unchanged and are turned into <mark> tags
// after conversion, so WithUnsafe is never needed.
const (
	MarkStartPlaceholder = "\uE000" // U+E000: Private Use Area start
	MarkEndPlaceholder   = "\uE001" // U+E001: Private Use Area end
)

const byteOrderMark = "\uFEFF"

var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress runs of blank lines to one
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Highlight syntax ==text==, single line only
	highlightPattern = regexp.MustCompile(`==([^=\n]+)==`)
)

// NormalizeSource prepares raw manuscript text for front matter splitting:
// strips a UTF-8 byte order mark and converts line endings to \n.
func NormalizeSource(content string) string {
	content = strings.TrimPrefix(content, byteOrderMark)
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// PreprocessMarkdown applies body transformations before Goldmark conversion.
// Input is expected to be normalized already.
func PreprocessMarkdown(content string) string {
	content = convertHighlights(content)
	content = compressBlankLines(content)
	return content
}

// compressBlankLines limits consecutive blank lines to one.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertHighlights transforms ==text== to placeholder markers.
func convertHighlights(content string) string {
	return highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
}

// ConvertMarkPlaceholders converts placeholder markers to <mark> tags.
// Called after Goldmark HTML conversion.
func ConvertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}
