package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Excerpt derivation limits.
const (
	MinExcerptLength = 40  // shorter paragraphs are skipped (headings, dialogue tags)
	MaxExcerptLength = 200 // runes kept before the ellipsis
)

const ellipsis = "…"

var (
	// ATX heading: 1-6 '#', then space or end of line. Optional closing '#'s.
	atxHeading = regexp.MustCompile(`^ {0,3}#{1,6}(?:[ \t]+(.*?))?(?:[ \t]+#+)?[ \t]*$`)

	fenceOpen = regexp.MustCompile("^ {0,3}(```|~~~)")

	inlineLink     = regexp.MustCompile(`!?\[(.*?)\]\((.*?)\)`)
	markdownMarks  = regexp.MustCompile("[#*_>`]")
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
)

// Title returns the chapter title: front matter, then the first ATX heading
// of the body outside code fences, then "Chapter N".
func Title(fm FrontMatter, body string, number int) string {
	if fm.Title != "" {
		return fm.Title
	}
	if h := firstHeading(body); h != "" {
		return h
	}
	return "Chapter " + strconv.Itoa(number)
}

func firstHeading(body string) string {
	inFence := ""
	for _, line := range strings.Split(body, "\n") {
		if m := fenceOpen.FindStringSubmatch(line); m != nil {
			switch inFence {
			case "":
				inFence = m[1]
			case m[1]:
				inFence = ""
			}
			continue
		}
		if inFence != "" {
			continue
		}
		if m := atxHeading.FindStringSubmatch(line); m != nil {
			if text := strings.TrimSpace(m[1]); text != "" {
				return text
			}
		}
	}
	return ""
}

// Excerpt returns the chapter summary: front matter, else the first paragraph
// of at least MinExcerptLength runes with link targets and markdown
// punctuation removed, cut at MaxExcerptLength runes with an ellipsis.
// Returns "" when no paragraph qualifies.
func Excerpt(fm FrontMatter, body string) string {
	if fm.Excerpt != "" {
		return fm.Excerpt
	}

	text := inlineLink.ReplaceAllString(body, "$1")
	text = markdownMarks.ReplaceAllString(text, "")

	for _, para := range paragraphBreak.Split(text, -1) {
		s := strings.Join(strings.Fields(para), " ")
		n := utf8.RuneCountInString(s)
		if n < MinExcerptLength {
			continue
		}
		if n <= MaxExcerptLength {
			return s
		}
		return string([]rune(s)[:MaxExcerptLength]) + ellipsis
	}
	return ""
}
