package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-serialpub/internal/yamlutil"
)

// ErrFrontMatter indicates the leading YAML block could not be used.
var ErrFrontMatter = errors.New("invalid front matter")

const frontMatterDelimiter = "---"

// FrontMatter holds the recognized keys of a manuscript's leading YAML block.
// Keys other than title and excerpt are kept in Extra and otherwise ignored.
type FrontMatter struct {
	Title   string
	Excerpt string
	Extra   map[string]any
}

// SplitFrontMatter separates a leading "---" delimited block from the body.
// Content must be normalized (see NormalizeSource). Leading blank lines are
// skipped. When there is no opening delimiter, the whole content is the body.
// An opening delimiter without a closing one returns ErrFrontMatter.
func SplitFrontMatter(content string) (block, body string, found bool, err error) {
	trimmed := strings.TrimLeft(content, " \t\n")
	first, rest, ok := strings.Cut(trimmed, "\n")
	if !ok || strings.TrimRight(first, " \t") != frontMatterDelimiter {
		return "", content, false, nil
	}

	var lines []string
	for {
		line, after, more := strings.Cut(rest, "\n")
		if strings.TrimRight(line, " \t") == frontMatterDelimiter {
			return strings.Join(lines, "\n"), after, true, nil
		}
		lines = append(lines, line)
		if !more {
			break
		}
		rest = after
	}

	return "", "", false, fmt.Errorf("%w: opening --- has no closing ---", ErrFrontMatter)
}

// ParseFrontMatter decodes a front matter block. An empty block yields a zero
// FrontMatter. Malformed YAML, a non-mapping document, or a title/excerpt that
// is not a string returns ErrFrontMatter.
func ParseFrontMatter(block string) (FrontMatter, error) {
	var fm FrontMatter

	m, err := yamlutil.UnmarshalMapping([]byte(block))
	if err != nil {
		return fm, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	if fm.Title, err = stringField(m, "title"); err != nil {
		return fm, err
	}
	if fm.Excerpt, err = stringField(m, "excerpt"); err != nil {
		return fm, err
	}

	delete(m, "title")
	delete(m, "excerpt")
	if len(m) > 0 {
		fm.Extra = m
	}
	return fm, nil
}

// stringField returns the trimmed string value of key; absent or null is "".
func stringField(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrFrontMatter, key, v)
	}
	return strings.TrimSpace(s), nil
}

// Document is a manuscript split into front matter and markdown body.
type Document struct {
	FrontMatter FrontMatter
	Body        string
}

// ParseDocument normalizes raw manuscript text and splits off its front matter.
func ParseDocument(raw string) (*Document, error) {
	block, body, found, err := SplitFrontMatter(NormalizeSource(raw))
	if err != nil {
		return nil, err
	}

	doc := &Document{Body: body}
	if found {
		if doc.FrontMatter, err = ParseFrontMatter(block); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
