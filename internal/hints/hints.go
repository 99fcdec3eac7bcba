// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ForSourceNotFound suggests the filenames the publisher accepts for a chapter.
func ForSourceNotFound(manuscriptDir string, number int, date time.Time) string {
	return format(fmt.Sprintf("create %s or %s",
		filepath.Join(manuscriptDir, date.Format("2006-01-02")+".md"),
		filepath.Join(manuscriptDir, fmt.Sprintf("%03d.md", number)),
	))
}

// ForFrontMatter explains the accepted front matter shape.
func ForFrontMatter() string {
	return format("front matter must be a YAML mapping between two --- lines, e.g. title: \"...\"")
}

// ForTemplateMissing points at the template override directory.
func ForTemplateMissing(dir string) string {
	if dir == "" {
		return format("set templates.dir in the site config to a directory holding the template")
	}
	return format("add the template to " + dir + " or remove the override to use the built-in one")
}

// ForDateOutOfRange suggests an explicit chapter number when "today" is outside the series.
func ForDateOutOfRange(first, last time.Time) string {
	return format(fmt.Sprintf("the series runs %s to %s; pass an explicit chapter number",
		first.Format("2006-01-02"), last.Format("2006-01-02")))
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/serialpub/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/site.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/serialpub") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForWriteFailed returns hints for write phase errors.
func ForWriteFailed() string {
	return formatHints([]string{
		"check the site directory is writable",
		"previously published files were left intact; re-run once fixed",
	})
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
