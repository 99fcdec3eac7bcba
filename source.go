package serialpub

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-serialpub/internal/dateutil"
	"github.com/alnah/go-serialpub/internal/fileutil"
	"github.com/alnah/go-serialpub/internal/hints"
)

// SourceCandidates lists the manuscript paths accepted for chapter n, in
// lookup order: YYYY-MM-DD.md, NNN.md, N.md.
func SourceCandidates(dir string, n int, date time.Time) []string {
	names := []string{
		date.Format(dateutil.ISOLayout) + ".md",
		fmt.Sprintf("%03d.md", n),
		strconv.Itoa(n) + ".md",
	}

	paths := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue // N.md equals NNN.md from chapter 100 on
		}
		seen[name] = true
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths
}

// findSource returns the first existing candidate.
// Returns ErrSourceNotFound naming every tried path.
func findSource(dir string, n int, date time.Time) (string, error) {
	candidates := SourceCandidates(dir, n, date)
	for _, p := range candidates {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: chapter %d: tried %s%s", ErrSourceNotFound, n,
		strings.Join(candidates, ", "), hints.ForSourceNotFound(dir, n, date))
}

// ChapterFromFileName maps a manuscript file name (YYYY-MM-DD.md, NNN.md or
// N.md) to its chapter number. Reports false for any other name and for
// chapters outside cal.
func ChapterFromFileName(name string, cal Calendar) (int, bool) {
	base, ok := strings.CutSuffix(filepath.Base(name), ".md")
	if !ok || base == "" {
		return 0, false
	}

	if d, err := dateutil.ParseISO(base); err == nil {
		n, err := cal.NumberOn(d)
		return n, err == nil
	}

	for _, r := range base {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(base)
	if err != nil || !cal.Contains(n) {
		return 0, false
	}
	return n, true
}

// PageFileName returns the chapter page file name, e.g. "007.html".
func PageFileName(n int) string {
	return fmt.Sprintf("%03d.html", n)
}
