package serialpub

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/alnah/go-serialpub/internal/fileutil"
)

// artifact is one output file computed by a run.
type artifact struct {
	path    string
	content []byte
}

// planChange compares an artifact against what is on disk.
// With withDiff, the Change carries a unified diff of the two contents.
func planChange(a artifact, withDiff bool) (Change, error) {
	old, exists, err := fileutil.ReadFileIfExists(a.path)
	if err != nil {
		return Change{}, err
	}

	c := Change{Path: a.path}
	switch {
	case !exists:
		c.Action = ActionCreate
	case string(old) == string(a.content):
		c.Action = ActionUnchanged
		return c, nil
	default:
		c.Action = ActionUpdate
	}

	before := splitLines(string(old))
	after := splitLines(string(a.content))
	c.Added, c.Removed = countLines(before, after)

	if withDiff {
		from := a.path
		if !exists {
			from = "/dev/null"
		}
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        terminateLines(before),
			B:        terminateLines(after),
			FromFile: from,
			ToFile:   a.path,
			Context:  3,
		})
		if err != nil {
			return Change{}, err
		}
		c.Diff = diff
	}
	return c, nil
}

// countLines returns the number of lines added and removed going from a to b.
func countLines(a, b []string) (added, removed int) {
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'r':
			removed += op.I2 - op.I1
			added += op.J2 - op.J1
		case 'd':
			removed += op.I2 - op.I1
		case 'i':
			added += op.J2 - op.J1
		}
	}
	return added, removed
}

// splitLines splits s after each newline. A final newline does not start
// another line, so "a\nb\n" is two lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// terminateLines marks a last line lacking a newline the way diff(1) does,
// so unified diff output stays line oriented.
func terminateLines(lines []string) []string {
	if len(lines) == 0 || strings.HasSuffix(lines[len(lines)-1], "\n") {
		return lines
	}
	out := append([]string(nil), lines...)
	out[len(out)-1] += "\n\\ No newline at end of file\n"
	return out
}
