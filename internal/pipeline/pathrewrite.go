package pipeline

import (
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LinkContext locates a chapter for link rewriting. All paths are absolute
// or all relative to the same base.
type LinkContext struct {
	SourceDir string // directory holding the manuscript file
	PageDir   string // directory the chapter page is written to
	Root      string // site root; targets outside it are left alone
}

// RewriteRelativePaths re-targets manuscript-relative image and link paths so
// they resolve from the chapter page's directory. A manuscript referencing
// "images/map.png" next to it yields "../manuscript/images/map.png" on a
// page in chapters/. If SourceDir equals PageDir, the fragment is returned
// unchanged.
//
// Rewrites:
//   - img[src]
//   - a[href] for relative file paths (not anchors, not URLs)
//
// Query strings and fragments are preserved. Absolute paths, URLs, and
// targets escaping Root are left as written.
func RewriteRelativePaths(fragment string, lc LinkContext) (string, error) {
	if lc.SourceDir == "" || filepath.Clean(lc.SourceDir) == filepath.Clean(lc.PageDir) {
		return fragment, nil
	}
	if !strings.Contains(fragment, "<img") && !strings.Contains(fragment, "<a ") {
		return fragment, nil
	}

	container, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	changed := false
	rewriteNode(container, lc, &changed)
	if !changed {
		return fragment, nil
	}

	return renderFragment(container)
}

// parseFragment parses HTML in a <body> context and gathers the nodes under
// one container for uniform traversal.
func parseFragment(content string) (*html.Node, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// renderFragment renders the container's children without a wrapper.
func renderFragment(container *html.Node) (string, error) {
	var buf strings.Builder
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, lc LinkContext, changed *bool) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", lc, changed)
		case atom.A:
			rewriteAttr(n, "href", lc, changed)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, lc, changed)
	}
}

func rewriteAttr(n *html.Node, attrName string, lc LinkContext, changed *bool) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}

		p, suffix := splitSuffix(attr.Val)
		target := filepath.Join(lc.SourceDir, filepath.FromSlash(p))

		if lc.Root != "" && !isPathUnderDir(target, lc.Root) {
			continue
		}

		rel, err := filepath.Rel(lc.PageDir, target)
		if err != nil {
			continue
		}

		n.Attr[i].Val = filepath.ToSlash(rel) + suffix
		*changed = true
	}
}

// splitSuffix separates a path from its "?query" or "#fragment" tail.
func splitSuffix(v string) (path, suffix string) {
	if i := strings.IndexAny(v, "?#"); i >= 0 {
		return v[:i], v[i:]
	}
	return v, ""
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "?") {
		return false
	}

	// Any scheme (http:, mailto:, data:, file:) or protocol-relative URL
	if strings.HasPrefix(path, "//") || hasScheme(path) {
		return false
	}

	if strings.HasPrefix(path, "/") || filepath.IsAbs(path) {
		return false
	}

	return true
}

// hasScheme reports whether v starts with "scheme:" per RFC 3986.
func hasScheme(v string) bool {
	for i, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		case r == ':' && i > 0:
			return true
		default:
			return false
		}
	}
	return false
}

// isPathUnderDir checks if absPath is dir or lies under it.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}
