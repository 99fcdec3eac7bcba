package pipeline

// Notes:
// - Paths are built with filepath.Join so expectations hold on Windows too.
// - Error branches of parseFragment/renderFragment are not covered: the html
//   package does not fail on goldmark output.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRewriteRelativePaths - Manuscript links seen from the page directory
// ---------------------------------------------------------------------------

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	root := filepath.Join(string(filepath.Separator), "site")
	lc := LinkContext{
		SourceDir: filepath.Join(root, "manuscript"),
		PageDir:   filepath.Join(root, "chapters"),
		Root:      root,
	}

	tests := []struct {
		name         string
		html         string
		lc           LinkContext
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative image",
			html:         `<p><img src="images/map.png" alt="map"></p>`,
			lc:           lc,
			wantContains: []string{`src="../manuscript/images/map.png"`},
		},
		{
			name:         "image in sibling directory",
			html:         `<p><img src="../images/map.png" alt="map"></p>`,
			lc:           lc,
			wantContains: []string{`src="../images/map.png"`},
		},
		{
			name:         "relative link keeps fragment",
			html:         `<p><a href="notes/cast.html#mara">Mara</a></p>`,
			lc:           lc,
			wantContains: []string{`href="../manuscript/notes/cast.html#mara"`},
		},
		{
			name:         "anchor unchanged",
			html:         `<p><a href="#fn:1">1</a></p>`,
			lc:           lc,
			wantContains: []string{`href="#fn:1"`},
		},
		{
			name:         "absolute URL unchanged",
			html:         `<p><a href="https://example.com/x">x</a></p>`,
			lc:           lc,
			wantContains: []string{`href="https://example.com/x"`},
		},
		{
			name:         "mailto unchanged",
			html:         `<p><a href="mailto:author@example.com">write</a></p>`,
			lc:           lc,
			wantContains: []string{`href="mailto:author@example.com"`},
		},
		{
			name:         "site-absolute path unchanged",
			html:         `<p><img src="/images/map.png"></p>`,
			lc:           lc,
			wantContains: []string{`src="/images/map.png"`},
		},
		{
			name:         "target escaping root unchanged",
			html:         `<p><img src="../../etc/passwd"></p>`,
			lc:           lc,
			wantContains: []string{`src="../../etc/passwd"`},
		},
		{
			name:         "same directory returns input",
			html:         `<p><img src="map.png"></p>`,
			lc:           LinkContext{SourceDir: lc.PageDir, PageDir: lc.PageDir, Root: root},
			wantContains: []string{`<img src="map.png">`},
		},
		{
			name:         "empty source dir returns input",
			html:         `<p><img src="map.png"></p>`,
			lc:           LinkContext{PageDir: lc.PageDir},
			wantContains: []string{`src="map.png"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(tt.html, tt.lc)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("result missing %q\ngot: %s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("result should not contain %q\ngot: %s", exclude, got)
				}
			}
		})
	}
}

func TestRewriteRelativePaths_NoLinksIsByteIdentical(t *testing.T) {
	t.Parallel()

	in := "<p>It&rsquo;s late.</p>\n"
	got, err := RewriteRelativePaths(in, LinkContext{SourceDir: "manuscript", PageDir: "chapters"})
	if err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}
	if got != in {
		t.Errorf("RewriteRelativePaths() = %q, want input unchanged", got)
	}
}

// ---------------------------------------------------------------------------
// TestIsRelativePath / TestHasScheme
// ---------------------------------------------------------------------------

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"#top", false},
		{"?q=1", false},
		{"//cdn.example.com/x.png", false},
		{"http://example.com", false},
		{"data:image/png;base64,AAA", false},
		{"/abs.png", false},
		{"map.png", true},
		{"./map.png", true},
		{"../images/map.png", true},
	}
	for _, tt := range tests {
		if got := isRelativePath(tt.in); got != tt.want {
			t.Errorf("isRelativePath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHasScheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"https://x", true},
		{"svn+ssh://x", true},
		{"mailto:a@b", true},
		{":nope", false},
		{"1http://x", false},
		{"images/a:b.png", false},
		{"plain", false},
	}
	for _, tt := range tests {
		if got := hasScheme(tt.in); got != tt.want {
			t.Errorf("hasScheme(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
