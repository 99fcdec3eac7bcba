package pipeline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestSplitFrontMatter
// ---------------------------------------------------------------------------

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        string
		wantBlock string
		wantBody  string
		wantFound bool
		wantErr   error
	}{
		{
			name:      "no front matter",
			in:        "# One\n\nText.\n",
			wantBody:  "# One\n\nText.\n",
			wantFound: false,
		},
		{
			name:      "block and body",
			in:        "---\ntitle: \"T\"\n---\nBody\n",
			wantBlock: "title: \"T\"",
			wantBody:  "Body\n",
			wantFound: true,
		},
		{
			name:      "leading blank lines and trailing spaces on delimiters",
			in:        "\n\n---  \ntitle: T\nexcerpt: E\n--- \n\nBody",
			wantBlock: "title: T\nexcerpt: E",
			wantBody:  "\nBody",
			wantFound: true,
		},
		{
			name:      "empty block",
			in:        "---\n---\nBody",
			wantBlock: "",
			wantBody:  "Body",
			wantFound: true,
		},
		{
			name:      "closing delimiter at end of file",
			in:        "---\ntitle: T\n---",
			wantBlock: "title: T",
			wantBody:  "",
			wantFound: true,
		},
		{
			name:      "dashes followed by text are not a delimiter",
			in:        "--- not front matter\nBody",
			wantBody:  "--- not front matter\nBody",
			wantFound: false,
		},
		{
			name:    "unclosed block",
			in:      "---\ntitle: T\n\nBody without end",
			wantErr: ErrFrontMatter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			block, body, found, err := SplitFrontMatter(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SplitFrontMatter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitFrontMatter() unexpected error: %v", err)
			}
			if block != tt.wantBlock || body != tt.wantBody || found != tt.wantFound {
				t.Errorf("SplitFrontMatter() = (%q, %q, %v), want (%q, %q, %v)",
					block, body, found, tt.wantBlock, tt.wantBody, tt.wantFound)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseFrontMatter
// ---------------------------------------------------------------------------

func TestParseFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		block   string
		want    FrontMatter
		wantErr error
	}{
		{
			name:  "title and excerpt trimmed",
			block: "title: \"  The Long Night \"\nexcerpt: Dawn comes late.",
			want:  FrontMatter{Title: "The Long Night", Excerpt: "Dawn comes late."},
		},
		{
			name:  "unknown keys tolerated",
			block: "title: T\nmood: grim\npov: Mara",
			want:  FrontMatter{Title: "T", Extra: map[string]any{"mood": "grim", "pov": "Mara"}},
		},
		{
			name:  "empty block",
			block: "",
			want:  FrontMatter{},
		},
		{
			name:  "null title",
			block: "title:\n",
			want:  FrontMatter{},
		},
		{
			name:    "malformed YAML",
			block:   "title: [unclosed",
			wantErr: ErrFrontMatter,
		},
		{
			name:    "sequence document",
			block:   "- a\n- b",
			wantErr: ErrFrontMatter,
		},
		{
			name:    "numeric title",
			block:   "title: 42",
			wantErr: ErrFrontMatter,
		},
		{
			name:    "list excerpt",
			block:   "excerpt: [a, b]",
			wantErr: ErrFrontMatter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFrontMatter(tt.block)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseFrontMatter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFrontMatter() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseFrontMatter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseDocument(t *testing.T) {
	t.Parallel()

	t.Run("normalizes CRLF and BOM before splitting", func(t *testing.T) {
		t.Parallel()

		doc, err := ParseDocument("\uFEFF---\r\ntitle: T\r\n---\r\nLine one\r\nLine two\r\n")
		if err != nil {
			t.Fatalf("ParseDocument() error = %v", err)
		}
		if doc.FrontMatter.Title != "T" {
			t.Errorf("Title = %q, want T", doc.FrontMatter.Title)
		}
		if doc.Body != "Line one\nLine two\n" {
			t.Errorf("Body = %q", doc.Body)
		}
	})

	t.Run("invalid front matter fails", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseDocument("---\ntitle: [unclosed\n---\n"); !errors.Is(err, ErrFrontMatter) {
			t.Errorf("ParseDocument() error = %v, want ErrFrontMatter", err)
		}
	})
}
