package serialpub

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// testSite is a site rooted in a temporary directory with the default layout.
type testSite struct {
	root string
	cfg  *Config
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "manuscript"), 0o755); err != nil {
		t.Fatalf("creating manuscript dir: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Paths.Root = root
	cfg.Site.Title = "Test Serial"
	cfg.Site.Description = "A story in daily parts"
	cfg.Site.BaseURL = "https://serial.example/"
	return &testSite{root: root, cfg: cfg}
}

// writeChapter writes a manuscript file named name.
func (s *testSite) writeChapter(t *testing.T, name, content string) {
	t.Helper()
	path := filepath.Join(s.root, "manuscript", name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing chapter: %v", err)
	}
}

func (s *testSite) path(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

func (s *testSite) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(s.path(rel))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

// publisher creates a Publisher whose clock is fixed at now.
func (s *testSite) publisher(t *testing.T, now time.Time, opts ...Option) *Publisher {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return now })}, opts...)
	p, err := NewPublisher(s.cfg, opts...)
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	return p
}

// snapshot returns every regular file under the site root keyed by its
// slash-separated relative path.
func (s *testSite) snapshot(t *testing.T) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(s.root, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(s.root, p)
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walking site: %v", err)
	}
	return files
}
