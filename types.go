package serialpub

import (
	"time"

	"go.uber.org/zap"
)

// ChapterRecord is one published chapter as stored in the archive JSON.
type ChapterRecord struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt,omitempty"`
	Date    string `json:"date"` // YYYY-MM-DD
	URL     string `json:"url"`  // site-relative, e.g. chapters/007.html
}

// Action classifies what a publish run does to one artifact.
type Action string

// Artifact actions.
const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionUnchanged Action = "unchanged"
)

// Change describes the effect of a run on one output file.
type Change struct {
	Path    string `json:"path"`
	Action  Action `json:"action"`
	Added   int    `json:"added"`   // lines added
	Removed int    `json:"removed"` // lines removed
	Diff    string `json:"diff,omitempty"`
}

// PublishOptions controls a publish or rebuild run.
type PublishOptions struct {
	// DryRun computes every artifact and reports the changes without
	// writing anything, including directories. Changes carry unified diffs.
	DryRun bool
}

// PublishResult reports a publish run.
type PublishResult struct {
	Chapter ChapterRecord `json:"chapter"`
	Source  string        `json:"source"`
	Changes []Change      `json:"changes"`
	DryRun  bool          `json:"dryRun"`
}

// RebuildResult reports a rebuild run.
type RebuildResult struct {
	Chapters int      `json:"chapters"` // records in the archive
	Changes  []Change `json:"changes"`
	DryRun   bool     `json:"dryRun"`
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(p *Publisher) {
		if l == nil {
			l = zap.NewNop()
		}
		p.logger = l
	}
}

// WithAssetLoader sets the template source, replacing the loader built from
// the config's templates.dir.
func WithAssetLoader(loader AssetLoader) Option {
	return func(p *Publisher) {
		p.loader = loader
	}
}

// WithClock sets the time source used to resolve "today".
// Panics if now is nil (programmer error).
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("serialpub: WithClock requires a non-nil function")
	}
	return func(p *Publisher) {
		p.now = now
	}
}
