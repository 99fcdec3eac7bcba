package serialpub

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-serialpub/internal/dateutil"
	"github.com/alnah/go-serialpub/internal/fileutil"
	"github.com/alnah/go-serialpub/internal/hints"
	"github.com/alnah/go-serialpub/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ AssetLoader            = (*assetLoaderAdapter)(nil)
)

// Publisher turns manuscript chapters into the site's HTML pages, archive
// and feed. Create with NewPublisher. A Publisher is not safe for concurrent
// use: runs touch the same files and must be serialized.
type Publisher struct {
	cfg       Config // Paths.Root is absolute
	cal       Calendar
	loader    AssetLoader
	converter pipeline.HTMLConverter
	logger    *zap.Logger
	now       func() time.Time
}

// NewPublisher creates a Publisher for the site described by cfg.
// Returns ErrConfigInvalid if cfg does not validate, and ErrInvalidTemplatePath
// if templates.dir is set but unusable.
func NewPublisher(cfg *Config, opts ...Option) (*Publisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrConfigInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Publisher{
		cfg:       *cfg,
		converter: pipeline.NewGoldmarkConverter(),
		logger:    zap.NewNop(),
		now:       time.Now,
	}

	root, err := filepath.Abs(cfg.Paths.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving site root: %w", err)
	}
	p.cfg.Paths.Root = root
	p.cal = NewCalendar(p.cfg.StartDate(), p.cfg.Series.Length)

	for _, opt := range opts {
		opt(p)
	}

	if p.loader == nil {
		loader, err := NewAssetLoader(p.cfg.TemplateDir())
		if err != nil {
			return nil, err
		}
		p.loader = loader
	}

	return p, nil
}

// Calendar returns the series calendar.
func (p *Publisher) Calendar() Calendar {
	return p.cal
}

// Publish renders the selected chapter and regenerates the archive and feed.
// Files are written in order: chapter page, archive JSON, archive HTML, feed.
// With opts.DryRun nothing is written and the result carries unified diffs.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (p *Publisher) Publish(ctx context.Context, sel Selector, opts PublishOptions) (result *PublishResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	n, err := sel.Resolve(p.cal, p.now())
	if err != nil {
		return nil, err
	}
	date, err := p.cal.DateOf(n)
	if err != nil {
		return nil, err
	}
	log := p.logger.With(zap.Int("chapter", n), zap.String("date", date.Format(dateutil.ISOLayout)))

	// Resolve and parse the manuscript
	manuscriptDir := p.cfg.Resolve(p.cfg.Paths.Manuscript)
	src, err := findSource(manuscriptDir, n, date)
	if err != nil {
		return nil, err
	}
	log.Debug("source resolved", zap.String("source", src))

	raw, err := os.ReadFile(src) // #nosec G304 -- path built from site config
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}
	doc, err := pipeline.ParseDocument(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v%s", ErrFrontMatterInvalid, src, err, hints.ForFrontMatter())
	}

	// Templates are loaded before any rendering so a missing one fails fast
	chapterTmpl, err := p.renderer(p.cfg.Templates.Chapter)
	if err != nil {
		return nil, err
	}
	archiveTmpl, err := p.renderer(p.cfg.Templates.Archive)
	if err != nil {
		return nil, err
	}

	record := ChapterRecord{
		Number:  n,
		Title:   pipeline.Title(doc.FrontMatter, doc.Body, n),
		Excerpt: pipeline.Excerpt(doc.FrontMatter, doc.Body),
		Date:    date.Format(dateutil.ISOLayout),
		URL:     path.Join(p.pageURLDir(), PageFileName(n)),
	}

	// Render the chapter page
	content, err := p.renderBody(ctx, doc.Body, filepath.Dir(src))
	if err != nil {
		return nil, err
	}
	prev, next := navLinks(n, p.cal.Length)
	page, err := chapterTmpl.Render(ctx, ChapterPage{
		Site:        p.siteInfo(),
		Links:       p.siteLinks(p.pageURLDir()),
		Number:      n,
		Total:       p.cal.Length,
		Title:       record.Title,
		Excerpt:     record.Excerpt,
		Date:        record.Date,
		DisplayDate: displayDate(date, p.cfg.DateFormat),
		Year:        p.cal.Start.Year(),
		Content:     template.HTML(content), // #nosec G203 -- goldmark output, raw HTML disabled
		Prev:        prev,
		Next:        next,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}

	// Update the archive and everything derived from it
	archive, err := p.loadArchive()
	if err != nil {
		return nil, err
	}
	if archive.Upsert(record) {
		log.Debug("replacing archived record")
	}
	indexes, err := p.indexArtifacts(ctx, archive, archiveTmpl)
	if err != nil {
		return nil, err
	}

	artifacts := append([]artifact{{
		path:    filepath.Join(p.cfg.Resolve(p.cfg.Paths.Chapters), PageFileName(n)),
		content: []byte(page),
	}}, indexes...)

	changes, err := p.apply(ctx, artifacts, opts.DryRun)
	if err != nil {
		return nil, err
	}

	log.Info("chapter published",
		zap.String("title", record.Title),
		zap.Bool("dryRun", opts.DryRun),
		zap.Int("changed", countChanged(changes)),
	)

	return &PublishResult{
		Chapter: record,
		Source:  src,
		Changes: changes,
		DryRun:  opts.DryRun,
	}, nil
}

// Rebuild regenerates the archive JSON, archive HTML and feed from the
// existing archive without touching any chapter page.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (p *Publisher) Rebuild(ctx context.Context, opts PublishOptions) (result *RebuildResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	archiveTmpl, err := p.renderer(p.cfg.Templates.Archive)
	if err != nil {
		return nil, err
	}
	archive, err := p.loadArchive()
	if err != nil {
		return nil, err
	}
	artifacts, err := p.indexArtifacts(ctx, archive, archiveTmpl)
	if err != nil {
		return nil, err
	}

	changes, err := p.apply(ctx, artifacts, opts.DryRun)
	if err != nil {
		return nil, err
	}

	p.logger.Info("indexes rebuilt",
		zap.Int("chapters", archive.Len()),
		zap.Bool("dryRun", opts.DryRun),
		zap.Int("changed", countChanged(changes)),
	)

	return &RebuildResult{
		Chapters: archive.Len(),
		Changes:  changes,
		DryRun:   opts.DryRun,
	}, nil
}

// renderBody converts the markdown body to an HTML fragment whose relative
// links resolve from the chapter page.
func (p *Publisher) renderBody(ctx context.Context, body, sourceDir string) (string, error) {
	content, err := p.converter.ToHTML(ctx, pipeline.PreprocessMarkdown(body))
	if err != nil {
		return "", fmt.Errorf("converting to HTML: %w", err)
	}

	content, err = pipeline.RewriteRelativePaths(content, pipeline.LinkContext{
		SourceDir: sourceDir,
		PageDir:   p.cfg.Resolve(p.cfg.Paths.Chapters),
		Root:      p.cfg.Paths.Root,
	})
	if err != nil {
		return "", fmt.Errorf("rewriting relative paths: %w", err)
	}
	return content, nil
}

// indexArtifacts renders the archive JSON, archive page and feed.
func (p *Publisher) indexArtifacts(ctx context.Context, archive *Archive, archiveTmpl *pipeline.PageRenderer) ([]artifact, error) {
	records := archive.Records()

	archiveJSON, err := archive.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding archive: %w", err)
	}

	archiveHTMLPath := p.cfg.Resolve(p.cfg.Paths.ArchiveHTML)
	archiveDir := p.siteRel(filepath.Dir(archiveHTMLPath))
	pageData, err := buildArchivePage(records, p.siteInfo(), p.siteLinks(archiveDir), p.cal, p.cfg.DateFormat, archiveDir)
	if err != nil {
		return nil, fmt.Errorf("building archive page: %w", err)
	}
	archiveHTML, err := archiveTmpl.Render(ctx, pageData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}

	feed, err := NewFeed(p.siteInfo(), records, p.cfg.Feed.Limit)
	if err != nil {
		return nil, fmt.Errorf("building feed: %w", err)
	}
	feedXML, err := feed.Encode()
	if err != nil {
		return nil, err
	}

	return []artifact{
		{path: p.cfg.Resolve(p.cfg.Paths.ArchiveJSON), content: archiveJSON},
		{path: archiveHTMLPath, content: []byte(archiveHTML)},
		{path: p.cfg.Resolve(p.cfg.Paths.Feed), content: feedXML},
	}, nil
}

// apply plans the changes for artifacts and, unless dryRun, writes them in
// order. An output path that cannot be read back fails the run before any
// write. Cancellation is honored up to the first write.
func (p *Publisher) apply(ctx context.Context, artifacts []artifact, dryRun bool) ([]Change, error) {
	changes := make([]Change, 0, len(artifacts))
	for _, a := range artifacts {
		c, err := planChange(a, dryRun)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v%s", ErrWriteFailed, a.path, err, hints.ForWriteFailed())
		}
		changes = append(changes, c)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if dryRun {
		return changes, nil
	}

	for i, a := range artifacts {
		if err := fileutil.WriteFileAtomic(a.path, a.content, fileutil.FilePermissions); err != nil {
			return nil, fmt.Errorf("%w: %s: %v%s", ErrWriteFailed, a.path, err, hints.ForWriteFailed())
		}
		p.logger.Debug("artifact written",
			zap.String("path", a.path),
			zap.String("action", string(changes[i].Action)),
		)
	}
	return changes, nil
}

// loadArchive reads the archive JSON. A missing file is an empty archive.
func (p *Publisher) loadArchive() (*Archive, error) {
	archivePath := p.cfg.Resolve(p.cfg.Paths.ArchiveJSON)
	data, _, err := fileutil.ReadFileIfExists(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArchiveCorrupt, archivePath, err)
	}

	archive, err := archiveDecoder{cal: p.cal, pageDir: p.pageURLDir()}.decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", archivePath, err)
	}
	return archive, nil
}

// renderer loads and parses a page template.
// Returns ErrTemplateMissing when the loader has no such template and
// ErrTemplateInvalid when it does not parse.
func (p *Publisher) renderer(name string) (*pipeline.PageRenderer, error) {
	content, err := p.loader.LoadTemplate(name)
	if err != nil {
		if !errors.Is(err, ErrTemplateMissing) && !errors.Is(err, ErrInvalidTemplatePath) {
			err = fmt.Errorf("%w: %v", ErrTemplateMissing, err)
		}
		return nil, fmt.Errorf("loading template %q: %w%s", name, err, hints.ForTemplateMissing(p.cfg.TemplateDir()))
	}

	r, err := pipeline.NewPageRenderer(name, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}
	return r, nil
}

// pageURLDir returns the chapters directory relative to the site root,
// slash separated. Falls back to "chapters" when it lies outside the root.
func (p *Publisher) pageURLDir() string {
	rel := p.siteRel(p.cfg.Resolve(p.cfg.Paths.Chapters))
	if rel == "." {
		return ""
	}
	if rel == "" {
		return "chapters"
	}
	return rel
}

// siteRel returns dir relative to the site root with slashes, or "" when
// dir is outside the root.
func (p *Publisher) siteRel(dir string) string {
	rel, err := filepath.Rel(p.cfg.Paths.Root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel)
}

// siteURL returns the site-relative URL of an output file. Files outside
// the root are addressed by base name.
func (p *Publisher) siteURL(file string) string {
	rel := p.siteRel(file)
	if rel == "" {
		return filepath.Base(file)
	}
	return rel
}

// siteLinks returns the archive and feed links for a page in fromDir.
func (p *Publisher) siteLinks(fromDir string) SiteLinks {
	return siteLinks(fromDir,
		p.siteURL(p.cfg.Resolve(p.cfg.Paths.ArchiveHTML)),
		p.siteURL(p.cfg.Resolve(p.cfg.Paths.Feed)),
	)
}

func (p *Publisher) siteInfo() SiteInfo {
	return SiteInfo{
		Title:       p.cfg.Site.Title,
		Description: p.cfg.Site.Description,
		BaseURL:     p.cfg.BaseURL(),
		Language:    p.cfg.Site.Language,
		Author:      p.cfg.Site.Author,
	}
}

func countChanged(changes []Change) int {
	n := 0
	for _, c := range changes {
		if c.Action != ActionUnchanged {
			n++
		}
	}
	return n
}
