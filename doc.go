// Package serialpub publishes a daily serial: one markdown chapter in, one
// HTML page out, with the archive and feed regenerated to match.
//
// # Quick Start
//
// Load a site config, create a publisher, and publish a chapter:
//
//	cfg, err := serialpub.LoadConfig("serialpub")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pub, err := serialpub.NewPublisher(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := pub.Publish(ctx, serialpub.Today(), serialpub.PublishOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Chapter.Title, res.Chapter.URL)
//
// # Publishing Pipeline
//
// A publish run follows these stages:
//
//  1. Chapter resolution: the selector (a number or "today") is mapped to a
//     chapter number and date through the series Calendar, and the
//     manuscript is looked up as YYYY-MM-DD.md, NNN.md, then N.md
//  2. Parsing: an optional YAML front matter block supplies title and
//     excerpt; missing values are derived from the body
//  3. Rendering: Goldmark (GFM, footnotes, typographer, highlighting) turns
//     the body into a fragment that is executed through the chapter template
//  4. Archive update: the chapter record is inserted or replaced, and the
//     archive JSON, archive page and RSS feed are regenerated from it
//  5. Write phase: chapter page, archive JSON, archive page, feed, each
//     written through a temporary file renamed into place
//
// Stages 1 to 4 touch nothing on disk. Publishing the same chapter twice
// with unchanged inputs produces byte-identical files: no artifact carries
// a timestamp other than the chapter dates.
//
// # Dry Runs
//
// PublishOptions.DryRun runs every stage except the write phase and returns
// the planned Change for each artifact with a unified diff:
//
//	res, err := pub.Publish(ctx, serialpub.Number(12), serialpub.PublishOptions{DryRun: true})
//	for _, c := range res.Changes {
//	    fmt.Println(c.Action, c.Path, c.Added, c.Removed)
//	}
//
// # Templates
//
// The chapter and archive pages are html/template documents. Built-in
// templates are embedded; set templates.dir in the config to override one
// or both. The data passed to each is ChapterPage and ArchivePage. Use
// WithAssetLoader to serve templates from elsewhere.
//
// # Error Handling
//
// The package defines sentinel errors for programmatic handling:
//
//	res, err := pub.Publish(ctx, sel, opts)
//	if errors.Is(err, serialpub.ErrSourceNotFound) {
//	    // no manuscript for that chapter yet
//	}
//
// Failure kinds: ErrSourceNotFound, ErrFrontMatterInvalid,
// ErrTemplateMissing, ErrWriteFailed, plus ErrInvalidChapter,
// ErrDateOutOfRange and ErrArchiveCorrupt. Messages name the offending path
// and often end with a hint line.
//
// # Maintenance
//
// Rebuild regenerates the archive JSON, archive page and feed without
// touching chapter pages, converting an archive written in the older keyed
// format. Check reports archive records without a page, pages without a
// record, and templates that fail to load or parse.
package serialpub
