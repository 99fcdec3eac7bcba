package serialpub

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/alnah/go-serialpub/internal/fileutil"
)

// pageNamePattern matches chapter page files written by the publisher.
var pageNamePattern = regexp.MustCompile(`^(\d{3,})\.html$`)

// TemplateStatus reports where a page template comes from and whether it
// loads and parses.
type TemplateStatus struct {
	Name   string `json:"name"`
	Source string `json:"source"` // "custom", "embedded", or "loader"
	Error  string `json:"error,omitempty"`
}

// CheckReport lists consistency problems between the archive and the pages
// on disk. It never includes manuscript or continuity files.
type CheckReport struct {
	Chapters     int              `json:"chapters"`     // records in the archive
	MissingPages []string         `json:"missingPages"` // records whose page file is absent
	OrphanPages  []string         `json:"orphanPages"`  // pages with no archive record
	TempFiles    []string         `json:"tempFiles"`    // leftovers from interrupted writes
	Templates    []TemplateStatus `json:"templates"`
}

// OK reports whether the site has no problem.
func (r *CheckReport) OK() bool {
	if len(r.MissingPages) > 0 || len(r.OrphanPages) > 0 {
		return false
	}
	for _, t := range r.Templates {
		if t.Error != "" {
			return false
		}
	}
	return true
}

// Check inspects the published site. It reads but never writes.
// Returns ErrArchiveCorrupt when the archive cannot be decoded; every other
// finding is reported in the CheckReport.
func (p *Publisher) Check(ctx context.Context) (*CheckReport, error) {
	archive, err := p.loadArchive()
	if err != nil {
		return nil, err
	}

	report := &CheckReport{
		Chapters:     archive.Len(),
		MissingPages: []string{},
		OrphanPages:  []string{},
		TempFiles:    []string{},
	}

	for _, r := range archive.Records() {
		pagePath := filepath.Join(p.cfg.Paths.Root, filepath.FromSlash(r.URL))
		if !fileutil.FileExists(pagePath) {
			report.MissingPages = append(report.MissingPages, pagePath)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chaptersDir := p.cfg.Resolve(p.cfg.Paths.Chapters)
	entries, err := os.ReadDir(chaptersDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", chaptersDir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if fileutil.IsTempFile(name) {
			report.TempFiles = append(report.TempFiles, filepath.Join(chaptersDir, name))
			continue
		}
		m := pageNamePattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if _, ok := archive.Get(n); !ok {
			report.OrphanPages = append(report.OrphanPages, filepath.Join(chaptersDir, name))
		}
	}

	for _, name := range []string{p.cfg.Templates.Chapter, p.cfg.Templates.Archive} {
		report.Templates = append(report.Templates, p.templateStatus(name))
	}

	p.logger.Debug("site checked")
	return report, nil
}

func (p *Publisher) templateStatus(name string) TemplateStatus {
	status := TemplateStatus{Name: name, Source: "loader"}
	if a, ok := p.loader.(*assetLoaderAdapter); ok {
		src, err := a.templateSource(name)
		if err != nil {
			status.Error = err.Error()
			return status
		}
		status.Source = src
	}
	if _, err := p.renderer(name); err != nil {
		status.Error = err.Error()
	}
	return status
}
