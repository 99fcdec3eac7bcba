package serialpub

import (
	"html/template"
	"path"
	"strings"
	"time"

	"github.com/alnah/go-serialpub/internal/dateutil"
)

// SiteInfo is the site metadata passed to templates and the feed.
type SiteInfo struct {
	Title       string
	Description string
	BaseURL     string // no trailing slash
	Language    string
	Author      string
}

// NavLink is a previous/next link. At series boundaries Href is "#" and
// Class is "disabled".
type NavLink struct {
	Href  string
	Class string
}

// SiteLinks are URLs to the site-wide pages, relative to the page that
// carries them.
type SiteLinks struct {
	Root    string // prefix reaching the site root, "" or "../"
	Archive string // archive page
	Feed    string // RSS feed
}

// siteLinks computes SiteLinks for a page in the site-relative directory
// fromDir. archiveURL and feedURL are site-relative.
func siteLinks(fromDir, archiveURL, feedURL string) SiteLinks {
	return SiteLinks{
		Root:    relativeURL(fromDir, ""),
		Archive: relativeURL(fromDir, archiveURL),
		Feed:    relativeURL(fromDir, feedURL),
	}
}

// ChapterPage is the data executed through the chapter template.
type ChapterPage struct {
	Site        SiteInfo
	Links       SiteLinks
	Number      int
	Total       int
	Title       string
	Excerpt     string
	Date        string // YYYY-MM-DD
	DisplayDate string
	Year        int // series start year
	Content     template.HTML
	Prev        NavLink
	Next        NavLink
}

// ArchivePage is the data executed through the archive template.
type ArchivePage struct {
	Site      SiteInfo
	Links     SiteLinks
	Published int
	Total     int
	Begins    string // display date of chapter 1, for the empty state
	Year      int
	Months    []ArchiveMonth
}

// ArchiveMonth groups chapters published in one calendar month.
type ArchiveMonth struct {
	Name     string // e.g. "January 2026"
	Chapters []ArchiveEntry
}

// ArchiveEntry is one line of the archive listing.
type ArchiveEntry struct {
	Number      int
	Title       string
	URL         string // relative to the archive page
	Date        string
	DisplayDate string
}

// navLinks returns the previous/next links for chapter n of total.
func navLinks(n, total int) (prev, next NavLink) {
	prev = NavLink{Href: "#", Class: "disabled"}
	next = NavLink{Href: "#", Class: "disabled"}
	if n > 1 {
		prev = NavLink{Href: PageFileName(n - 1)}
	}
	if n < total {
		next = NavLink{Href: PageFileName(n + 1)}
	}
	return prev, next
}

// buildArchivePage groups records by month in ascending order.
// fromDir is the archive page's site-relative directory ("." at the root).
func buildArchivePage(records []ChapterRecord, site SiteInfo, links SiteLinks, cal Calendar, dateFormat, fromDir string) (ArchivePage, error) {
	begins, err := dateutil.Format(cal.Start, dateFormat)
	if err != nil {
		return ArchivePage{}, err
	}

	page := ArchivePage{
		Site:      site,
		Links:     links,
		Published: len(records),
		Total:     cal.Length,
		Begins:    begins,
		Year:      cal.Start.Year(),
	}

	for _, r := range records {
		d, err := dateutil.ParseISO(r.Date)
		if err != nil {
			return ArchivePage{}, err
		}
		display, err := dateutil.Format(d, dateFormat)
		if err != nil {
			return ArchivePage{}, err
		}

		month := d.Format("January 2006")
		if len(page.Months) == 0 || page.Months[len(page.Months)-1].Name != month {
			page.Months = append(page.Months, ArchiveMonth{Name: month})
		}
		last := &page.Months[len(page.Months)-1]
		last.Chapters = append(last.Chapters, ArchiveEntry{
			Number:      r.Number,
			Title:       r.Title,
			URL:         relativeURL(fromDir, r.URL),
			Date:        r.Date,
			DisplayDate: display,
		})
	}
	return page, nil
}

// relativeURL rewrites a site-relative URL for a page in fromDir.
func relativeURL(fromDir, url string) string {
	fromDir = path.Clean(fromDir)
	if fromDir == "." || fromDir == "" {
		return url
	}
	depth := strings.Count(fromDir, "/") + 1
	return strings.Repeat("../", depth) + url
}

// displayDate formats t for pages, falling back to ISO on a bad format.
func displayDate(t time.Time, format string) string {
	s, err := dateutil.Format(t, format)
	if err != nil {
		return t.Format(dateutil.ISOLayout)
	}
	return s
}
