package serialpub

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/gorilla/feeds"

	"github.com/alnah/go-serialpub/internal/dateutil"
)

// PublicationTime is the time of day, in UTC, a chapter is considered
// published. Feed pubDates are the chapter date at this time.
const PublicationTime = 6*time.Hour + 30*time.Minute

// DefaultFeedLimit bounds the feed to the most recent chapters.
const DefaultFeedLimit = 30

// FeedItem is one chapter in the syndication feed.
type FeedItem struct {
	Number      int
	Title       string // "Chapter N: <title>"
	Link        string // absolute
	PubDate     time.Time
	Description string
}

// Feed is an RSS 2.0 channel of chapters, newest first.
type Feed struct {
	Site  SiteInfo
	Items []FeedItem
}

// NewFeed projects archive records (any order) into a feed holding the
// limit most recent chapters, newest first. A limit of 0 keeps all.
func NewFeed(site SiteInfo, records []ChapterRecord, limit int) (*Feed, error) {
	f := &Feed{Site: site}
	for i := len(records) - 1; i >= 0; i-- {
		if limit > 0 && len(f.Items) == limit {
			break
		}
		item, err := feedItem(site.BaseURL, records[i])
		if err != nil {
			return nil, err
		}
		f.Items = append(f.Items, item)
	}
	return f, nil
}

func feedItem(baseURL string, r ChapterRecord) (FeedItem, error) {
	d, err := dateutil.ParseISO(r.Date)
	if err != nil {
		return FeedItem{}, fmt.Errorf("chapter %d: %w", r.Number, err)
	}
	return FeedItem{
		Number:      r.Number,
		Title:       fmt.Sprintf("Chapter %d: %s", r.Number, r.Title),
		Link:        baseURL + "/" + r.URL,
		PubDate:     d.Add(PublicationTime),
		Description: r.Excerpt,
	}, nil
}

// Encode renders the feed as an indented RSS 2.0 document with a trailing
// newline. The channel pubDate and lastBuildDate are the newest item's
// pubDate, so equal archives encode to equal bytes.
func (f *Feed) Encode() ([]byte, error) {
	src := &feeds.Feed{
		Title:       f.Site.Title,
		Link:        &feeds.Link{Href: f.Site.BaseURL},
		Description: f.Site.Description,
	}
	if len(f.Items) > 0 {
		src.Updated = f.Items[0].PubDate
	}
	for _, it := range f.Items {
		src.Items = append(src.Items, &feeds.Item{
			Title:       it.Title,
			Link:        &feeds.Link{Href: it.Link},
			Description: it.Description,
			Id:          it.Link,
			IsPermaLink: "true",
			Created:     it.PubDate,
		})
	}

	channel := (&feeds.Rss{Feed: src}).RssFeed()
	channel.Language = f.Site.Language

	out, err := xml.MarshalIndent(channel.FeedXml(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding feed: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}
