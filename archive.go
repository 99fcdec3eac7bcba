package serialpub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"slices"
	"sort"
	"strconv"

	"github.com/alnah/go-serialpub/internal/dateutil"
)

// Archive is the ordered set of published chapters, unique by number.
type Archive struct {
	records []ChapterRecord
}

// archiveDocument is the on-disk form of an Archive.
type archiveDocument struct {
	Chapters []ChapterRecord `json:"chapters"`
}

// legacyRecord is an entry of the keyed archive written by earlier tooling:
// {"chapters": {"1": {"title": ..., "date": ..., "file": ..., "excerpt": ...}}}
type legacyRecord struct {
	Title   string `json:"title"`
	Date    string `json:"date"` // display date, ignored: recomputed from the number
	File    string `json:"file"`
	Excerpt string `json:"excerpt"`
}

// NewArchive returns an archive holding records, sorted by number.
// Later duplicates replace earlier ones.
func NewArchive(records ...ChapterRecord) *Archive {
	a := &Archive{}
	for _, r := range records {
		a.Upsert(r)
	}
	return a
}

// Upsert inserts r, or replaces the record with the same number.
// Reports whether an existing record was replaced.
func (a *Archive) Upsert(r ChapterRecord) bool {
	i, found := slices.BinarySearchFunc(a.records, r.Number, func(e ChapterRecord, n int) int {
		return e.Number - n
	})
	if found {
		a.records[i] = r
		return true
	}
	a.records = slices.Insert(a.records, i, r)
	return false
}

// Get returns the record for chapter n.
func (a *Archive) Get(n int) (ChapterRecord, bool) {
	i, found := slices.BinarySearchFunc(a.records, n, func(e ChapterRecord, n int) int {
		return e.Number - n
	})
	if !found {
		return ChapterRecord{}, false
	}
	return a.records[i], true
}

// Records returns a copy of the records in ascending number order.
func (a *Archive) Records() []ChapterRecord {
	return slices.Clone(a.records)
}

// Len returns the number of published chapters.
func (a *Archive) Len() int {
	return len(a.records)
}

// Encode renders the archive as {"chapters": [...]}, 2-space indented,
// HTML characters unescaped, with a trailing newline.
func (a *Archive) Encode() ([]byte, error) {
	doc := archiveDocument{Chapters: a.records}
	if doc.Chapters == nil {
		doc.Chapters = []ChapterRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// archiveDecoder turns archive JSON into an Archive. The calendar and page
// directory are needed to convert the legacy keyed form.
type archiveDecoder struct {
	cal     Calendar
	pageDir string // site-relative, slash separated, e.g. "chapters"
}

// decode parses data. Empty input yields an empty archive.
// Returns ErrArchiveCorrupt for unparsable JSON, duplicate or out-of-range
// numbers, and malformed dates.
func (d archiveDecoder) decode(data []byte) (*Archive, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Archive{}, nil
	}

	var envelope struct {
		Chapters json.RawMessage `json:"chapters"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveCorrupt, err)
	}

	raw := bytes.TrimSpace(envelope.Chapters)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return &Archive{}, nil
	case raw[0] == '{':
		return d.decodeLegacy(raw)
	default:
		return d.decodeList(raw)
	}
}

func (d archiveDecoder) decodeList(raw json.RawMessage) (*Archive, error) {
	var records []ChapterRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveCorrupt, err)
	}

	a := &Archive{}
	for _, r := range records {
		if !d.cal.Contains(r.Number) {
			return nil, fmt.Errorf("%w: chapter number %d out of range", ErrArchiveCorrupt, r.Number)
		}
		if _, err := dateutil.ParseISO(r.Date); err != nil {
			return nil, fmt.Errorf("%w: chapter %d: %v", ErrArchiveCorrupt, r.Number, err)
		}
		if a.Upsert(r) {
			return nil, fmt.Errorf("%w: chapter %d listed twice", ErrArchiveCorrupt, r.Number)
		}
	}
	return a, nil
}

func (d archiveDecoder) decodeLegacy(raw json.RawMessage) (*Archive, error) {
	var keyed map[string]legacyRecord
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveCorrupt, err)
	}

	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	a := &Archive{}
	for _, k := range keys {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("%w: chapter key %q is not a number", ErrArchiveCorrupt, k)
		}
		date, err := d.cal.DateOf(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrArchiveCorrupt, err)
		}
		lr := keyed[k]
		file := lr.File
		if file == "" {
			file = PageFileName(n)
		}
		if a.Upsert(ChapterRecord{
			Number:  n,
			Title:   lr.Title,
			Excerpt: lr.Excerpt,
			Date:    date.Format(dateutil.ISOLayout),
			URL:     path.Join(d.pageDir, file),
		}) {
			return nil, fmt.Errorf("%w: chapter %d listed twice", ErrArchiveCorrupt, n)
		}
	}
	return a, nil
}
