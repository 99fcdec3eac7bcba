package serialpub

import (
	"fmt"
	"time"

	"github.com/alnah/go-serialpub/internal/dateutil"
	"github.com/alnah/go-serialpub/internal/hints"
)

// Calendar maps chapter numbers to days: chapter 1 falls on Start and each
// following chapter on the next day.
type Calendar struct {
	Start  time.Time // midnight UTC
	Length int       // number of chapters
}

// NewCalendar creates a Calendar starting on the civil date of start.
func NewCalendar(start time.Time, length int) Calendar {
	return Calendar{Start: dateutil.CivilDate(start), Length: length}
}

// DateOf returns the date of chapter n.
// Returns ErrInvalidChapter when n is outside 1..Length.
func (c Calendar) DateOf(n int) (time.Time, error) {
	if !c.Contains(n) {
		return time.Time{}, fmt.Errorf("%w: %d (series has chapters 1-%d)", ErrInvalidChapter, n, c.Length)
	}
	return c.Start.AddDate(0, 0, n-1), nil
}

// NumberOn returns the chapter published on the civil date of t.
// Returns ErrDateOutOfRange when the date falls outside the series.
func (c Calendar) NumberOn(t time.Time) (int, error) {
	day := dateutil.CivilDate(t)
	n := int(day.Sub(c.Start).Hours()/24) + 1
	if !c.Contains(n) {
		return 0, fmt.Errorf("%w: %s%s", ErrDateOutOfRange,
			day.Format(dateutil.ISOLayout), hints.ForDateOutOfRange(c.Start, c.Last()))
	}
	return n, nil
}

// Last returns the date of the final chapter.
func (c Calendar) Last() time.Time {
	return c.Start.AddDate(0, 0, c.Length-1)
}

// Contains reports whether n is a chapter of the series.
func (c Calendar) Contains(n int) bool {
	return n >= 1 && n <= c.Length
}
