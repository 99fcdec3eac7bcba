package serialpub

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Selector names the chapter to publish: an explicit number or "today".
type Selector struct {
	number int
	today  bool
}

// Number selects chapter n. Range checks happen at resolution.
func Number(n int) Selector {
	return Selector{number: n}
}

// Today selects the chapter whose date is the current day.
func Today() Selector {
	return Selector{today: true}
}

// ParseSelector parses "today" (any case) or a positive decimal number.
// Returns ErrInvalidSelector for anything else.
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "today") {
		return Today(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return Selector{}, fmt.Errorf("%w: %q (want a chapter number or \"today\")", ErrInvalidSelector, s)
	}
	return Number(n), nil
}

// IsToday reports whether the selector resolves through the clock.
func (s Selector) IsToday() bool {
	return s.today
}

// Resolve returns the chapter number for the selector under cal.
// "today" uses the civil date of now in now's location.
func (s Selector) Resolve(cal Calendar, now time.Time) (int, error) {
	if s.today {
		return cal.NumberOn(now)
	}
	if !cal.Contains(s.number) {
		return 0, fmt.Errorf("%w: %d (series has chapters 1-%d)", ErrInvalidChapter, s.number, cal.Length)
	}
	return s.number, nil
}

// String returns "today" or the chapter number.
func (s Selector) String() string {
	if s.today {
		return "today"
	}
	return strconv.Itoa(s.number)
}
