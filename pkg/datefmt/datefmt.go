// Package datefmt owns the canonical date format used for display and for
// every value handed to an owner, plus the parseability check applied to
// typed input.
package datefmt

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the canonical month/day/4-digit-year format, e.g. "3/14/2024".
const Layout = "1/2/2006"

// ErrInvalidDate is returned when a value offered at a boundary is not a date.
var ErrInvalidDate = errors.New("invalid date")

// DefaultLayouts are tried in order by the default parser. The canonical
// layout also accepts zero-padded input such as "03/04/2024".
var DefaultLayouts = []string{
	Layout,
	"1-2-2006",
	"2006-01-02",
	"2006/1/2",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// Parser reports whether text names a calendar date and, if so, which one.
type Parser interface {
	Parse(text string) (time.Time, bool)
}

// LayoutParser accepts any of Layouts plus the keywords "today", "tomorrow"
// and "yesterday", resolved against Now.
type LayoutParser struct {
	Layouts []string
	Now     func() time.Time
}

// DefaultParser returns a LayoutParser over DefaultLayouts and the wall clock.
func DefaultParser() *LayoutParser {
	return &LayoutParser{Layouts: DefaultLayouts, Now: time.Now}
}

// Parse implements Parser. The result is normalized to midnight UTC. The zero
// time marks an unset date, so "1/1/0001" is rejected.
func (p *LayoutParser) Parse(text string) (time.Time, bool) {
	input := strings.TrimSpace(text)
	if input == "" {
		return time.Time{}, false
	}

	switch strings.ToLower(input) {
	case "today":
		return Normalize(p.now()), true
	case "tomorrow":
		return Normalize(p.now().AddDate(0, 0, 1)), true
	case "yesterday":
		return Normalize(p.now().AddDate(0, 0, -1)), true
	}

	layouts := p.Layouts
	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, input); err == nil && !t.IsZero() {
			return Normalize(t), true
		}
	}
	return time.Time{}, false
}

func (p *LayoutParser) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// IsParseable reports whether the default parser accepts text.
func IsParseable(text string) bool {
	_, ok := DefaultParser().Parse(text)
	return ok
}

// Normalize drops the time of day and location, keeping the calendar date.
func Normalize(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Format renders t in the canonical layout. The zero time renders as "".
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(Layout)
}

// Validate checks a boundary value with the default parser. An empty value
// means "absent" and yields the zero time without error.
func Validate(value string) (time.Time, error) {
	return ValidateWith(DefaultParser(), value)
}

// ValidateWith is Validate using p.
func ValidateWith(p Parser, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, ok := p.Parse(value)
	if !ok || t.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return Normalize(t), nil
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
