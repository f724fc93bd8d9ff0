// Package calendar provides the month grid renderer and the mouse-driven
// picker shown inside a date input's popover.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
)

const (
	// GridWidth is the rendered width of a week row.
	GridWidth = len("Su Mo Tu We Th Fr Sa")
	cellWidth = 3
)

// Day describes a single day rendered in the calendar.
type Day struct {
	Day        int
	IsToday    bool
	IsSelected bool
	Disabled   bool
}

// Options controls calendar styling.
type Options struct {
	TitleStyle    lipgloss.Style
	ArrowStyle    lipgloss.Style
	HeaderStyle   lipgloss.Style
	EmptyStyle    lipgloss.Style
	DayStyle      lipgloss.Style
	DisabledStyle lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	ShowHeader    bool
}

// Render produces a multi-line calendar string for the given month.
func Render(month time.Time, days []Day, opts Options) string {
	if month.IsZero() {
		return ""
	}

	daysInMonth := DaysIn(month)

	byDay := make(map[int]Day, len(days))
	for _, d := range days {
		if d.Day >= 1 && d.Day <= daysInMonth {
			byDay[d.Day] = d
		}
	}

	var lines []string
	if opts.ShowHeader {
		lines = append(lines, opts.HeaderStyle.Render("Su Mo Tu We Th Fr Sa"))
	}

	startOffset := StartOffset(month)
	rows := Weeks(month)

	for row := 0; row < rows; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			day := row*7 + col - startOffset + 1
			if day < 1 || day > daysInMonth {
				cells = append(cells, opts.EmptyStyle.Render("  "))
				continue
			}
			cells = append(cells, renderDay(byDay[day], day, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

func renderDay(info Day, day int, opts Options) string {
	text := fmt.Sprintf("%2d", day)

	style := opts.DayStyle
	if info.Disabled {
		style = opts.DisabledStyle
	}
	if info.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if info.IsSelected {
		style = opts.SelectedStyle.Inherit(style)
	}
	return style.Render(text)
}

// RenderTitle renders the month name centred between the previous/next
// arrows, GridWidth cells wide.
func RenderTitle(month time.Time, opts Options) string {
	name := month.Format("January 2006")
	inner := GridWidth - 2
	if len(name) > inner {
		name = name[:inner]
	}
	left := (inner - len(name)) / 2
	right := inner - len(name) - left
	return opts.ArrowStyle.Render("‹") +
		strings.Repeat(" ", left) + opts.TitleStyle.Render(name) + strings.Repeat(" ", right) +
		opts.ArrowStyle.Render("›")
}

// DaysIn returns the number of days in a month.
func DaysIn(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return first.AddDate(0, 1, -1).Day()
}

// StartOffset returns the weekday column (Sunday = 0) of the month's first day.
func StartOffset(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return int(first.Weekday())
}

// Weeks returns the number of week rows needed to render month.
func Weeks(month time.Time) int {
	return (StartOffset(month) + DaysIn(month) + 6) / 7
}

// FirstOfMonth returns midnight UTC on the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ParseMonth attempts to parse "January 2006" names.
func ParseMonth(name string) (time.Time, bool) {
	if strings.TrimSpace(name) == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("January 2006", strings.TrimSpace(name))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DefaultOptions returns the styling used for calendar rendering.
func DefaultOptions() Options {
	return Options{
		TitleStyle:    lipgloss.NewStyle().Bold(true),
		ArrowStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		HeaderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		EmptyStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		DayStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		DisabledStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		TodayStyle:    lipgloss.NewStyle().Underline(true),
		SelectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		ShowHeader:    true,
	}
}
