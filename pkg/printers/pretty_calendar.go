package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/datebox/pkg/datefmt"
	"tableflip.dev/datebox/pkg/tui/components/calendar"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints the month containing then. The selected day is inverted and
// today is bold; either may be zero.
func (pp *PrettyPrint) Month(then, selected, today time.Time) {
	out := pp.out()
	month := calendar.FirstOfMonth(then)

	tf := color.New(color.FgWhite, color.Italic)
	title := month.Format("January 2006")
	mid := (width - len(title)) / 2
	_, _ = tf.Fprintf(out, "%s%s%s\n", strings.Repeat(" ", mid), title, strings.Repeat(" ", width-mid-len(title)))

	hf := color.New(color.Faint)
	_, _ = hf.Fprintln(out, "Su Mo Tu We Th Fr Sa")

	// Pad out the start of the month.
	_, _ = fmt.Fprint(out, strings.Repeat("   ", calendar.StartOffset(month)))

	plain := color.New(color.FgWhite)
	sunday := color.New(color.Underline)
	bold := color.New(color.Bold, color.FgHiWhite)
	picked := color.New(color.ReverseVideo, color.Bold)

	d := month.Weekday()
	days := calendar.DaysIn(month)
	for i := 1; i <= days; i++ {
		date := time.Date(month.Year(), month.Month(), i, 0, 0, 0, 0, time.UTC)

		printer := plain
		switch {
		case datefmt.SameDay(date, selected):
			printer = picked
		case datefmt.SameDay(date, today):
			printer = bold
		case d == time.Sunday:
			printer = sunday
		}
		_, _ = printer.Fprintf(out, "%2d", i)

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(out, "\n")
		} else if i < days {
			_, _ = fmt.Fprint(out, " ")
		}
	}
	if d != time.Sunday {
		_, _ = fmt.Fprint(out, "\n")
	}
}
