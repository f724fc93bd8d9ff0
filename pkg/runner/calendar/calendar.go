package calendar

import (
	"context"
	"fmt"
	"io"
	"time"

	"tableflip.dev/datebox/pkg/datefmt"
	"tableflip.dev/datebox/pkg/printers"
	cal "tableflip.dev/datebox/pkg/tui/components/calendar"
)

// Calendar prints one month, highlighting Date when given.
type Calendar struct {
	// Month is "January 2006"; defaults to Date's month, then the current one.
	Month string
	// Date is highlighted when it falls in the printed month.
	Date string
	Now  func() time.Time
	Out  io.Writer
}

func (c *Calendar) Do(ctx context.Context) error {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	selected, err := datefmt.Validate(c.Date)
	if err != nil {
		return fmt.Errorf("calendar: %w", err)
	}

	month := now()
	switch {
	case c.Month != "":
		m, ok := cal.ParseMonth(c.Month)
		if !ok {
			return fmt.Errorf("calendar: month %q: %w", c.Month, datefmt.ErrInvalidDate)
		}
		month = m
	case !selected.IsZero():
		month = selected
	}

	pp := printers.PrettyPrint{Out: c.Out}
	pp.Month(month, selected, datefmt.Normalize(now()))
	return nil
}
