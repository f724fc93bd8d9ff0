package calendar

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/datebox/pkg/datefmt"
	"tableflip.dev/datebox/pkg/tui/events"
)

// Props configures a Picker. The zero value is a usable configuration, so a
// date input can merge caller-supplied props over it without losing defaults.
type Props struct {
	// HideHeader drops the weekday header row.
	HideHeader bool `mapstructure:"hideHeader"`
	// HideToday disables the today marker.
	HideToday bool `mapstructure:"hideToday"`
	// MinDate and MaxDate bound the selectable range (canonical format).
	MinDate string `mapstructure:"minDate"`
	MaxDate string `mapstructure:"maxDate"`
	// Month is shown when nothing is preselected ("January 2006").
	Month string `mapstructure:"month"`
}

// Merge returns p with every non-zero field of override applied.
func (p Props) Merge(override Props) Props {
	if override.HideHeader {
		p.HideHeader = true
	}
	if override.HideToday {
		p.HideToday = true
	}
	if override.MinDate != "" {
		p.MinDate = override.MinDate
	}
	if override.MaxDate != "" {
		p.MaxDate = override.MaxDate
	}
	if override.Month != "" {
		p.Month = override.Month
	}
	return p
}

// Picker renders one month and reports the day the user clicks on.
type Picker struct {
	id    events.ComponentID
	props Props
	opts  Options
	now   func() time.Time

	month       time.Time
	preselected time.Time
	min         time.Time
	max         time.Time
}

// NewPicker validates props and returns a picker showing the props month, or
// the current month when none is given.
func NewPicker(id events.ComponentID, props Props) (*Picker, error) {
	p := &Picker{
		id:    id,
		props: props,
		opts:  DefaultOptions(),
		now:   time.Now,
	}
	p.opts.ShowHeader = !props.HideHeader

	var err error
	if p.min, err = datefmt.Validate(props.MinDate); err != nil {
		return nil, fmt.Errorf("calendar: min date: %w", err)
	}
	if p.max, err = datefmt.Validate(props.MaxDate); err != nil {
		return nil, fmt.Errorf("calendar: max date: %w", err)
	}
	if !p.min.IsZero() && !p.max.IsZero() && p.max.Before(p.min) {
		return nil, fmt.Errorf("calendar: max date %s before min date %s", props.MaxDate, props.MinDate)
	}

	if props.Month != "" {
		month, ok := ParseMonth(props.Month)
		if !ok {
			return nil, fmt.Errorf("calendar: month %q: %w", props.Month, datefmt.ErrInvalidDate)
		}
		p.month = FirstOfMonth(month)
	} else {
		p.month = FirstOfMonth(p.now())
	}
	return p, nil
}

// SetNow overrides the clock used for the today marker and default month.
func (p *Picker) SetNow(now func() time.Time) {
	if now == nil {
		return
	}
	p.now = now
	if p.props.Month == "" && p.preselected.IsZero() {
		p.month = FirstOfMonth(now())
	}
}

// SetOptions replaces the rendering styles.
func (p *Picker) SetOptions(opts Options) {
	opts.ShowHeader = !p.props.HideHeader
	p.opts = opts
}

// SetPreselected highlights t. A new non-zero date also brings its month into
// view; clearing the highlight leaves the visible month alone.
func (p *Picker) SetPreselected(t time.Time) {
	t = datefmt.Normalize(t)
	if t.IsZero() {
		p.preselected = time.Time{}
		return
	}
	if datefmt.SameDay(t, p.preselected) {
		return
	}
	p.preselected = t
	p.month = FirstOfMonth(t)
}

// Preselected returns the highlighted date (zero when none).
func (p *Picker) Preselected() time.Time { return p.preselected }

// Month returns the first day of the visible month.
func (p *Picker) Month() time.Time { return p.month }

// PrevMonth pages the view back one month.
func (p *Picker) PrevMonth() { p.month = p.month.AddDate(0, -1, 0) }

// NextMonth pages the view forward one month.
func (p *Picker) NextMonth() { p.month = p.month.AddDate(0, 1, 0) }

// Selectable reports whether t lies inside the configured bounds.
func (p *Picker) Selectable(t time.Time) bool {
	t = datefmt.Normalize(t)
	if !p.min.IsZero() && t.Before(p.min) {
		return false
	}
	if !p.max.IsZero() && t.After(p.max) {
		return false
	}
	return true
}

// Select reports t as chosen, if it is selectable.
func (p *Picker) Select(t time.Time) tea.Cmd {
	t = datefmt.Normalize(t)
	if t.IsZero() || !p.Selectable(t) {
		return nil
	}
	return events.DateSelectedCmd(p.id, t)
}

// Click handles a mouse click at (x, y) relative to the picker's top-left
// cell. The title arrows page the month; a day cell selects that day.
func (p *Picker) Click(x, y int) tea.Cmd {
	if y == 0 {
		switch x {
		case 0:
			p.PrevMonth()
		case GridWidth - 1:
			p.NextMonth()
		}
		return nil
	}

	row := y - p.gridTop()
	if row < 0 || row >= Weeks(p.month) || x < 0 || x >= GridWidth {
		return nil
	}
	if x%cellWidth == cellWidth-1 {
		return nil
	}
	col := x / cellWidth
	day := row*7 + col - StartOffset(p.month) + 1
	if day < 1 || day > DaysIn(p.month) {
		return nil
	}
	return p.Select(time.Date(p.month.Year(), p.month.Month(), day, 0, 0, 0, 0, time.UTC))
}

// Size returns the rendered width and height.
func (p *Picker) Size() (int, int) {
	return GridWidth, p.gridTop() + Weeks(p.month)
}

// View renders the title, optional header and the day grid.
func (p *Picker) View() string {
	days := make([]Day, 0, DaysIn(p.month))
	today := time.Time{}
	if !p.props.HideToday {
		today = p.now()
	}
	for d := 1; d <= DaysIn(p.month); d++ {
		date := time.Date(p.month.Year(), p.month.Month(), d, 0, 0, 0, 0, time.UTC)
		days = append(days, Day{
			Day:        d,
			IsToday:    datefmt.SameDay(date, today),
			IsSelected: datefmt.SameDay(date, p.preselected),
			Disabled:   !p.Selectable(date),
		})
	}
	return strings.Join([]string{
		RenderTitle(p.month, p.opts),
		Render(p.month, days, p.opts),
	}, "\n")
}

func (p *Picker) gridTop() int {
	if p.opts.ShowHeader {
		return 2
	}
	return 1
}
