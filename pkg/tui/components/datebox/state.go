package datebox

import (
	"fmt"
	"time"

	"tableflip.dev/datebox/pkg/datefmt"
)

// Visibility is the picker's display state.
type Visibility int

const (
	// Hidden means the picker popover is not displayed.
	Hidden Visibility = iota
	// Shown means the picker popover is displayed.
	Shown
)

func (v Visibility) String() string {
	if v == Shown {
		return "shown"
	}
	return "hidden"
}

// State is everything a date input decides on. It is a plain value: Reduce
// returns a new one instead of mutating.
type State struct {
	Visibility Visibility
	// PreviouslyShown is set whenever the picker is hidden and cleared when
	// the field loses focus. While set, focus alone does not open the picker.
	PreviouslyShown bool
	// Selected is the committed date, zero when unset.
	Selected time.Time
}

// HasSelection reports whether a date is committed.
func (s State) HasSelection() bool { return !s.Selected.IsZero() }

// SelectedText returns the committed date in canonical format, or "".
func (s State) SelectedText() string { return datefmt.Format(s.Selected) }

// EventKind enumerates the inputs the state machine reacts to.
type EventKind int

const (
	// EventFocusGained is the text field receiving focus.
	EventFocusGained EventKind = iota
	// EventClick is a click on the focused text field or its decoration.
	EventClick
	// EventChange is an edit of the text field's value.
	EventChange
	// EventFocusLost is the text field losing focus; Text holds its value.
	EventFocusLost
	// EventDateSelected is a day chosen on the calendar; Date holds it.
	EventDateSelected
	// EventDismiss is the popover closed by an outside interaction.
	EventDismiss
	// EventPreselect is an owner-supplied date; Date holds it (zero clears).
	EventPreselect
)

var eventNames = map[EventKind]string{
	EventFocusGained:  "focus-gained",
	EventClick:        "click",
	EventChange:       "change",
	EventFocusLost:    "focus-lost",
	EventDateSelected: "date-selected",
	EventDismiss:      "dismiss",
	EventPreselect:    "preselect",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one input to Reduce.
type Event struct {
	Kind EventKind
	Text string
	Date time.Time
}

// EffectKind enumerates the side effects Reduce asks the host to perform.
type EffectKind int

const (
	// EffectNotify fires the owner's selection callback with Value.
	EffectNotify EffectKind = iota
	// EffectDisplay replaces the text field's contents with Value.
	EffectDisplay
)

func (k EffectKind) String() string {
	if k == EffectNotify {
		return "notify"
	}
	return "display"
}

// Effect is a side effect produced by a transition. Value is always in the
// canonical format (or "" for a cleared display).
type Effect struct {
	Kind  EffectKind
	Value string
}

// Reduce applies ev to s and returns the next state plus the effects to run,
// in order. It has no other side effects; p is only consulted for
// EventFocusLost.
func Reduce(s State, ev Event, p datefmt.Parser) (State, []Effect) {
	switch ev.Kind {
	case EventFocusGained:
		if !s.PreviouslyShown {
			s.Visibility = Shown
		}
		return s, nil

	case EventClick:
		if s.Visibility == Shown {
			s.Visibility = Hidden
		} else {
			s.Visibility = Shown
		}
		return s, nil

	case EventChange:
		s.Selected = time.Time{}
		return s, nil

	case EventFocusLost:
		s.PreviouslyShown = false
		if p == nil {
			p = datefmt.DefaultParser()
		}
		parsed, ok := p.Parse(ev.Text)
		if !ok || parsed.IsZero() {
			s.Selected = time.Time{}
			return s, nil
		}
		return commit(s, parsed)

	case EventDateSelected:
		s = hide(s)
		if ev.Date.IsZero() {
			return s, nil
		}
		return commit(s, ev.Date)

	case EventDismiss:
		return hide(s), nil

	case EventPreselect:
		s.Selected = datefmt.Normalize(ev.Date)
		return s, []Effect{{Kind: EffectDisplay, Value: datefmt.Format(s.Selected)}}
	}
	return s, nil
}

func hide(s State) State {
	s.Visibility = Hidden
	s.PreviouslyShown = true
	return s
}

func commit(s State, date time.Time) (State, []Effect) {
	s.Selected = datefmt.Normalize(date)
	value := datefmt.Format(s.Selected)
	return s, []Effect{
		{Kind: EffectDisplay, Value: value},
		{Kind: EffectNotify, Value: value},
	}
}
