package events

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// FocusMsg indicates a component just gained focus.
type FocusMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m FocusMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"focus"`, m.Component)
}

// FocusCmd wraps a FocusMsg in a tea.Cmd helper.
func FocusCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return FocusMsg{Component: component}
	}
}

// FieldFocusLostMsg indicates a text field lost focus. Value carries the raw
// text present at the moment focus left.
type FieldFocusLostMsg struct {
	Component ComponentID
	Value     string
}

// Describe implements the logging helper.
func (m FieldFocusLostMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"blur" value:%q`, m.Component, m.Value)
}

// FieldFocusLostCmd wraps FieldFocusLostMsg.
func FieldFocusLostCmd(component ComponentID, value string) tea.Cmd {
	return func() tea.Msg {
		return FieldFocusLostMsg{Component: component, Value: value}
	}
}

// FieldChangeMsg is emitted after an edit changed a text field's value.
type FieldChangeMsg struct {
	Component ComponentID
	Value     string
}

// Describe implements the logging helper.
func (m FieldChangeMsg) Describe() string {
	return fmt.Sprintf(`component:%q value:%q`, m.Component, m.Value)
}

// FieldChangeCmd wraps FieldChangeMsg.
func FieldChangeCmd(component ComponentID, value string) tea.Cmd {
	return func() tea.Msg {
		return FieldChangeMsg{Component: component, Value: value}
	}
}

// FieldClickMsg is emitted when an already focused text field (or its
// prepended decoration) is clicked.
type FieldClickMsg struct {
	Component ComponentID
	Region    string
}

// Describe implements the logging helper.
func (m FieldClickMsg) Describe() string {
	return fmt.Sprintf(`component:%q region:%q`, m.Component, m.Region)
}

// FieldClickCmd wraps FieldClickMsg.
func FieldClickCmd(component ComponentID, region string) tea.Cmd {
	return func() tea.Msg {
		return FieldClickMsg{Component: component, Region: region}
	}
}

// DateSelectedMsg is emitted by a calendar picker when the user chooses a day.
type DateSelectedMsg struct {
	Component ComponentID
	Date      time.Time
}

// Describe implements the logging helper.
func (m DateSelectedMsg) Describe() string {
	return fmt.Sprintf(`component:%q date:%q`, m.Component, m.Date.Format("2006-01-02"))
}

// DateSelectedCmd wraps DateSelectedMsg.
func DateSelectedCmd(component ComponentID, date time.Time) tea.Cmd {
	return func() tea.Msg {
		return DateSelectedMsg{Component: component, Date: date}
	}
}

// HideOverlayMsg is emitted by a popover host dismissed by an interaction
// outside of it.
type HideOverlayMsg struct {
	Component ComponentID
	Reason    string
}

// Describe implements the logging helper.
func (m HideOverlayMsg) Describe() string {
	return fmt.Sprintf(`component:%q reason:%q`, m.Component, m.Reason)
}

// HideOverlayCmd wraps HideOverlayMsg.
func HideOverlayCmd(component ComponentID, reason string) tea.Cmd {
	return func() tea.Msg {
		return HideOverlayMsg{Component: component, Reason: reason}
	}
}

// DateCommitMsg announces that a date input committed a new value. Value is
// always in the canonical display format.
type DateCommitMsg struct {
	Component ComponentID
	Value     string
}

// Describe implements the logging helper.
func (m DateCommitMsg) Describe() string {
	return fmt.Sprintf(`component:%q value:%q`, m.Component, m.Value)
}

// DateCommitCmd wraps DateCommitMsg.
func DateCommitCmd(component ComponentID, value string) tea.Cmd {
	return func() tea.Msg {
		return DateCommitMsg{Component: component, Value: value}
	}
}

// PreselectMsg pushes an owner-supplied date into a date input, replacing
// whatever it currently holds. An empty Value clears the selection.
type PreselectMsg struct {
	Component ComponentID
	Value     string
}

// Describe implements the logging helper.
func (m PreselectMsg) Describe() string {
	return fmt.Sprintf(`component:%q value:%q`, m.Component, m.Value)
}

// PreselectCmd wraps PreselectMsg.
func PreselectCmd(component ComponentID, value string) tea.Cmd {
	return func() tea.Msg {
		return PreselectMsg{Component: component, Value: value}
	}
}

// DebugMsg captures optional diagnostic notes emitted by components.
type DebugMsg struct {
	Component ComponentID
	Context   string
	Detail    string
}

// Describe renders the debug message in a human-readable format.
func (m DebugMsg) Describe() string {
	return fmt.Sprintf(`component:%q context:%q detail:%q`, m.Component, m.Context, m.Detail)
}

// DebugCmd wraps DebugMsg creation in a tea.Cmd helper.
func DebugCmd(component ComponentID, context, detail string) tea.Cmd {
	return func() tea.Msg {
		return DebugMsg{Component: component, Context: context, Detail: detail}
	}
}

// Source returns the component that emitted msg, when msg is one of the
// messages defined in this package.
func Source(msg tea.Msg) (ComponentID, bool) {
	switch v := msg.(type) {
	case FocusMsg:
		return v.Component, true
	case FieldFocusLostMsg:
		return v.Component, true
	case FieldChangeMsg:
		return v.Component, true
	case FieldClickMsg:
		return v.Component, true
	case DateSelectedMsg:
		return v.Component, true
	case HideOverlayMsg:
		return v.Component, true
	case DateCommitMsg:
		return v.Component, true
	case PreselectMsg:
		return v.Component, true
	case DebugMsg:
		return v.Component, true
	default:
		return "", false
	}
}
