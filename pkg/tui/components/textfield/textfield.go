// Package textfield defines the text field contract a date input drives and
// ships the default implementation built on bubbles' textinput.
package textfield

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/datebox/pkg/tui/events"
	"tableflip.dev/datebox/pkg/tui/theme"
	"tableflip.dev/datebox/pkg/tui/ui"
)

// Regions reported by FieldClickMsg and Anchor.
const (
	RegionPrepend = "prepend"
	RegionInput   = "input"
	RegionLabel   = "label"
)

// Options configures a text field instance.
type Options struct {
	ID           events.ComponentID
	LabelText    string
	InitialValue string
	// Prepend is the decoration rendered before the editable text.
	Prepend     string
	Placeholder string
	Theme       theme.FieldTheme
}

// TextField is the contract any text input must satisfy to be hosted by a
// date input. Implementations report activity through messages carrying
// their ID: events.FocusMsg when focus arrives, events.FieldChangeMsg after
// an edit, events.FieldFocusLostMsg with the raw text when focus leaves and
// events.FieldClickMsg for clicks on an already focused field.
type TextField interface {
	Init() tea.Cmd
	Update(tea.Msg) (TextField, tea.Cmd)
	View() (string, *tea.Cursor)
	SetSize(width, height int)

	Focus() tea.Cmd
	Blur() tea.Cmd
	Focused() bool
	// Click delivers a mouse click at (x, y) relative to the field's view.
	Click(x, y int) tea.Cmd

	Value() string
	SetValue(string)

	// Anchor exposes the element a popover should attach to.
	Anchor() ui.Anchor
}

// Factory builds a TextField. It is the substitution point for callers that
// want a different text control.
type Factory func(Options) TextField
