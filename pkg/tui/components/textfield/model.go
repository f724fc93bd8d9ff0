package textfield

import (
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/datebox/pkg/tui/events"
	"tableflip.dev/datebox/pkg/tui/theme"
	"tableflip.dev/datebox/pkg/tui/ui"
)

// Model is the built-in text field: a label line above a prepended
// decoration and a single-line input.
type Model struct {
	id      events.ComponentID
	label   string
	prepend string
	theme   theme.FieldTheme

	input   textinput.Model
	focused bool
	width   int
}

var _ TextField = (*Model)(nil)

// New is the default Factory.
func New(opts Options) TextField {
	return NewModel(opts)
}

// NewModel constructs the built-in field.
func NewModel(opts Options) *Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = opts.Placeholder
	in.SetValue(opts.InitialValue)
	in.CursorEnd()

	fieldTheme := opts.Theme
	if fieldTheme.Glyph == "" {
		fieldTheme = theme.Default().Field
	}
	prepend := opts.Prepend
	if prepend == "" {
		prepend = fieldTheme.Glyph
	}

	return &Model{
		id:      opts.ID,
		label:   opts.LabelText,
		prepend: prepend,
		theme:   fieldTheme,
		input:   in,
	}
}

// Init implements TextField.
func (m *Model) Init() tea.Cmd { return nil }

// Update forwards input to the textinput and reports value changes.
func (m *Model) Update(msg tea.Msg) (TextField, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok && !m.focused {
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		return m, tea.Batch(cmd, events.FieldChangeCmd(m.id, after))
	}
	return m, cmd
}

// View renders the label line and the input line.
func (m *Model) View() (string, *tea.Cursor) {
	labelStyle := m.theme.Label
	iconStyle := m.theme.Icon
	if m.focused {
		labelStyle = m.theme.LabelFocused
		iconStyle = m.theme.IconActive
	}

	label := m.label
	if m.width > 0 {
		label = truncate.StringWithTail(label, uint(m.width), "…")
	}
	line := iconStyle.Render(m.prepend) + " " + m.theme.Input.Render(m.input.View())
	view := lipgloss.JoinVertical(lipgloss.Left, labelStyle.Render(label), line)

	var cursor *tea.Cursor
	if c := m.input.Cursor(); c != nil && m.focused {
		clone := *c
		clone.X += m.inputOffset()
		clone.Y++
		cursor = &clone
	}
	return view, cursor
}

// SetSize sizes the input to the space left after the decoration.
func (m *Model) SetSize(width, _ int) {
	m.width = width
	inputWidth := width - m.inputOffset() - 1
	if inputWidth < 1 {
		inputWidth = 1
	}
	m.input.SetWidth(inputWidth)
}

// Focus gives the field focus and reports it. The cursor is drawn steady, so
// the textinput blink command is not scheduled.
func (m *Model) Focus() tea.Cmd {
	if m.focused {
		return nil
	}
	m.focused = true
	_ = m.input.Focus()
	return events.FocusCmd(m.id)
}

// Blur removes focus and reports the raw text left in the field.
func (m *Model) Blur() tea.Cmd {
	if !m.focused {
		return nil
	}
	m.focused = false
	m.input.Blur()
	return events.FieldFocusLostCmd(m.id, m.input.Value())
}

// Focused reports whether the field holds focus.
func (m *Model) Focused() bool { return m.focused }

// Click focuses an unfocused field. Once focused, clicks are reported with
// the region they landed on.
func (m *Model) Click(x, y int) tea.Cmd {
	if !m.focused {
		return m.Focus()
	}
	return events.FieldClickCmd(m.id, m.regionAt(x, y))
}

// Value returns the raw text.
func (m *Model) Value() string { return m.input.Value() }

// SetValue replaces the text without reporting a change.
func (m *Model) SetValue(v string) {
	m.input.SetValue(v)
	m.input.CursorEnd()
}

// Anchor reports the prepended decoration on the input line.
func (m *Model) Anchor() ui.Anchor {
	return ui.Anchor{
		Component: m.id,
		Region:    RegionPrepend,
		X:         0,
		Y:         1,
		Width:     lipgloss.Width(m.prepend),
	}
}

func (m *Model) inputOffset() int {
	return lipgloss.Width(m.prepend) + 1
}

func (m *Model) regionAt(x, y int) string {
	switch {
	case y == 0:
		return RegionLabel
	case x < lipgloss.Width(m.prepend):
		return RegionPrepend
	default:
		return RegionInput
	}
}
