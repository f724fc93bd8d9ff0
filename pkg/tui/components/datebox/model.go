// Package datebox is a date input: a text field with a prepended calendar
// decoration that opens an anchored calendar picker. Typing, picking and
// owner preselection all reconcile into one canonical selected date.
package datebox

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/datebox/pkg/datefmt"
	"tableflip.dev/datebox/pkg/tui/components/calendar"
	"tableflip.dev/datebox/pkg/tui/components/popover"
	"tableflip.dev/datebox/pkg/tui/components/textfield"
	"tableflip.dev/datebox/pkg/tui/events"
	"tableflip.dev/datebox/pkg/tui/theme"
	"tableflip.dev/datebox/pkg/tui/ui"
)

const placeholder = "m/d/yyyy"

// ErrLabelRequired is returned by New when Options.LabelText is empty.
var ErrLabelRequired = errors.New("datebox: label text is required")

// Options configures a date input.
type Options struct {
	ID events.ComponentID
	// LabelText is forwarded to the text field. Required.
	LabelText string
	// TextComponent builds the text field; defaults to textfield.New.
	TextComponent textfield.Factory
	// DateSelected receives every committed date in canonical format.
	DateSelected func(string)
	// PreselectedDate seeds the selection. Empty means unset.
	PreselectedDate string
	// DatePickerProps is passed through to the calendar picker.
	DatePickerProps calendar.Props
	Parser          datefmt.Parser
	Theme           theme.Theme
	Logger          *log.Logger
	// Now overrides the picker clock; used by tests.
	Now func() time.Time
}

// Model is a date input instance. Each instance owns its state; nothing is
// shared between instances.
type Model struct {
	id        events.ComponentID
	fieldID   events.ComponentID
	pickerID  events.ComponentID
	popoverID events.ComponentID

	label        string
	factory      textfield.Factory
	dateSelected func(string)
	parser       datefmt.Parser
	theme        theme.Theme
	logger       *log.Logger

	state State

	field   textfield.TextField
	picker  *calendar.Picker
	popover *popover.Model

	anchor  ui.Anchor
	originX int
	originY int
	width   int
}

// New validates opts and builds a hidden date input.
func New(opts Options) (*Model, error) {
	if strings.TrimSpace(opts.LabelText) == "" {
		return nil, ErrLabelRequired
	}

	id := opts.ID
	if id == "" {
		id = "datebox"
	}
	m := &Model{
		id:           id,
		fieldID:      id + "/field",
		pickerID:     id + "/calendar",
		popoverID:    id + "/popover",
		label:        opts.LabelText,
		factory:      opts.TextComponent,
		dateSelected: opts.DateSelected,
		parser:       opts.Parser,
		theme:        opts.Theme,
		logger:       opts.Logger,
		state:        State{Visibility: Hidden},
	}
	if m.factory == nil {
		m.factory = textfield.New
	}
	if m.dateSelected == nil {
		m.dateSelected = func(string) {}
	}
	if m.parser == nil {
		m.parser = datefmt.DefaultParser()
	}
	preselected, err := datefmt.ValidateWith(m.parser, opts.PreselectedDate)
	if err != nil {
		return nil, fmt.Errorf("datebox: preselected date: %w", err)
	}
	m.state.Selected = preselected
	if m.theme.Field.Glyph == "" {
		m.theme = theme.Default()
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard, "", 0)
	}

	m.picker, err = calendar.NewPicker(m.pickerID, opts.DatePickerProps)
	if err != nil {
		return nil, fmt.Errorf("datebox: picker props: %w", err)
	}
	if opts.Now != nil {
		m.picker.SetNow(opts.Now)
	}

	m.popover = popover.New(m.popoverID)
	m.popover.SetPlacement(popover.PlacementTop)
	m.popover.SetFrame(m.theme.Popover.Frame)

	m.field = m.mountField()
	m.sync()
	return m, nil
}

func (m *Model) mountField() textfield.TextField {
	field := m.factory(textfield.Options{
		ID:           m.fieldID,
		LabelText:    m.label,
		InitialValue: m.state.SelectedText(),
		Prepend:      m.theme.Field.Glyph,
		Placeholder:  placeholder,
		Theme:        m.theme.Field,
	})
	if m.width > 0 {
		field.SetSize(m.width, 2)
	}
	return field
}

// Init captures the popover anchor from the mounted field.
func (m *Model) Init() tea.Cmd {
	m.anchor = m.field.Anchor()
	m.sync()
	return m.field.Init()
}

// SetTextComponent swaps the text field implementation. The new field is
// mounted with the current selection and the anchor is captured again.
func (m *Model) SetTextComponent(factory textfield.Factory) tea.Cmd {
	if factory == nil {
		factory = textfield.New
	}
	m.factory = factory
	m.field = m.mountField()
	return m.Init()
}

// Update routes collaborator events into the state machine and forwards
// input to the collaborators.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case events.FocusMsg:
		if msg.Component == m.fieldID {
			return m, m.apply(Event{Kind: EventFocusGained})
		}
	case events.FieldClickMsg:
		if msg.Component == m.fieldID {
			return m, m.apply(Event{Kind: EventClick})
		}
	case events.FieldChangeMsg:
		if msg.Component == m.fieldID {
			return m, m.apply(Event{Kind: EventChange, Text: msg.Value})
		}
	case events.FieldFocusLostMsg:
		if msg.Component == m.fieldID {
			return m, m.apply(Event{Kind: EventFocusLost, Text: msg.Value})
		}
	case events.DateSelectedMsg:
		if msg.Component == m.pickerID {
			return m, m.apply(Event{Kind: EventDateSelected, Date: msg.Date})
		}
	case events.HideOverlayMsg:
		if msg.Component == m.popoverID {
			return m, m.apply(Event{Kind: EventDismiss})
		}
	case events.PreselectMsg:
		if msg.Component == m.id {
			if err := m.SetPreselectedDate(msg.Value); err != nil {
				m.logger.Printf("datebox[%s]: ignoring preselection: %v", m.id, err)
			}
		}
		return m, nil
	case tea.MouseClickMsg:
		return m, m.handleClick(msg)
	case tea.KeyPressMsg:
		if m.popover.Shown() && msg.String() == "esc" {
			_, cmd := m.popover.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	return m, cmd
}

func (m *Model) handleClick(msg tea.MouseClickMsg) tea.Cmd {
	if m.popover.Shown() {
		hit, cmd := m.popover.Update(msg)
		if hit.OK {
			cmd = m.picker.Click(hit.X, hit.Y)
			m.sync()
			return cmd
		}
		if cmd != nil {
			return cmd
		}
	}
	mouse := msg.Mouse()
	if rect := m.FieldRect(); rect.Contains(mouse.X, mouse.Y) {
		return m.field.Click(mouse.X-rect.X, mouse.Y-rect.Y)
	}
	return nil
}

// apply runs one transition and performs its effects.
func (m *Model) apply(ev Event) tea.Cmd {
	prev := m.state
	next, effects := Reduce(m.state, ev, m.parser)
	m.state = next
	m.logger.Printf("datebox[%s]: %s visibility=%s->%s previouslyShown=%t->%t selected=%q->%q",
		m.id, ev.Kind, prev.Visibility, next.Visibility,
		prev.PreviouslyShown, next.PreviouslyShown,
		prev.SelectedText(), next.SelectedText())

	var cmds []tea.Cmd
	for _, eff := range effects {
		switch eff.Kind {
		case EffectDisplay:
			m.field.SetValue(eff.Value)
		case EffectNotify:
			m.dateSelected(eff.Value)
			cmds = append(cmds, events.DateCommitCmd(m.id, eff.Value))
		}
	}
	m.sync()
	return tea.Batch(cmds...)
}

// sync pushes state into the picker and popover.
func (m *Model) sync() {
	m.picker.SetPreselected(m.state.Selected)
	m.popover.SetShown(m.state.Visibility == Shown)
	m.popover.SetContent(m.picker.View())
	if !m.anchor.IsZero() {
		m.popover.SetAnchor(m.anchor.Rect(m.originX, m.originY))
	}
	m.popover.SetExclude(m.FieldRect())
}

// SetPreselectedDate overwrites the selection with an owner-supplied value,
// discarding any in-progress edit. An empty value clears the selection.
func (m *Model) SetPreselectedDate(value string) error {
	date, err := datefmt.ValidateWith(m.parser, value)
	if err != nil {
		return fmt.Errorf("datebox: preselected date: %w", err)
	}
	m.Preselect(date)
	return nil
}

// Preselect is SetPreselectedDate for an already parsed date.
func (m *Model) Preselect(date time.Time) {
	_ = m.apply(Event{Kind: EventPreselect, Date: date})
}

// Focus moves focus into the text field.
func (m *Model) Focus() tea.Cmd { return m.field.Focus() }

// Blur takes focus away from the text field.
func (m *Model) Blur() tea.Cmd { return m.field.Blur() }

// Focused reports whether the text field holds focus.
func (m *Model) Focused() bool { return m.field.Focused() }

// View renders the text field. The popover is drawn separately by Overlay so
// it can extend beyond the field's own lines.
func (m *Model) View() (string, *tea.Cursor) {
	return m.field.View()
}

// Overlay draws the picker popover over a full-screen frame.
func (m *Model) Overlay(background string) string {
	return m.popover.Compose(background)
}

// SetSize sets the field width.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.field.SetSize(width, height)
	m.sync()
}

// SetOrigin records where the field's view starts on screen.
func (m *Model) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
	m.sync()
}

// SetScreenSize records the frame size the popover composes into.
func (m *Model) SetScreenSize(width, height int) {
	m.popover.SetSize(width, height)
}

// FieldRect returns the field's screen rectangle.
func (m *Model) FieldRect() ui.Rect {
	view, _ := m.field.View()
	w := m.width
	if w <= 0 {
		w = lipgloss.Width(view)
	}
	return ui.Rect{X: m.originX, Y: m.originY, Width: w, Height: lipgloss.Height(view)}
}

// PopoverBounds returns the popover's screen rectangle (empty when hidden).
func (m *Model) PopoverBounds() ui.Rect {
	if !m.popover.Shown() {
		return ui.Rect{}
	}
	return m.popover.Bounds()
}

// ID returns the component identifier used for DateCommitMsg and PreselectMsg.
func (m *Model) ID() events.ComponentID { return m.id }

// FieldID returns the identifier the text field reports events under.
func (m *Model) FieldID() events.ComponentID { return m.fieldID }

// State returns a copy of the current state.
func (m *Model) State() State { return m.state }

// Value returns the committed date in canonical format, or "".
func (m *Model) Value() string { return m.state.SelectedText() }

// Text returns the raw text in the field.
func (m *Model) Text() string { return m.field.Value() }

// Anchor returns the captured popover anchor.
func (m *Model) Anchor() ui.Anchor { return m.anchor }

// Picker exposes the calendar for hosts that drive it programmatically.
func (m *Model) Picker() *calendar.Picker { return m.picker }
