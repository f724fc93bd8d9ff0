// Package popover hosts arbitrary content anchored to a target element and
// reports when the user dismisses it by interacting elsewhere.
package popover

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/datebox/pkg/tui/events"
	"tableflip.dev/datebox/pkg/tui/theme"
	"tableflip.dev/datebox/pkg/tui/ui"
	overlaymgr "tableflip.dev/datebox/pkg/tui/ui/overlay"
)

// Placement says which side of the anchor the popover prefers.
type Placement int

const (
	// PlacementTop draws the popover above the anchor.
	PlacementTop Placement = iota
	// PlacementBottom draws the popover below the anchor.
	PlacementBottom
)

// Dismiss reasons carried by events.HideOverlayMsg.
const (
	ReasonEscape  = "escape"
	ReasonOutside = "outside"
)

// Hit is a click that landed on the popover content, in content coordinates.
type Hit struct {
	X  int
	Y  int
	OK bool
}

// Model is a popover host. It owns no content state: callers push the
// rendered content in and receive content-relative clicks back.
type Model struct {
	id        events.ComponentID
	shown     bool
	content   string
	placement Placement
	frame     lipgloss.Style

	anchor  ui.Rect
	exclude ui.Rect

	width  int
	height int
}

// New constructs a hidden popover host.
func New(id events.ComponentID) *Model {
	return &Model{
		id:    id,
		frame: theme.Default().Popover.Frame,
	}
}

// SetShown shows or hides the popover.
func (m *Model) SetShown(shown bool) { m.shown = shown }

// Shown reports whether the popover is displayed.
func (m *Model) Shown() bool { return m.shown }

// SetContent records the rendered content.
func (m *Model) SetContent(view string) { m.content = view }

// SetPlacement selects the preferred side of the anchor.
func (m *Model) SetPlacement(p Placement) { m.placement = p }

// SetFrame replaces the frame style drawn around content.
func (m *Model) SetFrame(style lipgloss.Style) { m.frame = style }

// SetAnchor sets the screen rectangle the popover attaches to.
func (m *Model) SetAnchor(r ui.Rect) { m.anchor = r }

// SetExclude marks a screen rectangle whose clicks never dismiss the popover,
// typically the trigger that toggles it.
func (m *Model) SetExclude(r ui.Rect) { m.exclude = r }

// SetSize records the screen size the popover is composed into.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles dismissal while shown. Clicks on the content are returned
// as a Hit for the caller to route to the content.
func (m *Model) Update(msg tea.Msg) (Hit, tea.Cmd) {
	if !m.shown {
		return Hit{}, nil
	}
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			return Hit{}, events.HideOverlayCmd(m.id, ReasonEscape)
		}
	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		bounds := m.Bounds()
		if bounds.Contains(mouse.X, mouse.Y) {
			ox, oy := m.ContentOffset()
			return Hit{X: mouse.X - bounds.X - ox, Y: mouse.Y - bounds.Y - oy, OK: true}, nil
		}
		if m.exclude.Contains(mouse.X, mouse.Y) {
			return Hit{}, nil
		}
		return Hit{}, events.HideOverlayCmd(m.id, ReasonOutside)
	}
	return Hit{}, nil
}

// Bounds returns the screen rectangle the framed popover occupies.
func (m *Model) Bounds() ui.Rect {
	framed := m.framed()
	return overlaymgr.Bounds(m.width, m.height, framed, m.overlayPlacement(framed))
}

// ContentOffset returns where content starts inside the frame.
func (m *Model) ContentOffset() (int, int) {
	return m.frame.GetBorderLeftSize() + m.frame.GetPaddingLeft(),
		m.frame.GetBorderTopSize() + m.frame.GetPaddingTop()
}

// Compose layers the popover over background when shown.
func (m *Model) Compose(background string) string {
	if !m.shown || m.content == "" || m.width <= 0 || m.height <= 0 {
		return background
	}
	framed := m.framed()
	return overlaymgr.Compose(background, m.width, m.height, framed, m.overlayPlacement(framed))
}

func (m *Model) framed() string {
	if m.content == "" {
		return ""
	}
	return m.frame.Render(m.content)
}

// overlayPlacement keeps the popover clear of the anchor and, when the
// excluded trigger shares the anchor's rows, of the whole trigger.
func (m *Model) overlayPlacement(framed string) overlaymgr.Placement {
	h := lipgloss.Height(framed)
	top := m.anchor.Y
	bottom := m.anchor.Y + max(m.anchor.Height, 1)
	if !m.exclude.Empty() && m.exclude.Y < bottom && m.exclude.Y+m.exclude.Height > top {
		top = min(top, m.exclude.Y)
		bottom = max(bottom, m.exclude.Y+m.exclude.Height)
	}
	above := top - h
	below := bottom

	y := above
	switch m.placement {
	case PlacementTop:
		if above < 0 {
			y = below
		}
	case PlacementBottom:
		y = below
		if below+h > m.height && above >= 0 {
			y = above
		}
	}
	return overlaymgr.Placement{Absolute: true, X: m.anchor.X, Y: y}
}
