package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/datebox/pkg/tui/components/eventviewer"
)

type options struct {
	full   bool
	width  int
	height int
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "testbed",
		Short: "Run the component testbed harness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return newDateboxCmd(&opts).RunE(cmd, args)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.full, "full", false, "use the full terminal window")
	rootCmd.PersistentFlags().IntVar(&opts.width, "width", 60, "window width when not fullscreen")
	rootCmd.PersistentFlags().IntVar(&opts.height, "height", 16, "window height when not fullscreen")

	rootCmd.AddCommand(newDateboxCmd(&opts))
	rootCmd.AddCommand(newCalendarCmd(&opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// testbedModel frames one component at the top of the screen and logs every
// message into an event panel below it.
type testbedModel struct {
	fullscreen bool
	maxWidth   int
	maxHeight  int

	termWidth  int
	termHeight int

	focused bool

	events *eventviewer.Model

	frameX      int
	frameWidth  int
	frameHeight int
	innerWidth  int
	innerHeight int
	eventHeight int
	layoutDirty bool
}

func newTestbedModel(opts options) testbedModel {
	return testbedModel{
		fullscreen:  opts.full,
		maxWidth:    opts.width,
		maxHeight:   opts.height,
		events:      eventviewer.NewModel(400),
		layoutDirty: true,
	}
}

// Update records msg and tracks the terminal size. It reports whether the
// user asked to quit.
func (m *testbedModel) Update(msg tea.Msg) bool {
	m.events.Record(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.layoutDirty = true
		m.ensureLayout()
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return true
		}
	}
	return false
}

// contentOrigin is the screen cell of the frame's top-left content cell.
func (m *testbedModel) contentOrigin() (int, int) {
	m.ensureLayout()
	return m.frameX + 1, 1
}

func (m *testbedModel) composeView(content string, cursor *tea.Cursor) (string, *tea.Cursor) {
	if m.termWidth == 0 || m.termHeight == 0 {
		return "Resizing…", nil
	}
	m.ensureLayout()

	frame, cursor := m.renderFrame(content, cursor)
	frameBlock, cursor := m.placeFrame(frame, cursor)

	if events := m.renderEvents(); events != "" {
		frameBlock = lipgloss.JoinVertical(lipgloss.Left, frameBlock, "", events)
	}
	return frameBlock, cursor
}

func (m *testbedModel) renderFrame(content string, cursor *tea.Cursor) (string, *tea.Cursor) {
	borderStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	if m.focused {
		borderStyle = borderStyle.BorderForeground(lipgloss.Color("#39FF14"))
	} else {
		borderStyle = borderStyle.BorderForeground(lipgloss.Color("240"))
	}

	contentView := lipgloss.NewStyle().
		Width(m.innerWidth).
		Height(m.innerHeight).
		MaxHeight(m.innerHeight).
		Align(lipgloss.Left, lipgloss.Top).
		Render(content)

	frame := borderStyle.Render(contentView)
	if cursor == nil {
		return frame, nil
	}
	return frame, offsetCursor(cursor, 1, 1)
}

func (m *testbedModel) renderEvents() string {
	if m.events == nil || m.eventHeight == 0 {
		return ""
	}
	return m.events.View()
}

func (m *testbedModel) placeFrame(frame string, cursor *tea.Cursor) (string, *tea.Cursor) {
	height := max(1, m.termHeight-m.eventHeight-frameGap)
	placed := lipgloss.Place(
		m.termWidth,
		height,
		lipgloss.Left,
		lipgloss.Top,
		lipgloss.NewStyle().MarginLeft(m.frameX).Render(frame),
	)
	if cursor == nil {
		return placed, nil
	}
	return placed, offsetCursor(cursor, m.frameX, 0)
}

func (m *testbedModel) ensureLayout() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	if !m.layoutDirty && m.frameWidth != 0 && m.frameHeight != 0 {
		return
	}

	eventHeight := m.computeEventHeight()
	frameSpace := max(minFrameHeight, m.termHeight-eventHeight-frameGap)

	width := clamp(m.maxWidth, 20, m.termWidth-4)
	height := clamp(m.maxHeight, minFrameHeight, frameSpace)
	if m.fullscreen {
		width = clamp(m.termWidth, 20, m.termWidth)
		height = clamp(frameSpace, minFrameHeight, frameSpace)
	}

	m.frameWidth = width
	m.frameHeight = height
	m.innerWidth = max(1, width-2)
	m.innerHeight = max(1, height-2)
	m.frameX = max(0, (m.termWidth-width)/2)
	m.eventHeight = eventHeight
	m.layoutDirty = false

	if m.events != nil && eventHeight > 0 {
		m.events.SetSize(m.termWidth, eventHeight)
	}
}

func (m *testbedModel) computeEventHeight() int {
	if m.events == nil {
		return 0
	}
	maxAvailable := m.termHeight - minFrameHeight - frameGap
	if maxAvailable < minEventHeight {
		return 0
	}
	desired := clamp(m.termHeight/4, minEventHeight, maxEventHeight)
	if desired > maxAvailable {
		desired = maxAvailable
	}
	return desired
}

func clamp(value, min, max int) int {
	if max <= 0 {
		return min
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func offsetCursor(cursor *tea.Cursor, dx, dy int) *tea.Cursor {
	if cursor == nil {
		return nil
	}
	clone := *cursor
	clone.Position.X += dx
	clone.Position.Y += dy
	return &clone
}

const (
	minFrameHeight = 12
	minEventHeight = 5
	maxEventHeight = 12
	frameGap       = 1
)
