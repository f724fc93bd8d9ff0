package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/datebox/pkg/tui/components/calendar"
	"tableflip.dev/datebox/pkg/tui/events"
)

func newCalendarCmd(opts *options) *cobra.Command {
	var props calendar.Props

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Preview the calendar picker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(*opts, props)
		},
	}

	cmd.Flags().StringVar(&props.Month, "month", time.Now().Format("January 2006"), "month to render (e.g. \"March 2026\")")
	cmd.Flags().StringVar(&props.MinDate, "min", "", "earliest selectable date")
	cmd.Flags().StringVar(&props.MaxDate, "max", "", "latest selectable date")
	return cmd
}

func runCalendar(opts options, props calendar.Props) error {
	picker, err := calendar.NewPicker("Calendar", props)
	if err != nil {
		return err
	}
	model := &calendarModel{
		testbedModel: newTestbedModel(opts),
		picker:       picker,
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

type calendarModel struct {
	testbedModel
	picker *calendar.Picker
}

func (m *calendarModel) Init() tea.Cmd { return nil }

func (m *calendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.testbedModel.Update(msg) {
		return m, tea.Quit
	}
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "left", "h":
			m.picker.PrevMonth()
		case "right", "l":
			m.picker.NextMonth()
		}
	case tea.MouseClickMsg:
		x, y := m.contentOrigin()
		mouse := msg.Mouse()
		m.focused = true
		return m, m.picker.Click(mouse.X-x, mouse.Y-y)
	case events.DateSelectedMsg:
		m.picker.SetPreselected(msg.Date)
	}
	return m, nil
}

func (m *calendarModel) View() (string, *tea.Cursor) {
	return m.composeView(m.picker.View(), nil)
}
