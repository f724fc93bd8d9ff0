package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/datebox/pkg/tui/components/calendar"
	"tableflip.dev/datebox/pkg/tui/components/datebox"
)

func newDateboxCmd(opts *options) *cobra.Command {
	var (
		preselect string
		props     calendar.Props
	)

	cmd := &cobra.Command{
		Use:   "datebox",
		Short: "Preview the date input component",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatebox(*opts, preselect, props)
		},
	}

	cmd.Flags().StringVar(&preselect, "date", "", "preselected date (optional)")
	cmd.Flags().StringVar(&props.MinDate, "min", "", "earliest selectable date")
	cmd.Flags().StringVar(&props.MaxDate, "max", "", "latest selectable date")
	cmd.Flags().BoolVar(&props.HideHeader, "no-header", false, "hide the weekday header")
	return cmd
}

func runDatebox(opts options, preselect string, props calendar.Props) error {
	model := &dateboxModel{testbedModel: newTestbedModel(opts)}
	in, err := datebox.New(datebox.Options{
		ID:              "Testbed",
		LabelText:       "Date",
		PreselectedDate: preselect,
		DatePickerProps: props,
		DateSelected: func(v string) {
			model.last = v
		},
	})
	if err != nil {
		return err
	}
	model.input = in
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

type dateboxModel struct {
	testbedModel
	input *datebox.Model
	last  string
}

func (m *dateboxModel) Init() tea.Cmd {
	return tea.Batch(m.input.Init(), m.input.Focus())
}

func (m *dateboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.testbedModel.Update(msg) {
		return m, tea.Quit
	}
	if _, ok := msg.(tea.WindowSizeMsg); ok {
		m.layoutInput()
	}
	m.focused = m.input.Focused()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// layoutInput puts the field on the last content rows so the picker opens
// above it, inside the frame.
func (m *dateboxModel) layoutInput() {
	x, y := m.contentOrigin()
	m.input.SetSize(min(m.innerWidth, 40), 2)
	m.input.SetScreenSize(m.termWidth, m.termHeight)
	m.input.SetOrigin(x, y+m.innerHeight-2)
}

func (m *dateboxModel) View() (string, *tea.Cursor) {
	field, cursor := m.input.View()
	rows := make([]string, max(0, m.innerHeight-3))
	rows = append(rows, "committed: "+m.last, field)
	if cursor != nil {
		cursor = offsetCursor(cursor, 0, len(rows)-1)
	}

	view, cursor := m.composeView(strings.Join(rows, "\n"), cursor)
	if m.termWidth == 0 {
		return view, nil
	}
	if !m.input.PopoverBounds().Empty() {
		cursor = nil
	}
	return m.input.Overlay(view), cursor
}
