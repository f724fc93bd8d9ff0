package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the date input UI.
type Theme struct {
	Field   FieldTheme
	Popover PopoverTheme
	Footer  FooterTheme
}

// FieldTheme styles the text field, its label and the prepended decoration.
type FieldTheme struct {
	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Icon         lipgloss.Style
	IconActive   lipgloss.Style
	Input        lipgloss.Style
	Glyph        string
}

// PopoverTheme styles the frame drawn around popover content.
type PopoverTheme struct {
	Frame lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/help line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Value  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return Theme{
		Field: FieldTheme{
			Label:        label,
			LabelFocused: label.Foreground(lipgloss.Color("212")).Bold(true),
			Icon:         lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			IconActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true),
			Input:        lipgloss.NewStyle(),
			Glyph:        "▦",
		},
		Popover: PopoverTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(0, 1),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Value:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		},
	}
}
