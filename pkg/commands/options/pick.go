package options

import (
	"github.com/spf13/cobra"
)

// PickOptions
type PickOptions struct {
	Fields     []string
	Date       string
	Remember   bool
	LogFile    string
	ShowEvents bool
}

func AddPickArgs(cmd *cobra.Command, o *PickOptions) {
	cmd.Flags().StringArrayVarP(&o.Fields, "field", "f", nil,
		`Add a date input as slot[:Label]. Repeat for more inputs; defaults to the configured slot.`)
	cmd.Flags().StringVar(&o.Date, "date", "",
		`Preselect the first input, example: --date="3/14/2024" or --date=today.`)
	cmd.Flags().BoolVar(&o.Remember, "remember", false,
		`Preselect inputs from stored slots, save the results, and follow changes made elsewhere.`)
	cmd.Flags().StringVar(&o.LogFile, "log-file", "",
		`Write the input state transitions to this file.`)
	cmd.Flags().BoolVar(&o.ShowEvents, "events", false,
		`Show the event log panel above the form.`)
}

// CalendarOptions
type CalendarOptions struct {
	Month string
	Date  string
}

func AddCalendarArgs(cmd *cobra.Command, o *CalendarOptions) {
	cmd.Flags().StringVar(&o.Month, "month", "",
		`Month to print, example: --month="March 2024".`)
	cmd.Flags().StringVar(&o.Date, "date", "",
		`Date to highlight.`)
}
