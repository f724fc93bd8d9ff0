package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/datebox/pkg/commands/options"
	"tableflip.dev/datebox/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	co := &options.CalendarOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Print a month, highlighting a date.",
		Example: `
datebox calendar
datebox calendar --date 7/4/2024
datebox calendar --month "December 2024"
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			c := calendar.Calendar{
				Month: co.Month,
				Date:  co.Date,
			}
			err := c.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddCalendarArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
