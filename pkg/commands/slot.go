package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/datebox/pkg/runner/slot"
	"tableflip.dev/datebox/pkg/store"
)

func addSlot(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Read and write stored dates.",
		Long: `Slots are named dates kept under the configured path. A running
"datebox pick --remember" form follows changes to its slots.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		slotCommand(slot.Get, "get [NAME]", "Print a stored date.", cobra.MaximumNArgs(1)),
		slotCommand(slot.Set, "set [NAME] DATE", "Store a date.", cobra.RangeArgs(1, 2)),
		slotCommand(slot.Delete, "delete [NAME]", "Remove a stored date.", cobra.MaximumNArgs(1)),
		slotCommand(slot.List, "list", "List stored dates.", cobra.NoArgs),
	)
	topLevel.AddCommand(cmd)
}

func slotCommand(action slot.Action, use, short string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Example: `
datebox slot set due 3/14/2024
datebox slot get due
datebox slot list
`,
		Args: args,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return output.HandleError(err)
			}
			p, err := store.Load(cfg)
			if err != nil {
				return output.HandleError(err)
			}

			s := slot.Slot{
				Action:      action,
				Name:        cfg.Slot(),
				Persistence: p,
				JSON:        output.JSON,
			}
			switch {
			case action == slot.Set && len(args) == 1:
				s.Date = args[0]
			case action == slot.Set:
				s.Name, s.Date = args[0], args[1]
			case len(args) == 1:
				s.Name = args[0]
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
}
