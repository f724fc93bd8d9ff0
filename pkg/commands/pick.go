package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/datebox/pkg/commands/options"
	"tableflip.dev/datebox/pkg/runner/pick"
	"tableflip.dev/datebox/pkg/store"
)

func addPick(topLevel *cobra.Command) {
	po := &options.PickOptions{}

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Open a date form and print the chosen dates.",
		Long: `Open one or more date inputs. Type a date or press the calendar
decoration to open the picker. Tab moves between inputs, enter prints
slot=date for every input and exits, ctrl+c aborts.`,
		Example: `
datebox pick
datebox pick --field start:Start --field end:End
datebox pick --remember --field due:"Due date"
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return output.HandleError(err)
			}

			specs := po.Fields
			if len(specs) == 0 {
				specs = []string{cfg.Slot()}
			}
			fields := make([]pick.Field, 0, len(specs))
			for _, spec := range specs {
				f, err := pick.ParseField(spec, cfg.Label())
				if err != nil {
					return output.HandleError(err)
				}
				fields = append(fields, f)
			}
			fields[0].Date = po.Date

			p := &pick.Pick{
				Fields:     fields,
				Props:      cfg.PickerProps(),
				Remember:   po.Remember,
				LogPath:    po.LogFile,
				ShowEvents: po.ShowEvents,
				JSON:       output.JSON,
			}
			if p.LogPath == "" {
				p.LogPath = cfg.LogPath()
			}
			if po.Remember {
				if p.Persistence, err = store.Load(cfg); err != nil {
					return output.HandleError(err)
				}
			}

			err = p.Do(context.Background())
			if errors.Is(err, pick.ErrAborted) {
				return nil
			}
			return output.HandleError(err)
		},
	}

	options.AddPickArgs(cmd, po)
	topLevel.AddCommand(cmd)
}
