package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/datebox/pkg/runner/parse"
)

func addParse(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "parse TEXT...",
		Short: "Show how text typed into a date input would be read.",
		Example: `
datebox parse 3/14/2024 2024-03-14 "March 14, 2024" today
datebox parse --json 2/30/2024
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := parse.Parse{
				Inputs: args,
				JSON:   output.JSON,
			}
			err := p.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
