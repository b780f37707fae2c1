package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/sleepdiary/pkg/commands/options"
	"tableflip.dev/sleepdiary/pkg/runner/bedtime"
	"tableflip.dev/sleepdiary/pkg/runner/duration"
)

func addBedtime(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "bedtime <wake-up HH:MM>",
		Short: "Suggest bedtimes that end on a full sleep cycle",
		Long: `Bedtime works back from the time you want to wake up in 90 minute
sleep cycles and suggests going to bed after 6, 5 or 4 of them.`,
		Example: `
sleepdiary bedtime 07:00
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s := bedtime.Bedtime{
				Wake: args[0],
				JSON: output.JSON,
			}
			err := s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addDuration(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "duration <start HH:MM> <end HH:MM>",
		Short: "Compute how long a night lasted",
		Example: `
sleepdiary duration 23:30 07:00
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s := duration.Duration{
				Start: args[0],
				End:   args[1],
				JSON:  output.JSON,
			}
			err := s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
