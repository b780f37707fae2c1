package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/sleepdiary/pkg/commands/options"
	"tableflip.dev/sleepdiary/pkg/runner/report"
)

func addReport(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise recent nights",
		Long: `Report lists the timed nights in the window with the average, shortest
and longest time asleep.

Examples:
  sleepdiary report
  sleepdiary report --last 3d
  sleepdiary report --last "14 nights"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := env.service()
			if err != nil {
				return output.HandleError(err)
			}
			s := report.Report{
				Last:    wo.Window,
				JSON:    output.JSON,
				Service: svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddLastArgs(cmd, wo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
