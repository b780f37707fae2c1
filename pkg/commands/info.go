package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/sleepdiary/pkg/commands/options"
	"tableflip.dev/sleepdiary/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the diary and where it is stored.",
		Example: `
sleepdiary info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := env.config()
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := env.service()
			if err != nil {
				return output.HandleError(err)
			}
			r, err := env.reminders()
			if err != nil {
				return output.HandleError(err)
			}
			s := info.Info{
				Config:    cfg,
				Service:   svc,
				Reminders: r,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
