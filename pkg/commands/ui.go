package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/sleepdiary/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the calendar and note editor in the terminal",
		Long: `UI shows a month calendar next to the notes of the selected day. Notes can
be added, edited and deleted in place, and the view follows changes made by
other sleepdiary commands while it is open. Press ? inside for the keys.`,
		Example: `
sleepdiary ui
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := env.service()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			i := ui.UI{Service: svc, Logger: env.log().Named("ui")}
			return i.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
