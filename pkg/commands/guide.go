package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/sleepdiary/pkg/runner/guide"
)

func addGuide(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "guide",
		Aliases: []string{"tips", "key"},
		Short:   "Tips for better sleep and the calendar legend",
		Example: `
sleepdiary guide
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			g := guide.Guide{Out: cmd.OutOrStdout()}
			return g.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
