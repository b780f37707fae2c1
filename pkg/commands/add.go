package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/sleepdiary/pkg/commands/options"
	"tableflip.dev/sleepdiary/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	no := &options.NoteOptions{}
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Record a sleep note",
		Example: `
sleepdiary add "Early night" --details "read for a bit" --start 22:30 --end 06:45
sleepdiary add -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && no.Title == "" {
				no.Title = strings.Join(args, " ")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := env.service()
			if err != nil {
				return output.HandleError(err)
			}
			s := add.Add{
				Title:       no.Title,
				Details:     no.Details,
				Start:       no.Start,
				End:         no.End,
				Interactive: i.Interactive,
				ShowID:      io.ShowID,
				JSON:        output.JSON,
				Service:     svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddNoteArgs(cmd, no)
	options.InteractiveArgs(cmd, i)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
