package commands

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sleepdiary/pkg/commands/options"
	"tableflip.dev/sleepdiary/pkg/printers"
	"tableflip.dev/sleepdiary/pkg/runner/edit"
	"tableflip.dev/sleepdiary/pkg/runner/list"
	"tableflip.dev/sleepdiary/pkg/runner/remove"
	"tableflip.dev/sleepdiary/pkg/runner/show"
)

func addEdit(topLevel *cobra.Command) {
	no := &options.NoteOptions{}
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a sleep note",
		Long: `Edit changes the fields passed as flags and keeps the others.
Pass an empty time, for example --end "", to clear it.`,
		Example: `
sleepdiary edit 1a2b3c4d --end 07:15
sleepdiary edit 1a2b3c4d -i
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: noteCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := env.service()
			if err != nil {
				return output.HandleError(err)
			}
			title, details, start, end := no.Changed(cmd)
			s := edit.Edit{
				ID:          args[0],
				Title:       title,
				Details:     details,
				Start:       start,
				End:         end,
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

func addDelete(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a sleep note",
		Example: `
sleepdiary delete 1a2b3c4d
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: noteCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := env.service()
			if err != nil {
				return output.HandleError(err)
			}
			s := remove.Remove{
				ID:      args[0],
				Service: svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one sleep note in full",
		Example: `
sleepdiary show 1a2b3c4d
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: noteCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := env.service()
			if err != nil {
				return output.HandleError(err)
			}
			s := show.Show{
				ID:      args[0],
				ShowID:  io.ShowID,
				JSON:    output.JSON,
				Service: svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addList(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	wo := &options.WindowOptions{}
	io := &options.IDOptions{}
	output := &options.OutputOptions{}
	var search string

	cmd := &cobra.Command{
		Use:     "list [search]",
		Aliases: []string{"ls", "notes"},
		Short:   "List sleep notes, newest first",
		Example: `
sleepdiary list
sleepdiary list --on 2026-3-10
sleepdiary list --since "7 nights"
sleepdiary list coffee
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && search == "" {
				search = strings.Join(args, " ")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if oo.OnString != "" && wo.Window != "" {
				return output.HandleError(errors.New("--on and --since can not be combined"))
			}
			on, err := oo.GetOn()
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := env.service()
			if err != nil {
				return output.HandleError(err)
			}
			s := list.List{
				On:      on,
				Since:   wo.Window,
				Search:  search,
				ShowID:  io.ShowID,
				JSON:    output.JSON,
				Service: svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddSinceArgs(cmd, wo)
	cmd.Flags().StringVarP(&search, "search", "s", "", "Fuzzy search titles and details.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

// noteCompletions offers short note ids annotated with their title.
func noteCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	svc, err := env.service()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	notes, err := svc.All(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		id := printers.Short(n.ID)
		if !strings.HasPrefix(id, toComplete) {
			continue
		}
		out = append(out, id+"\t"+strconv.Quote(n.Title)+" "+n.CreatedAt.Local().Format(time.DateOnly))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
