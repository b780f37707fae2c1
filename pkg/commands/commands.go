package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	env = &environment{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "sleepdiary",
		Short: base.Wrap80("Keep a sleep diary, plan bedtimes around sleep cycles and get a nightly reminder."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			env.sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.interactive {
				return PromptNext(cmd, args)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&env.verbose, "verbose", "v", false,
		"Log debug details to stderr.")
	cmd.Flags().BoolVarP(&env.interactive, "interactive", "i", false,
		"Pick a command from a menu.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addCalendar(topLevel)
	addBedtime(topLevel)
	addDuration(topLevel)
	addRemind(topLevel)
	addReport(topLevel)
	addGuide(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
