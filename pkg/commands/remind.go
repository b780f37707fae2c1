package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/sleepdiary/pkg/commands/options"
	"tableflip.dev/sleepdiary/pkg/runner/remind"
)

func addRemind(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remind",
		Aliases: []string{"reminder"},
		Short:   "Manage the daily sleep reminder",
		Example: `
sleepdiary remind set 22:30
sleepdiary remind status
sleepdiary remind run
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addRemindSet(cmd)
	addRemindOff(cmd)
	addRemindStatus(cmd)
	addRemindRun(cmd)
	addRemindTest(cmd)

	topLevel.AddCommand(cmd)
}

func addRemindSet(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "set <HH:MM>",
		Short: "Remind me every day at this time",
		Long: `Set saves the reminder time and schedules it. The first time you are
asked to allow reminders; saying no keeps them off.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			r, err := env.reminders()
			if err != nil {
				return output.HandleError(err)
			}
			s := remind.Set{
				At:        args[0],
				Reminders: r,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addRemindOff(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "off",
		Short: "Stop the daily reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			r, err := env.reminders()
			if err != nil {
				return output.HandleError(err)
			}
			s := remind.Off{Reminders: r}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addRemindStatus(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the reminder time and when it fires next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			r, err := env.reminders()
			if err != nil {
				return output.HandleError(err)
			}
			local, err := env.scheduler()
			if err != nil {
				return output.HandleError(err)
			}
			s := remind.Status{
				Reminders: r,
				Scheduler: local,
				JSON:      output.JSON,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addRemindRun(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Stay in the foreground and deliver reminders when they are due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			local, err := env.scheduler()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := remind.Run{Scheduler: local}
			return s.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}

func addRemindTest(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Deliver a reminder right now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			local, err := env.scheduler()
			if err != nil {
				return output.HandleError(err)
			}
			s := remind.Test{Scheduler: local}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
