package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sleepdiary/pkg/commands/options"
	"tableflip.dev/sleepdiary/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}
	oo := &options.OnOptions{}
	io := &options.IDOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month with the nights that have notes",
		Example: `
sleepdiary calendar
sleepdiary calendar --month 2026-2
sleepdiary calendar --on 3/10
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			day, err := oo.GetOn()
			if err != nil {
				return output.HandleError(err)
			}
			month, err := mo.GetMonth()
			if err != nil {
				return output.HandleError(err)
			}
			if day != nil && mo.MonthString == "" {
				month = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
			}
			if day == nil && mo.MonthString == "" {
				today := time.Now()
				day = &today
			}
			svc, err := env.service()
			if err != nil {
				return output.HandleError(err)
			}
			s := calendar.Calendar{
				Month:   month,
				Day:     day,
				ShowID:  io.ShowID,
				Service: svc,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddMonthArgs(cmd, mo)
	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
