package options

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
	layoutMonth    = "2006-1"
)

// OnOptions
type OnOptions struct {
	OnString string
	// Now defaults to time.Now.
	Now func() time.Time
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a day, example: --on="2026-2-28" or --on="2/28".`)
}

// GetOn returns the local day named by --on, or nil when unset. A month/day
// form without a year means the most recent such day, never one in the future.
func (o *OnOptions) GetOn() (*time.Time, error) {
	if o.OnString == "" {
		return nil, nil
	}
	now := time.Now()
	if o.Now != nil {
		now = o.Now()
	}
	t, err := time.ParseInLocation(layoutISO, o.OnString, now.Location())
	if err != nil {
		t, err = time.ParseInLocation(layoutISOShort, o.OnString, now.Location())
		if err != nil {
			return nil, err
		}
		t = t.AddDate(now.Year(), 0, 0)
		// A diary looks back: 12/30 asked on 1/3 is last year.
		if t.After(now) {
			t = t.AddDate(-1, 0, 0)
		}
	}
	return &t, nil
}

// MonthOptions
type MonthOptions struct {
	MonthString string
	Now         func() time.Time
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVarP(&o.MonthString, "month", "m", "",
		`Specify a month, example: --month="2026-3". Defaults to this month.`)
}

// GetMonth returns the first day of the selected month.
func (o *MonthOptions) GetMonth() (time.Time, error) {
	now := time.Now()
	if o.Now != nil {
		now = o.Now()
	}
	if o.MonthString == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}
	return time.ParseInLocation(layoutMonth, o.MonthString, now.Location())
}
