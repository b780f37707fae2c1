package duration

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/sleepdiary/pkg/printers"
	"tableflip.dev/sleepdiary/pkg/timeutil"
)

// Duration prints how long a night from Start to End lasted.
type Duration struct {
	Start string
	End   string
	JSON  bool
}

type result struct {
	Start    string `json:"startTime"`
	End      string `json:"endTime"`
	Minutes  int    `json:"minutes"`
	Duration string `json:"duration"`
}

func (n *Duration) Do(ctx context.Context) error {
	start, err := timeutil.Canonicalize(n.Start)
	if err != nil || start == nil {
		return fmt.Errorf("start %q: %w", n.Start, timeutil.ErrInvalidTime)
	}
	end, err := timeutil.Canonicalize(n.End)
	if err != nil || end == nil {
		return fmt.Errorf("end %q: %w", n.End, timeutil.ErrInvalidTime)
	}
	span := timeutil.SleepDuration(*start, *end)

	if n.JSON {
		from, _ := timeutil.ParseClock(*start)
		to, _ := timeutil.ParseClock(*end)
		pp := printers.PrettyPrint{}
		return pp.JSON(result{Start: *start, End: *end, Minutes: timeutil.SleepSpan(from, to), Duration: span})
	}
	_, _ = fmt.Fprintf(color.Output, "%s - %s  %s\n", *start, *end,
		color.New(color.Bold).Sprint(span))
	return nil
}
