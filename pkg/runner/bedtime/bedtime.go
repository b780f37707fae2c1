package bedtime

import (
	"context"
	"fmt"

	"tableflip.dev/sleepdiary/pkg/printers"
	"tableflip.dev/sleepdiary/pkg/timeutil"
)

// Bedtime suggests when to go to bed to wake at Wake after whole sleep
// cycles.
type Bedtime struct {
	Wake string
	JSON bool
}

type suggestion struct {
	Bedtime string `json:"bedtime"`
	Cycles  int    `json:"cycles"`
	Sleep   string `json:"sleep"`
}

func (n *Bedtime) Do(ctx context.Context) error {
	canonical, err := timeutil.Canonicalize(n.Wake)
	if err != nil {
		return err
	}
	if canonical == nil {
		return fmt.Errorf("%w: a wake-up time is required", timeutil.ErrInvalidTime)
	}
	wake, err := timeutil.ParseClock(*canonical)
	if err != nil {
		return err
	}
	details := timeutil.SuggestBedtimeDetails(wake)

	pp := printers.PrettyPrint{}
	if n.JSON {
		out := make([]suggestion, 0, len(details))
		for _, b := range details {
			out = append(out, suggestion{Bedtime: b.At.String(), Cycles: b.Cycles, Sleep: timeutil.FormatSpan(b.SleepMinutes())})
		}
		return pp.JSON(out)
	}
	pp.Bedtimes(wake, details)
	return nil
}
