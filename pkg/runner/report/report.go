package report

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/printers"
	"tableflip.dev/sleepdiary/pkg/timeutil"
)

// Report summarises the sleep recorded in a lookback window.
type Report struct {
	Last string
	JSON bool
	Now  func() time.Time

	Service *app.Service
}

type jsonReport struct {
	Since    time.Time `json:"since"`
	Until    time.Time `json:"until"`
	Notes    int       `json:"notes"`
	Nights   int       `json:"nights"`
	Average  string    `json:"average"`
	Shortest string    `json:"shortest,omitempty"`
	Longest  string    `json:"longest,omitempty"`
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no note store")
	}
	d, label, err := timeutil.ParseWindow(n.Last)
	if err != nil {
		return err
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	until := now()
	result, err := n.Service.Report(ctx, timeutil.WindowStart(until, d), until)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	if n.JSON {
		out := jsonReport{
			Since:   result.Since,
			Until:   result.Until,
			Notes:   result.Notes,
			Nights:  len(result.Nights),
			Average: result.Average(),
		}
		if result.Shortest != nil {
			out.Shortest = timeutil.FormatSpan(result.Shortest.Minutes)
		}
		if result.Longest != nil {
			out.Longest = timeutil.FormatSpan(result.Longest.Minutes)
		}
		return pp.JSON(out)
	}
	pp.Report(result, label)
	return nil
}
