package calendar

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/printers"
)

// Calendar prints a month with the days that have notes highlighted,
// followed by the notes of Day when it falls in that month.
type Calendar struct {
	Month  time.Time
	Day    *time.Time
	ShowID bool

	Service *app.Service
}

func (n *Calendar) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show calendar, no note store")
	}
	grid, err := n.Service.Month(ctx, n.Month)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Calendar(grid)

	if n.Day == nil || n.Day.Year() != grid.Month.Year() || n.Day.Month() != grid.Month.Month() {
		return nil
	}
	notes, err := n.Service.NotesOn(ctx, *n.Day)
	if err != nil {
		return err
	}
	pp.TitleWithCount(n.Day.Format(printers.DateLayout), len(notes))
	pp.Notes(notes...)
	return nil
}
