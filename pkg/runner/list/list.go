package list

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/note"
	"tableflip.dev/sleepdiary/pkg/printers"
	"tableflip.dev/sleepdiary/pkg/timeutil"
)

// List prints notes, optionally narrowed to one day, a lookback window or a
// fuzzy search.
type List struct {
	On     *time.Time
	Since  string
	Search string
	ShowID bool
	JSON   bool

	Service *app.Service
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no note store")
	}

	var (
		title string
		notes []note.SleepNote
		err   error
	)
	switch {
	case n.Search != "":
		title = fmt.Sprintf("Matching %q", n.Search)
		notes, err = n.Service.Search(ctx, n.Search)
	case n.On != nil:
		title = n.On.Format(printers.DateLayout)
		notes, err = n.Service.NotesOn(ctx, *n.On)
	case n.Since != "":
		var label string
		if _, label, err = timeutil.ParseWindow(n.Since); err != nil {
			return err
		}
		title = "Last " + label
		notes, err = n.Service.Since(ctx, n.Since)
	default:
		title = "Sleep notes"
		notes, err = n.Service.All(ctx)
	}
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	if n.JSON {
		if notes == nil {
			notes = []note.SleepNote{}
		}
		return pp.JSON(notes)
	}
	pp.TitleWithCount(title, len(notes))
	pp.Notes(notes...)
	return nil
}
