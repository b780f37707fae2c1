package show

import (
	"context"
	"errors"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/printers"
)

// Show prints one note in full.
type Show struct {
	ID     string
	ShowID bool
	JSON   bool
	Width  int

	Service *app.Service
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no note store")
	}
	found, err := n.Service.Note(ctx, n.ID)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Width: n.Width}
	if n.JSON {
		return pp.JSON(found)
	}
	pp.Note(found)
	return nil
}
