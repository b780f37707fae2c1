package remove

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/sleepdiary/pkg/app"
)

// Remove deletes a note by id or unique id prefix.
type Remove struct {
	ID      string
	Service *app.Service
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no note store")
	}
	removed, err := n.Service.Delete(ctx, n.ID)
	if err != nil {
		return err
	}
	if removed {
		_, _ = fmt.Fprintf(color.Output, "Deleted %s\n", n.ID)
	} else {
		_, _ = color.New(color.Faint).Fprintf(color.Output, "No note matches %s\n", n.ID)
	}
	return nil
}
