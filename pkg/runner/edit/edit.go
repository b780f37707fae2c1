package edit

import (
	"context"
	"errors"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/printers"
	"tableflip.dev/sleepdiary/pkg/runner/add"
)

// Edit changes an existing note. Nil fields keep their current value; an
// empty time clears it.
type Edit struct {
	ID      string
	Title   *string
	Details *string
	Start   *string
	End     *string

	// Interactive prompts for every field, pre-filled with the current value.
	Interactive bool
	ShowID      bool
	JSON        bool

	Service *app.Service
	Prompt  add.PromptFunc
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no note store")
	}
	cur, err := n.Service.Note(ctx, n.ID)
	if err != nil {
		return err
	}

	req := app.SaveRequest{
		EditID:  cur.ID,
		Title:   pick(n.Title, cur.Title),
		Details: pick(n.Details, cur.Details),
		Start:   pick(n.Start, cur.Start()),
		End:     pick(n.End, cur.End()),
	}
	if n.Interactive {
		if err := n.ask(&req); err != nil {
			return err
		}
	}

	saved, err := n.Service.Save(ctx, req)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	if n.JSON {
		return pp.JSON(saved)
	}
	pp.Note(saved)
	return nil
}

func (n *Edit) ask(req *app.SaveRequest) error {
	return add.Ask(n.Prompt, add.Fields(&req.Title, &req.Start, &req.End, &req.Details), false)
}

func pick(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
