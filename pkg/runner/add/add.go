package add

import (
	"context"
	"errors"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/printers"
	"tableflip.dev/sleepdiary/pkg/timeutil"
)

// Add records a new sleep note.
type Add struct {
	Title   string
	Details string
	Start   string
	End     string

	// Interactive prompts for every field left blank.
	Interactive bool
	ShowID      bool
	JSON        bool

	Service *app.Service
	// Prompt defaults to a promptui prompt.
	Prompt PromptFunc
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no note store")
	}
	if n.Interactive {
		if err := n.ask(); err != nil {
			return err
		}
	}

	saved, err := n.Service.Save(ctx, app.SaveRequest{
		Title:   n.Title,
		Details: n.Details,
		Start:   n.Start,
		End:     n.End,
	})
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

func (n *Add) ask() error {
	return Ask(n.Prompt, Fields(&n.Title, &n.Start, &n.End, &n.Details), true)
}

// PromptFunc asks for one value.
type PromptFunc func(label, initial string, validate func(string) error) (string, error)

// Field is one value of the note form.
type Field struct {
	Label    string
	Value    *string
	Validate func(string) error
}

// Fields binds the note form to the given values, in the order they are
// asked.
func Fields(title, start, end, details *string) []Field {
	return []Field{
		{Label: "Title*", Value: title, Validate: required},
		{Label: "Bedtime start (HH:MM)", Value: start, Validate: clock},
		{Label: "Bedtime end (HH:MM)", Value: end, Validate: clock},
		{Label: "Note*", Value: details, Validate: required},
	}
}

// Ask prompts for each field, offering its current value. With onlyBlank,
// fields that already hold text are skipped. A nil prompt uses Prompt.
func Ask(prompt PromptFunc, fields []Field, onlyBlank bool) error {
	if prompt == nil {
		prompt = Prompt
	}
	for _, f := range fields {
		if onlyBlank && strings.TrimSpace(*f.Value) != "" {
			continue
		}
		v, err := prompt(f.Label, *f.Value, f.Validate)
		if err != nil {
			return err
		}
		*f.Value = v
	}
	return nil
}

func required(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("required")
	}
	return nil
}

func clock(input string) error {
	if !timeutil.IsValid(input) {
		return timeutil.ErrInvalidTime
	}
	return nil
}

// Prompt asks for one value on the terminal.
func Prompt(label, initial string, validate func(string) error) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}

	prompt := promptui.Prompt{
		Label:     label,
		Default:   initial,
		Templates: templates,
		Validate:  validate,
	}
	return prompt.Run()
}
